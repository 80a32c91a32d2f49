package main

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/civicspark/civic-site/config"
	"github.com/civicspark/civic-site/internal/bootstrap"
	"github.com/civicspark/civic-site/internal/logging"
	"github.com/civicspark/civic-site/internal/web"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("web stopped")
	}
	log.Info().Msg("web stopped")
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logging.Setup(cfg.App.LogLevel, cfg.App.Environment)
	bootstrap.SetGinMode(cfg.App.Environment)

	key, err := csrfKey(cfg)
	if err != nil {
		return err
	}

	router, err := web.NewRouter(web.Config{
		APIBaseURL:     cfg.Web.APIBaseURL,
		SecureCookies:  cfg.Web.SecureCookies,
		TokenTTL:       cfg.Auth.TokenTTL,
		TrustedProxies: cfg.Server.TrustedProxies,
		HTTPClient:     &http.Client{Timeout: 15 * time.Second},
	})
	if err != nil {
		return fmt.Errorf("templates: %w", err)
	}

	server := &http.Server{
		Addr:              ":" + cfg.Web.Port,
		Handler:           web.Protect(router, key, cfg.Web.SecureCookies, cfg.CORS.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Str("api", cfg.Web.APIBaseURL).Msg("web listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-stop:
	}

	sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(sctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// csrfKey returns the configured form token key. Outside production a random
// key is generated, so issued tokens do not survive a restart.
func csrfKey(cfg *config.Config) ([]byte, error) {
	if cfg.Web.CSRFKey != "" {
		return []byte(cfg.Web.CSRFKey), nil
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate csrf key: %w", err)
	}
	log.Warn().Msg("CSRF_KEY not set, using a random key")
	return key, nil
}
