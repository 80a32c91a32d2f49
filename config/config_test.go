package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_DSN", "DB_HOST", "REDIS_ADDR", "CSRF_KEY", "APP_ENV", "AUTH_TOKEN_TTL", "API_BASE_URL", "TRUSTED_PROXIES"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "http://localhost:8000/api", cfg.Web.APIBaseURL)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.False(t, cfg.Database.Enabled())
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.App.IsProduction())
	assert.Equal(t, []string{"127.0.0.1", "::1"}, cfg.Server.TrustedProxies)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.example.org/api/")
	t.Setenv("DB_DSN", "postgres://u:p@db/civic")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("AUTH_TOKEN_TTL", "2h")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.org, ,https://b.example.org")
	t.Setenv("SECURE_COOKIES", "true")
	t.Setenv("VISIT_RATE_PER_MINUTE", "nope")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.org/api", cfg.Web.APIBaseURL)
	assert.True(t, cfg.Database.Enabled())
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, []string{"https://a.example.org", "https://b.example.org"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.Web.SecureCookies)
	assert.Equal(t, 30, cfg.Visits.RatePerMinute)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server: ServerConfig{Port: "8000"},
			Web:    WebConfig{APIBaseURL: "http://localhost:8000/api"},
			Auth:   AuthConfig{TokenTTL: time.Hour},
			Visits: VisitsConfig{RatePerMinute: 1, Burst: 1},
		}
	}
	require.NoError(t, valid().Validate())

	cfg := valid()
	cfg.Web.CSRFKey = "short"
	assert.ErrorContains(t, cfg.Validate(), "32 bytes")

	cfg = valid()
	cfg.App.Environment = "production"
	assert.ErrorContains(t, cfg.Validate(), "CSRF_KEY is required")

	cfg.Web.CSRFKey = strings.Repeat("k", 32)
	assert.NoError(t, cfg.Validate())

	cfg = valid()
	cfg.Auth.TokenTTL = 0
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Server.TrustedProxies = []string{"10.0.0.0/8", "172.17.0.1"}
	assert.NoError(t, cfg.Validate())
	cfg.Server.TrustedProxies = []string{"proxy.internal"}
	assert.ErrorContains(t, cfg.Validate(), "TRUSTED_PROXIES")
}
