package web

import (
	"github.com/gin-gonic/gin"

	"github.com/civicspark/civic-site/internal/client"
	"github.com/civicspark/civic-site/internal/resource"
	"github.com/civicspark/civic-site/internal/session"
)

const (
	ctxClient  = "api_client"
	ctxSession = "session"
	ctxToasts  = "toasts"
)

// LoadSession builds the API client and session store for this page load
// from the token cookie and restores the session.
func (h *Handler) LoadSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		store := newCookieTokenStore(c, h.cfg.SecureCookies, int(h.cfg.TokenTTL.Seconds()))

		var opts []client.Option
		if h.cfg.HTTPClient != nil {
			opts = append(opts, client.WithHTTPClient(h.cfg.HTTPClient))
		}
		api := client.New(h.cfg.APIBaseURL, store, opts...)
		sess := session.New(api)
		sess.CheckAuthStatus(c.Request.Context())

		c.Set(ctxClient, api)
		c.Set(ctxSession, sess)
		c.Set(ctxToasts, &resource.Collector{})
		c.Next()
	}
}

func apiClient(c *gin.Context) *client.Client {
	if v, ok := c.Get(ctxClient); ok {
		return v.(*client.Client)
	}
	return nil
}

func sessionStore(c *gin.Context) *session.Store {
	if v, ok := c.Get(ctxSession); ok {
		return v.(*session.Store)
	}
	return nil
}

func toasts(c *gin.Context) *resource.Collector {
	if v, ok := c.Get(ctxToasts); ok {
		return v.(*resource.Collector)
	}
	col := &resource.Collector{}
	c.Set(ctxToasts, col)
	return col
}
