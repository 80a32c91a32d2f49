package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/civicspark/civic-site/internal/session"
)

const loginPath = "/admin/login"

// RequireAdmin gates the admin screens on the session state. An unresolved
// session renders the loading page and does not navigate.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		state := session.StateUnknown
		if s := sessionStore(c); s != nil {
			state = s.State()
		}

		switch state {
		case session.StateAuthenticated:
			c.Next()
		case session.StateAnonymous:
			c.Redirect(http.StatusSeeOther, loginPath)
			c.Abort()
		default:
			c.HTML(http.StatusOK, "loading.html", gin.H{"Title": "Loading"})
			c.Abort()
		}
	}
}

// Logout signs out and always lands on the login screen.
func (h *Handler) Logout(c *gin.Context) {
	if s := sessionStore(c); s != nil {
		_ = s.Logout(c.Request.Context())
	}
	c.Redirect(http.StatusSeeOther, loginPath)
}
