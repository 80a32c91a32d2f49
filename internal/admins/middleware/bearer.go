package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/civicspark/civic-site/internal/admins/domain"
	apihttp "github.com/civicspark/civic-site/internal/api/http"
	"github.com/civicspark/civic-site/internal/logging"
)

const (
	CtxAdmin = "admin"
	CtxToken = "auth_token"
)

// MessageUnauthenticated is the body of every 401 issued for a missing,
// unknown or expired bearer token.
const MessageUnauthenticated = "Unauthenticated."

// Authenticator resolves a bearer token to an admin.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.Admin, error)
}

// RequireAdmin validates the bearer token and stores the admin in the context.
func RequireAdmin(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			apihttp.Abort(c, http.StatusUnauthorized, MessageUnauthenticated)
			return
		}

		admin, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, domain.ErrTokenNotFound) {
				logging.FromContext(c.Request.Context()).Err(err).Msg("token lookup failed")
			}
			apihttp.Abort(c, http.StatusUnauthorized, MessageUnauthenticated)
			return
		}

		c.Set(CtxAdmin, admin)
		c.Set(CtxToken, token)
		c.Next()
	}
}

// Admin returns the admin set by RequireAdmin, or nil.
func Admin(c *gin.Context) *domain.Admin {
	if v, ok := c.Get(CtxAdmin); ok {
		if admin, ok := v.(*domain.Admin); ok {
			return admin
		}
	}
	return nil
}

// Token returns the bearer token accepted by RequireAdmin.
func Token(c *gin.Context) string {
	return c.GetString(CtxToken)
}

// extractToken extracts the Bearer token from the Authorization header
func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.HasPrefix(bearerToken, "Bearer ") {
		return strings.TrimSpace(bearerToken[7:])
	}
	return ""
}
