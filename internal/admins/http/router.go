package http

import (
	"github.com/gin-gonic/gin"

	"github.com/civicspark/civic-site/internal/admins/middleware"
)

// Register mounts the /auth routes. Login and register are public, the rest
// need a bearer token.
func (h *Handler) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	auth.POST("/login", h.Login)
	auth.POST("/register", h.RegisterAdmin)

	protected := auth.Group("", middleware.RequireAdmin(h.authService))
	protected.POST("/logout", h.Logout)
	protected.GET("/me", h.Me)
}
