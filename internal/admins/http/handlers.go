package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/civicspark/civic-site/internal/admins/domain"
	"github.com/civicspark/civic-site/internal/admins/middleware"
	apihttp "github.com/civicspark/civic-site/internal/api/http"
	"github.com/civicspark/civic-site/internal/logging"
)

const (
	msgInvalidCredentials = "Invalid credentials"
	msgEmailTaken         = "The email has already been taken."
	msgInvalidBody        = "The request body is not valid JSON."
)

// Login exchanges email and password for a token.
func (h *Handler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apihttp.Abort(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err, "login failed")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RegisterAdmin creates an admin account and returns a token for it.
func (h *Handler) RegisterAdmin(c *gin.Context) {
	var req domain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apihttp.Abort(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	resp, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err, "register failed")
		return
	}

	logging.FromContext(c.Request.Context()).Info().Str("admin_id", resp.Admin.ID).Msg("admin registered")
	c.JSON(http.StatusCreated, resp)
}

// Logout revokes the presented token.
func (h *Handler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context(), middleware.Token(c)); err != nil {
		h.fail(c, err, "logout failed")
		return
	}
	c.JSON(http.StatusOK, apihttp.MessageResponse{Message: "Logged out successfully"})
}

// Me returns the admin owning the token.
func (h *Handler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.Admin(c))
}

func (h *Handler) fail(c *gin.Context, err error, msg string) {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		apihttp.Abort(c, http.StatusUnprocessableEntity, vErr.Message)
	case errors.Is(err, domain.ErrEmailTaken):
		apihttp.Abort(c, http.StatusUnprocessableEntity, msgEmailTaken)
	case errors.Is(err, domain.ErrInvalidCredentials):
		apihttp.Abort(c, http.StatusUnauthorized, msgInvalidCredentials)
	default:
		logging.FromContext(c.Request.Context()).Err(err).Msg(msg)
		apihttp.Abort(c, http.StatusInternalServerError, "Server error")
	}
}
