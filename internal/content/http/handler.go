package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apihttp "github.com/civicspark/civic-site/internal/api/http"
	"github.com/civicspark/civic-site/internal/content/domain"
	"github.com/civicspark/civic-site/internal/content/repository"
	"github.com/civicspark/civic-site/internal/logging"
)

// Handler serves the CRUD endpoints of one content resource.
type Handler[T any, F domain.Fields[F]] struct {
	store repository.Store[T, F]
	label string // singular, capitalised
}

func New[T any, F domain.Fields[F]](store repository.Store[T, F], label string) *Handler[T, F] {
	return &Handler[T, F]{store: store, label: label}
}

// Register mounts list under path for everyone and the mutations behind auth.
func (h *Handler[T, F]) Register(rg *gin.RouterGroup, path string, auth gin.HandlerFunc) {
	rg.GET(path, h.List)

	protected := rg.Group(path, auth)
	protected.POST("", h.Create)
	protected.PUT("/:id", h.Update)
	protected.DELETE("/:id", h.Delete)
}

func (h *Handler[T, F]) List(c *gin.Context) {
	items, err := h.store.List(c.Request.Context())
	if err != nil {
		h.fail(c, err, "list failed")
		return
	}
	apihttp.List(c, http.StatusOK, items)
}

func (h *Handler[T, F]) Create(c *gin.Context) {
	fields, ok := h.bind(c)
	if !ok {
		return
	}

	rec, err := h.store.Create(c.Request.Context(), fields)
	if err != nil {
		h.fail(c, err, "create failed")
		return
	}
	c.JSON(http.StatusCreated, rec)
}

func (h *Handler[T, F]) Update(c *gin.Context) {
	fields, ok := h.bind(c)
	if !ok {
		return
	}

	rec, err := h.store.Update(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		h.fail(c, err, "update failed")
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *Handler[T, F]) Delete(c *gin.Context) {
	if err := h.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err, "delete failed")
		return
	}
	c.JSON(http.StatusOK, apihttp.MessageResponse{Message: h.label + " deleted successfully"})
}

func (h *Handler[T, F]) bind(c *gin.Context) (F, bool) {
	var fields F
	if err := c.ShouldBindJSON(&fields); err != nil {
		apihttp.Abort(c, http.StatusBadRequest, "The request body is not valid JSON.")
		return fields, false
	}

	cleaned, err := fields.Clean()
	if err != nil {
		h.fail(c, err, "validation failed")
		return fields, false
	}
	return cleaned, true
}

func (h *Handler[T, F]) fail(c *gin.Context, err error, msg string) {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		apihttp.Abort(c, http.StatusUnprocessableEntity, vErr.Message)
	case errors.Is(err, domain.ErrNotFound):
		apihttp.Abort(c, http.StatusNotFound, fmt.Sprintf("%s not found", h.label))
	default:
		logging.FromContext(c.Request.Context()).Err(err).
			Str("resource", strings.ToLower(h.label)).
			Msg(msg)
		apihttp.Abort(c, http.StatusInternalServerError, "Server error")
	}
}
