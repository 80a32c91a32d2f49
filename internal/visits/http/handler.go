package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	apihttp "github.com/civicspark/civic-site/internal/api/http"
	"github.com/civicspark/civic-site/internal/logging"
	"github.com/civicspark/civic-site/internal/visits/domain"
)

// Store is the visit persistence the handlers need.
type Store interface {
	Record(ctx context.Context, ip, userAgent *string, at time.Time) (*domain.Visit, error)
	Recent(ctx context.Context, limit int) ([]domain.Visit, error)
	Stats(ctx context.Context, today, week time.Time) (domain.Stats, error)
}

type Handler struct {
	store   Store
	limiter *IPLimiter
	now     func() time.Time
}

func New(store Store, limiter *IPLimiter) *Handler {
	return &Handler{
		store:   store,
		limiter: limiter,
		now:     time.Now,
	}
}

// Register mounts the public tracking endpoint and the authenticated reports.
func (h *Handler) Register(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	rg.POST("/track-visit", h.TrackVisit)

	protected := rg.Group("/visits", auth)
	protected.GET("", h.List)
	protected.GET("/stats", h.Stats)
}

// TrackVisit records the caller's IP and user agent.
func (h *Handler) TrackVisit(c *gin.Context) {
	ip := c.ClientIP()
	if h.limiter != nil && !h.limiter.Allow(ip) {
		apihttp.Abort(c, http.StatusTooManyRequests, "Too many requests")
		return
	}

	_, err := h.store.Record(c.Request.Context(), optional(ip), optional(c.GetHeader("User-Agent")), h.now())
	if err != nil {
		logging.FromContext(c.Request.Context()).Err(err).Msg("track visit failed")
		apihttp.Abort(c, http.StatusInternalServerError, "Server error")
		return
	}
	c.JSON(http.StatusCreated, apihttp.MessageResponse{Message: "Visit tracked"})
}

// List returns the most recent visits, newest first.
func (h *Handler) List(c *gin.Context) {
	visits, err := h.store.Recent(c.Request.Context(), domain.RecentLimit)
	if err != nil {
		logging.FromContext(c.Request.Context()).Err(err).Msg("list visits failed")
		apihttp.Abort(c, http.StatusInternalServerError, "Server error")
		return
	}
	apihttp.List(c, http.StatusOK, visits)
}

func (h *Handler) Stats(c *gin.Context) {
	today, week := domain.Window(h.now())
	stats, err := h.store.Stats(c.Request.Context(), today, week)
	if err != nil {
		logging.FromContext(c.Request.Context()).Err(err).Msg("visit stats failed")
		apihttp.Abort(c, http.StatusInternalServerError, "Server error")
		return
	}
	c.JSON(http.StatusOK, stats)
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
