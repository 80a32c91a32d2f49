// Package stats serves the dashboard counters of the admin back-office.
package stats

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	apihttp "github.com/civicspark/civic-site/internal/api/http"
	"github.com/civicspark/civic-site/internal/logging"
)

// Counter is implemented by every store that contributes a dashboard count.
type Counter interface {
	Count(ctx context.Context) (int, error)
}

type Counters struct {
	Projects Counter
	Events   Counter
	Calendar Counter
	Visits   Counter
}

// Dashboard is the /admin/stats body.
type Dashboard struct {
	Projects int `json:"projects"`
	Events   int `json:"events"`
	Calendar int `json:"calendar"`
	Visits   int `json:"visits"`
}

type Handler struct {
	counters Counters
}

func New(counters Counters) *Handler {
	return &Handler{counters: counters}
}

func (h *Handler) Register(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	rg.GET("/admin/stats", auth, h.Dashboard)
}

func (h *Handler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		out Dashboard
		err error
	)
	for _, f := range []struct {
		dst *int
		src Counter
	}{
		{&out.Projects, h.counters.Projects},
		{&out.Events, h.counters.Events},
		{&out.Calendar, h.counters.Calendar},
		{&out.Visits, h.counters.Visits},
	} {
		if *f.dst, err = f.src.Count(ctx); err != nil {
			logging.FromContext(ctx).Err(err).Msg("dashboard stats failed")
			apihttp.Abort(c, http.StatusInternalServerError, "Server error")
			return
		}
	}
	c.JSON(http.StatusOK, out)
}
