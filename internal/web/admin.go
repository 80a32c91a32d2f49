package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/civicspark/civic-site/internal/stats"
	"github.com/civicspark/civic-site/internal/visits/domain"
)

// recentVisitRows is how many visits the statistics screen lists.
const recentVisitRows = 20

func (h *Handler) Dashboard(c *gin.Context) {
	counts, err := apiClient(c).DashboardStats(c.Request.Context())
	if err != nil {
		logFailure(c, err, "dashboard stats failed")
		toasts(c).Error("Failed to load statistics")
		counts = stats.Dashboard{}
	}
	render(c, http.StatusOK, "dashboard.html", gin.H{
		"Title":  "Dashboard",
		"Active": "dashboard",
		"Counts": counts,
	})
}

func (h *Handler) Statistics(c *gin.Context) {
	ctx := c.Request.Context()
	api := apiClient(c)

	summary, err := api.VisitStats(ctx)
	if err != nil {
		logFailure(c, err, "visit stats failed")
		toasts(c).Error("Failed to load visit statistics")
	}

	visits, err := api.Visits(ctx)
	if err != nil {
		logFailure(c, err, "visits failed")
		toasts(c).Error("Failed to load visits")
		visits = []domain.Visit{}
	}
	if len(visits) > recentVisitRows {
		visits = visits[:recentVisitRows]
	}

	render(c, http.StatusOK, "statistics.html", gin.H{
		"Title":   "Statistics",
		"Active":  "statistics",
		"Summary": summary,
		"Visits":  visits,
	})
}
