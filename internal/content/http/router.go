package http

import (
	"github.com/gin-gonic/gin"

	"github.com/civicspark/civic-site/internal/content/domain"
	"github.com/civicspark/civic-site/internal/content/repository"
)

// Stores groups the three content stores the API serves.
type Stores struct {
	Projects      repository.Store[domain.Project, domain.ProjectFields]
	Events        repository.Store[domain.Event, domain.EventFields]
	CalendarItems repository.Store[domain.CalendarItem, domain.CalendarItemFields]
}

// RegisterAll mounts /projects, /events and /calendar.
func RegisterAll(rg *gin.RouterGroup, stores Stores, auth gin.HandlerFunc) {
	New(stores.Projects, "Project").Register(rg, "/projects", auth)
	New(stores.Events, "Event").Register(rg, "/events", auth)
	New(stores.CalendarItems, "Calendar item").Register(rg, "/calendar", auth)
}
