package repository

import (
	"cmp"
	"context"
	"time"

	"github.com/civicspark/civic-site/internal/content/domain"
)

// Store is the persistence contract shared by every content resource.
type Store[T any, F any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, fields F) (T, error)
	Update(ctx context.Context, id string, fields F) (T, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// Resource describes how one resource type maps onto a table and how its
// records are built and ordered in memory.
type Resource[T any, F any] struct {
	Table   string
	Columns []string // mutable columns, in the order Values returns them
	OrderBy string
	Values  func(F) []any
	Scan    func(row Scanner) (T, error) // id, Columns..., created_at, updated_at

	Build     func(id string, f F, createdAt, updatedAt time.Time) T
	ID        func(T) string
	CreatedAt func(T) time.Time
	Compare   func(a, b T) int
}

// Scanner is satisfied by pgx.Row and pgx.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

var Projects = Resource[domain.Project, domain.ProjectFields]{
	Table:   "projects",
	Columns: []string{"title", "description"},
	OrderBy: "created_at desc",
	Values: func(f domain.ProjectFields) []any {
		return []any{f.Title, f.Description}
	},
	Scan: func(row Scanner) (domain.Project, error) {
		var p domain.Project
		err := row.Scan(&p.ID, &p.Title, &p.Description, &p.CreatedAt, &p.UpdatedAt)
		return p, err
	},
	Build: func(id string, f domain.ProjectFields, createdAt, updatedAt time.Time) domain.Project {
		return domain.Project{ID: id, Title: f.Title, Description: f.Description, CreatedAt: createdAt, UpdatedAt: updatedAt}
	},
	ID:        func(p domain.Project) string { return p.ID },
	CreatedAt: func(p domain.Project) time.Time { return p.CreatedAt },
	Compare: func(a, b domain.Project) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	},
}

var Events = Resource[domain.Event, domain.EventFields]{
	Table:   "events",
	Columns: []string{"name", "date", "location"},
	OrderBy: "date asc nulls last, created_at asc",
	Values: func(f domain.EventFields) []any {
		return []any{f.Name, f.Date, f.Location}
	},
	Scan: func(row Scanner) (domain.Event, error) {
		var e domain.Event
		err := row.Scan(&e.ID, &e.Name, &e.Date, &e.Location, &e.CreatedAt, &e.UpdatedAt)
		return e, err
	},
	Build: func(id string, f domain.EventFields, createdAt, updatedAt time.Time) domain.Event {
		return domain.Event{ID: id, Name: f.Name, Date: f.Date, Location: f.Location, CreatedAt: createdAt, UpdatedAt: updatedAt}
	},
	ID:        func(e domain.Event) string { return e.ID },
	CreatedAt: func(e domain.Event) time.Time { return e.CreatedAt },
	Compare: func(a, b domain.Event) int {
		return cmp.Or(compareDates(a.Date, b.Date), a.CreatedAt.Compare(b.CreatedAt))
	},
}

var CalendarItems = Resource[domain.CalendarItem, domain.CalendarItemFields]{
	Table:   "calendar_items",
	Columns: []string{"title", "start_date", "end_date"},
	OrderBy: "start_date asc nulls last, created_at asc",
	Values: func(f domain.CalendarItemFields) []any {
		return []any{f.Title, f.StartDate, f.EndDate}
	},
	Scan: func(row Scanner) (domain.CalendarItem, error) {
		var c domain.CalendarItem
		err := row.Scan(&c.ID, &c.Title, &c.StartDate, &c.EndDate, &c.CreatedAt, &c.UpdatedAt)
		return c, err
	},
	Build: func(id string, f domain.CalendarItemFields, createdAt, updatedAt time.Time) domain.CalendarItem {
		return domain.CalendarItem{ID: id, Title: f.Title, StartDate: f.StartDate, EndDate: f.EndDate, CreatedAt: createdAt, UpdatedAt: updatedAt}
	},
	ID:        func(c domain.CalendarItem) string { return c.ID },
	CreatedAt: func(c domain.CalendarItem) time.Time { return c.CreatedAt },
	Compare: func(a, b domain.CalendarItem) int {
		return cmp.Or(compareDates(a.StartDate, b.StartDate), a.CreatedAt.Compare(b.CreatedAt))
	},
}

// compareDates orders YYYY-MM-DD strings ascending with nil last.
func compareDates(a, b *string) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return cmp.Compare(*a, *b)
}
