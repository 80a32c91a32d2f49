package resource_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civicspark/civic-site/internal/bootstrap"
	"github.com/civicspark/civic-site/internal/client"
	"github.com/civicspark/civic-site/internal/content/domain"
	"github.com/civicspark/civic-site/internal/resource"
)

type backend struct {
	client    *client.Client
	mutations atomic.Int32
}

// newBackend runs the API on memory stores and returns a signed-in client.
func newBackend(t *testing.T) *backend {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router, auth := bootstrap.NewMemoryRouter()
	_, err := auth.SeedAdmin(context.Background(), "Admin", "admin@example.org", "secret123")
	require.NoError(t, err)

	b := &backend{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			b.mutations.Add(1)
		}
		router.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	b.client = client.New(srv.URL+"/api", nil)
	_, err = b.client.Login(context.Background(), "admin@example.org", "secret123")
	require.NoError(t, err)
	b.mutations.Store(0)
	return b
}

func ptr(s string) *string { return &s }

var (
	accept  = resource.ConfirmFunc(func(string) bool { return true })
	decline = resource.ConfirmFunc(func(string) bool { return false })
)

// crudCase describes how to drive and inspect one resource type.
type crudCase[T any, F any] struct {
	fields  func(i int) F
	id      func(T) string
	matches func(T, F) bool
}

func exercise[T any, F any](t *testing.T, b *backend, remote resource.Remote[T, F], labels resource.Labels, tc crudCase[T, F]) {
	ctx := context.Background()
	notes := &resource.Collector{}
	m := resource.NewManager[T, F](remote, notes, labels)

	require.NoError(t, m.Create(ctx, tc.fields(1)))
	require.NoError(t, m.Create(ctx, tc.fields(2)))
	before := m.Items()
	require.Len(t, before, 2)

	// create adds exactly one matching record
	f3 := tc.fields(3)
	require.NoError(t, m.Create(ctx, f3))
	after := m.Items()
	require.Len(t, after, len(before)+1)
	var created T
	n := 0
	for _, rec := range after {
		if tc.matches(rec, f3) {
			created = rec
			n++
		}
	}
	require.Equal(t, 1, n)
	assert.NotEmpty(t, tc.id(created))

	// update changes only the target
	f4 := tc.fields(4)
	require.NoError(t, m.Update(ctx, tc.id(created), f4))
	for _, rec := range m.Items() {
		if tc.id(rec) == tc.id(created) {
			assert.True(t, tc.matches(rec, f4))
		} else {
			assert.False(t, tc.matches(rec, f4))
		}
	}

	// idempotent list
	require.NoError(t, m.List(ctx))
	first := m.Items()
	require.NoError(t, m.List(ctx))
	assert.Equal(t, first, m.Items())

	// declined delete issues no request
	calls := b.mutations.Load()
	deleted, err := m.Delete(ctx, tc.id(created), decline)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Equal(t, calls, b.mutations.Load())
	assert.Len(t, m.Items(), 3)

	// confirmed delete removes it
	deleted, err = m.Delete(ctx, tc.id(created), accept)
	require.NoError(t, err)
	assert.True(t, deleted)
	require.Len(t, m.Items(), 2)
	for _, rec := range m.Items() {
		assert.NotEqual(t, tc.id(created), tc.id(rec))
	}

	assert.Equal(t, resource.KindSuccess, notes.Messages[0].Kind)
}

func TestProjectManager(t *testing.T) {
	b := newBackend(t)
	exercise[domain.Project, domain.ProjectFields](t, b, b.client.Projects(), resource.Labels{Singular: "project", Plural: "projects"},
		crudCase[domain.Project, domain.ProjectFields]{
			fields: func(i int) domain.ProjectFields {
				return domain.ProjectFields{Title: "Project " + string(rune('A'+i)), Description: ptr("about it")}
			},
			id: func(p domain.Project) string { return p.ID },
			matches: func(p domain.Project, f domain.ProjectFields) bool {
				return p.Title == f.Title && p.Description != nil && *p.Description == *f.Description
			},
		})
}

func TestEventManager(t *testing.T) {
	b := newBackend(t)
	exercise[domain.Event, domain.EventFields](t, b, b.client.Events(), resource.Labels{Singular: "event", Plural: "events"},
		crudCase[domain.Event, domain.EventFields]{
			fields: func(i int) domain.EventFields {
				return domain.EventFields{Name: "Event " + string(rune('A'+i)), Date: ptr("2024-0" + string(rune('0'+i)) + "-10"), Location: ptr("Hall")}
			},
			id: func(e domain.Event) string { return e.ID },
			matches: func(e domain.Event, f domain.EventFields) bool {
				return e.Name == f.Name && e.Date != nil && *e.Date == *f.Date
			},
		})
}

func TestCalendarManager(t *testing.T) {
	b := newBackend(t)
	exercise[domain.CalendarItem, domain.CalendarItemFields](t, b, b.client.CalendarItems(), resource.Labels{Singular: "calendar item", Plural: "calendar items"},
		crudCase[domain.CalendarItem, domain.CalendarItemFields]{
			fields: func(i int) domain.CalendarItemFields {
				return domain.CalendarItemFields{Title: "Item " + string(rune('A'+i)), StartDate: ptr("2024-05-0" + string(rune('0'+i)))}
			},
			id: func(c domain.CalendarItem) string { return c.ID },
			matches: func(c domain.CalendarItem, f domain.CalendarItemFields) bool {
				return c.Title == f.Title && c.StartDate != nil && *c.StartDate == *f.StartDate
			},
		})
}

func TestBeachCleanupScenario(t *testing.T) {
	b := newBackend(t)
	ctx := context.Background()
	notes := &resource.Collector{}
	m := resource.NewManager[domain.Project, domain.ProjectFields](b.client.Projects(), notes, resource.Labels{Singular: "project", Plural: "projects"})

	require.NoError(t, m.List(ctx))
	n := len(m.Items())

	require.NoError(t, m.Create(ctx, domain.ProjectFields{Title: "Beach Cleanup", Description: ptr("Monthly cleanup")}))
	items := m.Items()
	require.Len(t, items, n+1)
	assert.Equal(t, "Beach Cleanup", items[0].Title) // newest first
	assert.Equal(t, []resource.Message{{Kind: resource.KindSuccess, Text: "Project created successfully"}}, notes.Messages)
}

// failingRemote lists once and then fails everything.
type failingRemote struct {
	listed  bool
	deletes int
}

func (f *failingRemote) List(context.Context) ([]domain.Project, error) {
	if f.listed {
		return nil, &client.NetworkError{Op: "GET /projects", Err: errors.New("connection refused")}
	}
	f.listed = true
	return []domain.Project{{ID: "1", Title: "Kept"}}, nil
}

func (f *failingRemote) Create(context.Context, domain.ProjectFields) (domain.Project, error) {
	return domain.Project{}, &client.RequestError{Status: 422, Message: "The title field is required."}
}

func (f *failingRemote) Update(context.Context, string, domain.ProjectFields) (domain.Project, error) {
	return domain.Project{}, &client.RequestError{Status: 404, Message: "Project not found"}
}

func (f *failingRemote) Delete(context.Context, string) error {
	f.deletes++
	return &client.RequestError{Status: 500, Message: "Server error"}
}

func TestFailuresKeepPriorState(t *testing.T) {
	ctx := context.Background()
	remote := &failingRemote{}
	notes := &resource.Collector{}
	m := resource.NewManager[domain.Project, domain.ProjectFields](remote, notes, resource.Labels{Singular: "project", Plural: "projects"})

	require.NoError(t, m.List(ctx))
	require.Len(t, m.Items(), 1)

	require.Error(t, m.List(ctx))
	assert.Equal(t, "Kept", m.Items()[0].Title)

	require.Error(t, m.Create(ctx, domain.ProjectFields{Title: ""}))
	require.Error(t, m.Update(ctx, "1", domain.ProjectFields{Title: "x"}))
	_, err := m.Delete(ctx, "1", accept)
	require.Error(t, err)
	assert.Equal(t, 1, remote.deletes)
	assert.Len(t, m.Items(), 1)

	assert.Equal(t, []resource.Message{
		{Kind: resource.KindDestructive, Text: "Failed to load projects"},
		{Kind: resource.KindDestructive, Text: "The title field is required."},
		{Kind: resource.KindDestructive, Text: "Project not found"},
		{Kind: resource.KindDestructive, Text: "Server error"},
	}, notes.Messages)
}

func TestDeletePrompt(t *testing.T) {
	m := resource.NewManager[domain.Event, domain.EventFields](nil, &resource.Collector{}, resource.Labels{Singular: "event", Plural: "events"})
	assert.Equal(t, "Are you sure you want to delete this event?", m.DeletePrompt())

	var asked string
	ok, err := m.Delete(context.Background(), "x", resource.ConfirmFunc(func(p string) bool {
		asked = p
		return false
	}))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, m.DeletePrompt(), asked)
}
