package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civicspark/civic-site/internal/client"
	"github.com/civicspark/civic-site/internal/content/domain"
)

func ptr(s string) *string { return &s }

func loggedIn(t *testing.T) *client.Client {
	t.Helper()
	c := client.New(newBackend(t), nil)
	_, err := c.Login(context.Background(), adminEmail, adminPassword)
	require.NoError(t, err)
	return c
}

func TestProjectsRoundTrip(t *testing.T) {
	c := loggedIn(t)
	ctx := context.Background()
	projects := c.Projects()

	created, err := projects.Create(ctx, domain.ProjectFields{Title: "Beach Cleanup", Description: ptr("Monthly cleanup")})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	updated, err := projects.Update(ctx, created.ID, domain.ProjectFields{Title: "Beach Cleanup 2"})
	require.NoError(t, err)
	assert.Equal(t, "Beach Cleanup 2", updated.Title)
	assert.Nil(t, updated.Description)

	list, err := projects.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Beach Cleanup 2", list[0].Title)

	require.NoError(t, projects.Delete(ctx, created.ID))
	list, err = projects.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestEventsAndCalendarOrdering(t *testing.T) {
	c := loggedIn(t)
	ctx := context.Background()

	_, err := c.Events().Create(ctx, domain.EventFields{Name: "Later", Date: ptr("2024-09-01")})
	require.NoError(t, err)
	_, err = c.Events().Create(ctx, domain.EventFields{Name: "Sooner", Date: ptr("2024-03-01"), Location: ptr("Library")})
	require.NoError(t, err)

	events, err := c.Events().List(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "Sooner", events[0].Name)

	_, err = c.CalendarItems().Create(ctx, domain.CalendarItemFields{Title: "Council", StartDate: ptr("2024-05-01"), EndDate: ptr("2024-05-02")})
	require.NoError(t, err)
	items, err := c.CalendarItems().List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "2024-05-02", *items[0].EndDate)
}

func TestMutationWithoutTokenIsUnauthorized(t *testing.T) {
	c := client.New(newBackend(t), nil)

	_, err := c.Projects().Create(context.Background(), domain.ProjectFields{Title: "Nope"})
	assert.True(t, client.IsUnauthorized(err))
}

func TestAnalytics(t *testing.T) {
	c := loggedIn(t)
	ctx := context.Background()

	require.NoError(t, c.TrackVisit(ctx, "203.0.113.7", "Mozilla/5.0 Firefox/126.0"))
	require.NoError(t, c.TrackVisit(ctx, "203.0.113.8", ""))

	visits, err := c.Visits(ctx)
	require.NoError(t, err)
	require.Len(t, visits, 2)
	ips := []string{*visits[0].IPAddress, *visits[1].IPAddress}
	assert.ElementsMatch(t, []string{"203.0.113.7", "203.0.113.8"}, ips)

	vs, err := c.VisitStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, vs.TotalVisits)
	assert.Equal(t, 2, vs.UniqueIPs)

	dash, err := c.DashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, dash.Visits)
}

func TestTrackVisitForwardsHeaders(t *testing.T) {
	var fwd, ua, auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fwd, ua, auth = r.Header.Get("X-Forwarded-For"), r.Header.Get("User-Agent"), r.Header.Get("Authorization")
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	require.NoError(t, client.New(srv.URL, nil).TrackVisit(context.Background(), "198.51.100.1", "TestAgent/1.0"))
	assert.Equal(t, "198.51.100.1", fwd)
	assert.Equal(t, "TestAgent/1.0", ua)
	assert.Empty(t, auth)
}
