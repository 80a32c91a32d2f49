package session_test

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
	"github.com/civicspark/civic-site/internal/session"
)

const (
	adminEmail    = "admin@example.org"
	adminPassword = "secret123"
)

type backend struct {
	url   string
	calls atomic.Int32
}

func newBackend(t *testing.T) *backend {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router, auth := bootstrap.NewMemoryRouter()
	_, err := auth.SeedAdmin(context.Background(), "Admin", adminEmail, adminPassword)
	require.NoError(t, err)

	b := &backend{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.calls.Add(1)
		router.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	b.url = srv.URL + "/api"
	return b
}

func TestInitialStateUnknown(t *testing.T) {
	s := session.New(client.New("http://unused", nil))
	assert.Equal(t, session.StateUnknown, s.State())
	assert.False(t, s.IsAuthenticated())
}

func TestCheckAuthStatusWithoutTokenMakesNoCall(t *testing.T) {
	b := newBackend(t)
	s := session.New(client.New(b.url, nil))

	s.CheckAuthStatus(context.Background())
	assert.Equal(t, session.StateAnonymous, s.State())
	assert.Zero(t, b.calls.Load())
}

func TestCheckAuthStatusRestoresSession(t *testing.T) {
	b := newBackend(t)
	store := client.NewMemoryTokenStore("")
	ctx := context.Background()

	first := session.New(client.New(b.url, store))
	require.NoError(t, first.Login(ctx, adminEmail, adminPassword))

	second := session.New(client.New(b.url, store))
	second.CheckAuthStatus(ctx)
	assert.Equal(t, session.StateAuthenticated, second.State())
	assert.Equal(t, adminEmail, second.Principal().Email)
}

func TestCheckAuthStatusDiscardsInvalidToken(t *testing.T) {
	b := newBackend(t)
	store := client.NewMemoryTokenStore("expired-token")
	s := session.New(client.New(b.url, store))
	ctx := context.Background()

	s.CheckAuthStatus(ctx)
	assert.Equal(t, session.StateAnonymous, s.State())
	_, ok := store.Load()
	assert.False(t, ok)

	// runs once per store
	calls := b.calls.Load()
	s.CheckAuthStatus(ctx)
	assert.Equal(t, calls, b.calls.Load())
}

func TestLogin(t *testing.T) {
	b := newBackend(t)
	ctx := context.Background()

	store := client.NewMemoryTokenStore("")
	s := session.New(client.New(b.url, store))
	require.NoError(t, s.Login(ctx, adminEmail, adminPassword))
	assert.Equal(t, session.StateAuthenticated, s.State())
	assert.True(t, s.IsAuthenticated())
	_, ok := store.Load()
	assert.True(t, ok)

	failedStore := client.NewMemoryTokenStore("")
	failed := session.New(client.New(b.url, failedStore))
	err := failed.Login(ctx, adminEmail, "not-the-password")
	var reqErr *client.RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, session.StateAnonymous, failed.State())
	_, ok = failedStore.Load()
	assert.False(t, ok)
}

func TestRegisterDoesNotCheckConfirmation(t *testing.T) {
	b := newBackend(t)
	s := session.New(client.New(b.url, nil))

	// the server still rejects the mismatch
	err := s.Register(context.Background(), "Jane Doe", "jane@x.org", "pw123456", "pw123457")
	require.Error(t, err)
	assert.Equal(t, int32(1), b.calls.Load())
	assert.Equal(t, session.StateAnonymous, s.State())

	require.NoError(t, s.Register(context.Background(), "Jane Doe", "jane@x.org", "pw123456", "pw123456"))
	assert.Equal(t, "jane@x.org", s.Principal().Email)
}

func TestLogoutIsBestEffort(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	store := client.NewMemoryTokenStore("some-token")
	s := session.New(client.New(srv.URL, store))

	err := s.Logout(context.Background())
	require.Error(t, err)
	assert.Equal(t, session.StateAnonymous, s.State())
	assert.Nil(t, s.Principal())
	_, ok := store.Load()
	assert.False(t, ok)
}
