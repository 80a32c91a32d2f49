package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civicspark/civic-site/internal/admins/domain"
	"github.com/civicspark/civic-site/internal/admins/repository"
	"github.com/civicspark/civic-site/internal/admins/service"
)

func newService() *service.AuthService {
	return service.NewAuthService(
		repository.NewMemoryAdminRepository(),
		repository.NewMemoryTokenRepository(time.Hour),
	)
}

func register(t *testing.T, svc *service.AuthService) *domain.AuthResponse {
	t.Helper()
	resp, err := svc.Register(context.Background(), domain.RegisterRequest{
		Name:                 "Ada",
		Email:                " Ada@Example.org ",
		Password:             "secret123",
		PasswordConfirmation: "secret123",
	})
	require.NoError(t, err)
	return resp
}

func TestRegisterIssuesToken(t *testing.T) {
	svc := newService()
	resp := register(t, svc)

	assert.NotEmpty(t, resp.Token)
	assert.Len(t, resp.Token, 64)
	assert.Equal(t, "ada@example.org", resp.Admin.Email)
	assert.NotEqual(t, "secret123", resp.Admin.PasswordHash)

	admin, err := svc.Authenticate(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.Admin.ID, admin.ID)
}

func TestRegisterValidation(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	tests := []struct {
		name  string
		req   domain.RegisterRequest
		field string
	}{
		{"missing name", domain.RegisterRequest{Email: "a@b.org", Password: "secret123", PasswordConfirmation: "secret123"}, "name"},
		{"bad email", domain.RegisterRequest{Name: "A", Email: "nope", Password: "secret123", PasswordConfirmation: "secret123"}, "email"},
		{"short password", domain.RegisterRequest{Name: "A", Email: "a@b.org", Password: "short", PasswordConfirmation: "short"}, "password"},
		{"mismatch", domain.RegisterRequest{Name: "A", Email: "a@b.org", Password: "secret123", PasswordConfirmation: "secret124"}, "password"},
		{"password over bcrypt limit", domain.RegisterRequest{Name: "A", Email: "a@b.org", Password: strings.Repeat("x", 73), PasswordConfirmation: strings.Repeat("x", 73)}, "password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.req)
			var vErr *domain.ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newService()
	register(t, svc)

	_, err := svc.Register(context.Background(), domain.RegisterRequest{
		Name:                 "Other",
		Email:                "ada@example.org",
		Password:             "secret123",
		PasswordConfirmation: "secret123",
	})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	svc := newService()
	register(t, svc)
	ctx := context.Background()

	resp, err := svc.Login(ctx, domain.LoginRequest{Email: "ada@example.org", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	_, err = svc.Login(ctx, domain.LoginRequest{Email: "ada@example.org", Password: "wrong-pass"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(ctx, domain.LoginRequest{Email: "nobody@example.org", Password: "secret123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogoutRevokesToken(t *testing.T) {
	svc := newService()
	resp := register(t, svc)
	ctx := context.Background()

	require.NoError(t, svc.Logout(ctx, resp.Token))

	_, err := svc.Authenticate(ctx, resp.Token)
	assert.ErrorIs(t, err, domain.ErrTokenNotFound)
}

func TestSeedAdminIsIdempotent(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	created, err := svc.SeedAdmin(ctx, "Admin", "admin@example.org", "password1")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.SeedAdmin(ctx, "Admin", "admin@example.org", "password2")
	require.NoError(t, err)
	assert.False(t, created)

	_, err = svc.Login(ctx, domain.LoginRequest{Email: "admin@example.org", Password: "password1"})
	assert.NoError(t, err)
}

func TestSeedAdminSkipsWhenUnset(t *testing.T) {
	created, err := newService().SeedAdmin(context.Background(), "Admin", "", "")
	require.NoError(t, err)
	assert.False(t, created)
}
