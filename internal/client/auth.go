package client

import (
	"context"
	"net/http"

	"github.com/civicspark/civic-site/internal/admins/domain"
)

type authResponse struct {
	Token string        `json:"token"`
	Admin *domain.Admin `json:"admin"`
}

// Login exchanges credentials for a token and keeps it.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.Admin, error) {
	var resp authResponse
	err := c.Do(ctx, http.MethodPost, "/auth/login", domain.LoginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	c.setToken(resp.Token)
	return resp.Admin, nil
}

// Register creates an admin account and keeps the issued token.
func (c *Client) Register(ctx context.Context, req domain.RegisterRequest) (*domain.Admin, error) {
	var resp authResponse
	if err := c.Do(ctx, http.MethodPost, "/auth/register", req, &resp); err != nil {
		return nil, err
	}
	c.setToken(resp.Token)
	return resp.Admin, nil
}

// Logout revokes the token remotely. The local token is cleared whatever the
// outcome; the remote error is returned for logging only.
func (c *Client) Logout(ctx context.Context) error {
	defer c.ClearToken()
	if !c.HasToken() {
		return nil
	}
	return c.Do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

// CurrentAdmin returns the admin owning the held token.
func (c *Client) CurrentAdmin(ctx context.Context) (*domain.Admin, error) {
	var admin domain.Admin
	if err := c.Do(ctx, http.MethodGet, "/auth/me", nil, &admin); err != nil {
		return nil, err
	}
	return &admin, nil
}
