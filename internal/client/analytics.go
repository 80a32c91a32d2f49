package client

import (
	"context"
	"net/http"

	"github.com/civicspark/civic-site/internal/stats"
	"github.com/civicspark/civic-site/internal/visits/domain"
)

func (c *Client) DashboardStats(ctx context.Context) (stats.Dashboard, error) {
	var out stats.Dashboard
	err := c.Do(ctx, http.MethodGet, "/admin/stats", nil, &out)
	return out, err
}

// Visits returns the most recent visits, newest first.
func (c *Client) Visits(ctx context.Context) ([]domain.Visit, error) {
	var resp struct {
		Data []domain.Visit `json:"data"`
	}
	if err := c.Do(ctx, http.MethodGet, "/visits", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) VisitStats(ctx context.Context) (domain.Stats, error) {
	var out domain.Stats
	err := c.Do(ctx, http.MethodGet, "/visits/stats", nil, &out)
	return out, err
}

// TrackVisit records a page view on behalf of the visitor at ip.
func (c *Client) TrackVisit(ctx context.Context, ip, userAgent string) error {
	h := http.Header{}
	if ip != "" {
		h.Set("X-Forwarded-For", ip)
	}
	if userAgent != "" {
		h.Set("User-Agent", userAgent)
	}
	return c.do(ctx, http.MethodPost, "/track-visit", nil, nil, h)
}
