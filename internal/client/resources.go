package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/civicspark/civic-site/internal/content/domain"
)

// Resource is the list/create/update/delete surface of one content type.
type Resource[T any, F any] struct {
	c    *Client
	path string
}

func NewResource[T any, F any](c *Client, path string) Resource[T, F] {
	return Resource[T, F]{c: c, path: path}
}

func (r Resource[T, F]) List(ctx context.Context) ([]T, error) {
	var resp struct {
		Data []T `json:"data"`
	}
	if err := r.c.Do(ctx, http.MethodGet, r.path, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		resp.Data = []T{}
	}
	return resp.Data, nil
}

func (r Resource[T, F]) Create(ctx context.Context, fields F) (T, error) {
	var rec T
	err := r.c.Do(ctx, http.MethodPost, r.path, fields, &rec)
	return rec, err
}

func (r Resource[T, F]) Update(ctx context.Context, id string, fields F) (T, error) {
	var rec T
	err := r.c.Do(ctx, http.MethodPut, r.path+"/"+url.PathEscape(id), fields, &rec)
	return rec, err
}

func (r Resource[T, F]) Delete(ctx context.Context, id string) error {
	return r.c.Do(ctx, http.MethodDelete, r.path+"/"+url.PathEscape(id), nil, nil)
}

func (c *Client) Projects() Resource[domain.Project, domain.ProjectFields] {
	return NewResource[domain.Project, domain.ProjectFields](c, "/projects")
}

func (c *Client) Events() Resource[domain.Event, domain.EventFields] {
	return NewResource[domain.Event, domain.EventFields](c, "/events")
}

func (c *Client) CalendarItems() Resource[domain.CalendarItem, domain.CalendarItemFields] {
	return NewResource[domain.CalendarItem, domain.CalendarItemFields](c, "/calendar")
}
