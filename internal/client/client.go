// Package client talks JSON over HTTP to the civic API on behalf of one
// visitor. A Client holds at most one credential token, loaded from and
// persisted to a TokenStore.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/civicspark/civic-site/internal/logging"
)

type Client struct {
	baseURL string
	http    *http.Client
	store   TokenStore
	token   string
}

type Option func(*Client)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New returns a client for the API rooted at baseURL (for example
// "http://localhost:8000/api"), seeded with the token held by store.
func New(baseURL string, store TokenStore, opts ...Option) *Client {
	if store == nil {
		store = NewMemoryTokenStore("")
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
		store:   store,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.token, _ = store.Load()
	return c
}

// Token returns the credential currently attached to requests.
func (c *Client) Token() string {
	return c.token
}

func (c *Client) HasToken() bool {
	return c.token != ""
}

func (c *Client) setToken(token string) {
	c.token = token
	if err := c.store.Save(token); err != nil {
		log.Warn().Err(err).Msg("persist token failed")
	}
}

// ClearToken forgets the token in memory and in the store.
func (c *Client) ClearToken() {
	c.token = ""
	if err := c.store.Clear(); err != nil {
		log.Warn().Err(err).Msg("clear token failed")
	}
}

// Do sends body as JSON to endpoint and decodes the response into out.
// body and out may be nil.
func (c *Client) Do(ctx context.Context, method, endpoint string, body, out any) error {
	return c.do(ctx, method, endpoint, body, out, nil)
}

func (c *Client) do(ctx context.Context, method, endpoint string, body, out any, header http.Header) error {
	logger := logging.FromContext(ctx)

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, endpoint, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if rid := logging.RequestID(ctx); rid != "" {
		req.Header.Set("X-Request-Id", rid)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Error().Err(err).Str("method", method).Str("endpoint", endpoint).Msg("api request failed")
		return &NetworkError{Op: method + " " + endpoint, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error().Err(err).Str("method", method).Str("endpoint", endpoint).Msg("api response read failed")
		return &NetworkError{Op: method + " " + endpoint, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		reqErr := &RequestError{Status: resp.StatusCode, Message: errorMessage(resp.StatusCode, data)}
		logger.Warn().
			Str("method", method).
			Str("endpoint", endpoint).
			Int("status", resp.StatusCode).
			Str("message", reqErr.Message).
			Msg("api request rejected")
		if resp.StatusCode == http.StatusUnauthorized {
			return &AuthorizationError{Err: reqErr}
		}
		return reqErr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, endpoint, err)
	}
	return nil
}

func errorMessage(status int, data []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return fmt.Sprintf("HTTP error: status %d", status)
}

// IsUnauthorized reports whether err is an AuthorizationError.
func IsUnauthorized(err error) bool {
	var authErr *AuthorizationError
	return errors.As(err, &authErr)
}
