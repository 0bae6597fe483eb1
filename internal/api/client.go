// Package api implements the typed HTTP client for the shop backend:
// auth/v1 endpoints for the account lifecycle and rest/v1 endpoints for
// catalog and user data. Credential selection happens here: every request
// carries the service anon key in the apikey header, and the Authorization
// bearer is chosen per endpoint scope.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/solemate/cli/internal/config"
	"github.com/solemate/cli/internal/session"
)

// Scope is the endpoint category that drives credential selection.
type Scope int

const (
	// ScopePublic endpoints (auth, catalog) are served with the anon key.
	ScopePublic Scope = iota
	// ScopeUser endpoints (favorites, profiles) require the user's bearer
	// token. Without a signed-in session the anon key is attached instead;
	// the backend is expected to reject such requests.
	ScopeUser
)

// Client is the API client for the shop backend.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	apiKey  string
	session *session.Store
}

// New creates an API client bound to the given session store.
func New(cfg *config.Config, store *session.Store) *Client {
	timeout := 30 * time.Second
	if d, err := time.ParseDuration(cfg.Server.Timeout); err == nil && d > 0 {
		timeout = d
	}

	return &Client{
		BaseURL:    cfg.Server.URL,
		HTTPClient: &http.Client{Timeout: timeout},
		apiKey:     cfg.Server.AnonKey,
		session:    store,
	}
}

// Session returns the session store the client was constructed with.
func (c *Client) Session() *session.Store {
	return c.session
}

// credentialFor picks the Authorization bearer for an endpoint scope.
// Exactly one credential is attached per request.
func (c *Client) credentialFor(scope Scope) string {
	if scope == ScopeUser && c.session != nil {
		if token := c.session.Token(); token != "" {
			return token
		}
	}
	return c.apiKey
}

// do executes a request with the credential chosen for the scope.
func (c *Client) do(ctx context.Context, method, path string, scope Scope, body, out interface{}) error {
	return c.send(ctx, method, path, c.credentialFor(scope), body, out, nil)
}

// send executes a request with an explicit bearer credential. Non-2xx
// responses become *StatusError, network failures become *TransportError,
// and a 2xx with no body where out is expected becomes ErrEmptyBody.
func (c *Client) send(ctx context.Context, method, path, bearer string, body, out interface{}, extra http.Header) error {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+"/"+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+bearer)
	req.Header.Set("X-Request-ID", uuid.NewString())
	for key, values := range extra {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return classifyTransport(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode, Body: string(bytes.TrimSpace(data))}
	}

	if out == nil {
		return nil
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return ErrEmptyBody
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
