// Package client provides a Go client library for the meal planner API.
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
	"time"
)

const apiPrefix = "/api/v1"

// Client is a meal planner API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenStore
}

// Option is a client configuration option
type Option func(*Client)

// WithTimeout sets the HTTP client timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithTokenStore sets where credentials are kept between requests.
func WithTokenStore(s TokenStore) Option {
	return func(c *Client) {
		c.tokens = s
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a new client. baseURL is the server root, e.g.
// http://localhost:8000; the /api/v1 prefix is added per request.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		tokens: NewMemoryTokenStore(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Tokens returns the client's credential store.
func (c *Client) Tokens() TokenStore {
	return c.tokens
}

// errorBody covers both {"error": "..."} and {"detail": ...} responses.
type errorBody struct {
	Error  string          `json:"error"`
	Detail json.RawMessage `json:"detail"`
}

func errorMessage(status int, body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		if eb.Error != "" {
			return eb.Error
		}
		if len(eb.Detail) > 0 {
			var s string
			if json.Unmarshal(eb.Detail, &s) == nil && s != "" {
				return s
			}
			var items []struct {
				Msg string `json:"msg"`
			}
			if json.Unmarshal(eb.Detail, &items) == nil && len(items) > 0 {
				msgs := make([]string, 0, len(items))
				for _, it := range items {
					msgs = append(msgs, it.Msg)
				}
				return strings.Join(msgs, "; ")
			}
		}
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return fmt.Sprintf("status %d", status)
}

// do performs an HTTP request and decodes a 2xx body into out when out is
// not nil. Authenticated requests carry the stored access token; a 401 on
// one of them clears the store.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}, authenticated bool) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if authenticated {
		creds, err := c.tokens.Load()
		if err != nil {
			return fmt.Errorf("failed to load credentials: %w", err)
		}
		if creds.AccessToken == "" {
			return &AuthError{Message: "not logged in"}
		}
		req.Header.Set("Authorization", "Bearer "+creds.AccessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized && authenticated {
		if err := c.tokens.Clear(); err != nil {
			return fmt.Errorf("failed to clear credentials: %w", err)
		}
		return &AuthError{Message: errorMessage(resp.StatusCode, data)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(resp.StatusCode, data)}
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// IsNotFound reports whether err is an API 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
