package storyblok

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Kiran1689/storyblok-mcp-server/internal/logger"
)

// Request describes one Management API call.
type Request struct {
	Method string
	// Path is relative to the scope root, e.g. "/stories/42".
	Path  string
	Scope Scope
	Query Params
	// Body is JSON-encoded when non-nil.
	Body any
}

// Client performs Management API calls for a single space. It is safe for
// concurrent use and never retries.
type Client struct {
	settings   Settings
	httpClient *http.Client
	logger     *logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(log *logger.Logger) Option {
	return func(c *Client) {
		c.logger = log
	}
}

// NewClient validates settings and builds a client.
func NewClient(settings Settings, opts ...Option) (*Client, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	settings = settings.withDefaults()

	c := &Client{
		settings:   settings,
		httpClient: &http.Client{Timeout: settings.Timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logger.Discard()
	}
	return c, nil
}

// SpaceID returns the space this client is bound to.
func (c *Client) SpaceID() string {
	return c.settings.SpaceID
}

// ManagementURL builds a space-scoped URL.
func (c *Client) ManagementURL(path string) string {
	return BuildManagementURL(c.settings.BaseURL, c.settings.SpaceID, path)
}

// AccountURL builds a URL outside the space prefix.
func (c *Client) AccountURL(path string) string {
	return BuildAccountURL(c.settings.BaseURL, path)
}

func (c *Client) endpoint(req Request) string {
	if req.Scope == ScopeAccount {
		return c.AccountURL(req.Path)
	}
	return c.ManagementURL(req.Path)
}

// Do issues exactly one HTTP call and translates the response.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	endpoint := c.endpoint(req)

	target := endpoint
	if len(req.Query) > 0 {
		target += "?" + req.Query.Values().Encode()
	}

	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body for %s: %w", endpoint, err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build request %s %s: %w", req.Method, endpoint, err)
	}
	httpReq.Header = ManagementHeaders(c.settings.ManagementToken)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Warn("storyblok request failed",
			"method", req.Method,
			"endpoint", endpoint,
			"error", err,
		)
		return nil, fmt.Errorf("request %s %s: %w", req.Method, endpoint, err)
	}

	c.logger.Debug("storyblok request completed",
		"method", req.Method,
		"endpoint", endpoint,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	return HandleResponse(resp, endpoint, c.settings.SpaceID)
}

// Get is shorthand for a space-scoped GET.
func (c *Client) Get(ctx context.Context, path string, query Params) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query})
}

// Ping checks that the API root answers with the configured token.
func (c *Client) Ping(ctx context.Context) error {
	root, err := url.Parse(c.settings.BaseURL)
	if err != nil {
		return fmt.Errorf("parse base url: %w", err)
	}
	root.Path = "/"
	endpoint := root.String()
	root.RawQuery = url.Values{"token": []string{c.settings.ManagementToken}}.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, root.String(), nil)
	if err != nil {
		return fmt.Errorf("build ping request: %w", err)
	}
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("request GET %s: %w", endpoint, err)
	}
	_, err = HandleResponse(resp, endpoint, c.settings.SpaceID)
	return err
}
