// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jeranaias/blogsmith-tui/internal/model"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// =============================================================================
// CONSTANTS
// =============================================================================

const (
	// APIPrefix is prepended to every resource path. The health probe is
	// served outside it.
	APIPrefix = "/api/v1"

	// HealthPath is the unversioned connectivity probe.
	HealthPath = "/health"

	// DefaultBaseURL is used when no base URL is configured.
	DefaultBaseURL = "http://localhost:8000"

	// DefaultGenerateTimeout bounds a generate call.
	DefaultGenerateTimeout = 120 * time.Second

	// DefaultRequestTimeout bounds list, get, delete and health calls.
	DefaultRequestTimeout = 30 * time.Second

	// DefaultSkip and DefaultLimit page the history listing.
	DefaultSkip  = 0
	DefaultLimit = 20

	// RequestIDHeader carries a per-request UUID for log correlation.
	RequestIDHeader = "X-Request-ID"

	maxResponseBytes = 10 << 20
)

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the API client.
type ClientConfig struct {
	// BaseURL is the backend root, without the /api/v1 prefix.
	BaseURL string

	// GenerateTimeout bounds a generate call (default: 120s).
	GenerateTimeout time.Duration

	// RequestTimeout bounds every other call (default: 30s).
	RequestTimeout time.Duration

	// RateLimit caps outbound requests per second. Zero or less disables
	// the cap. Requests over the cap wait; they are never dropped.
	RateLimit float64

	// UserAgent is sent with every request when set.
	UserAgent string

	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:         DefaultBaseURL,
		GenerateTimeout: DefaultGenerateTimeout,
		RequestTimeout:  DefaultRequestTimeout,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the blog generation backend. It is safe for concurrent
// use.
//
// Example:
//
//	client := api.NewClient(nil)
//	if _, err := client.CheckHealth(ctx); err != nil {
//	    // backend unreachable
//	}
//	list, err := client.ListBlogs(ctx, api.DefaultSkip, api.DefaultLimit)
type Client struct {
	config     ClientConfig
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a client. A nil config uses DefaultConfig; zero fields
// are filled with defaults.
func NewClient(config *ClientConfig) *Client {
	cfg := *DefaultConfig()
	if config != nil {
		cfg = *config
	}

	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.GenerateTimeout <= 0 {
		cfg.GenerateTimeout = DefaultGenerateTimeout
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		// Deadlines come from per-call contexts, so the client itself has
		// no blanket timeout.
		httpClient = &http.Client{}
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}

	return &Client{
		config:     cfg,
		httpClient: httpClient,
		limiter:    limiter,
	}
}

// BaseURL returns the configured backend root.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// =============================================================================
// RESOURCE OPERATIONS
// =============================================================================

// Generate asks the backend to write a post and returns the stored record.
func (c *Client) Generate(ctx context.Context, req model.GenerationRequest) (*model.BlogPost, error) {
	status, body, err := c.roundTrip(ctx, http.MethodPost, APIPrefix+"/generate", nil, req, c.config.GenerateTimeout)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return nil, statusError(status, body, "generate failed")
	}

	var post model.BlogPost
	if err := decode(body, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// ListBlogs returns one page of stored posts, newest first as ordered by the
// backend. A negative skip or non-positive limit falls back to the defaults.
func (c *Client) ListBlogs(ctx context.Context, skip, limit int) (*model.BlogList, error) {
	if skip < 0 {
		skip = DefaultSkip
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	query := url.Values{}
	query.Set("skip", strconv.Itoa(skip))
	query.Set("limit", strconv.Itoa(limit))

	status, body, err := c.roundTrip(ctx, http.MethodGet, APIPrefix+"/blogs", query, nil, c.config.RequestTimeout)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, statusError(status, body, "list blogs failed")
	}

	var list model.BlogList
	if err := decode(body, &list); err != nil {
		return nil, err
	}
	if list.Blogs == nil {
		list.Blogs = []model.BlogPost{}
	}
	return &list, nil
}

// GetBlog fetches a single post.
func (c *Client) GetBlog(ctx context.Context, id model.ID) (*model.BlogPost, error) {
	if id.IsZero() {
		return nil, &ClientError{Type: ErrTypeInvalidRequest, Message: "blog id is required"}
	}
	status, body, err := c.roundTrip(ctx, http.MethodGet, blogPath(id), nil, nil, c.config.RequestTimeout)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, statusError(status, body, "get blog failed")
	}

	var post model.BlogPost
	if err := decode(body, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// DeleteBlog removes a post. The record is gone on the backend once this
// returns without error.
func (c *Client) DeleteBlog(ctx context.Context, id model.ID) (*model.Confirmation, error) {
	if id.IsZero() {
		return nil, &ClientError{Type: ErrTypeInvalidRequest, Message: "blog id is required"}
	}
	status, body, err := c.roundTrip(ctx, http.MethodDelete, blogPath(id), nil, nil, c.config.RequestTimeout)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK && status != http.StatusNoContent {
		return nil, statusError(status, body, "delete blog failed")
	}

	var conf model.Confirmation
	if len(bytes.TrimSpace(body)) > 0 {
		if err := decode(body, &conf); err != nil {
			return nil, err
		}
	}
	return &conf, nil
}

// =============================================================================
// HEALTH CHECK
// =============================================================================

// CheckHealth probes the unversioned health endpoint. Any 2xx response
// means the backend is reachable; an undecodable body still counts.
func (c *Client) CheckHealth(ctx context.Context) (*model.HealthStatus, error) {
	status, body, err := c.roundTrip(ctx, http.MethodGet, HealthPath, nil, nil, c.config.RequestTimeout)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, statusError(status, body, "health check failed")
	}

	var health model.HealthStatus
	if err := json.Unmarshal(body, &health); err != nil {
		log.Debug().Err(err).Msg("health body not decodable, treating backend as reachable")
	}
	return &health, nil
}

// =============================================================================
// TRANSPORT
// =============================================================================

// roundTrip performs one request and returns the status and body. Transport
// failures become *ClientError; HTTP error statuses are left to the caller.
func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, payload any, timeout time.Duration) (int, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var reader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, &ClientError{Type: ErrTypeInvalidRequest, Message: "failed to marshal request", Cause: err}
		}
		reader = bytes.NewReader(data)
	}

	target := c.config.BaseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return 0, nil, &ClientError{Type: ErrTypeInvalidRequest, Message: "failed to create request", Cause: err}
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return 0, nil, transportError(err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Debug().Err(err).
			Str("method", method).
			Str("path", path).
			Str("request_id", requestID).
			Dur("duration", time.Since(start)).
			Msg("api request failed")
		return 0, nil, transportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return 0, nil, &ClientError{
			Type:       ErrTypeInvalidResponse,
			StatusCode: resp.StatusCode,
			Message:    "failed to read response",
			Cause:      transportError(err),
		}
	}

	log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Str("request_id", requestID).
		Dur("duration", time.Since(start)).
		Msg("api request")

	return resp.StatusCode, body, nil
}

func blogPath(id model.ID) string {
	return APIPrefix + "/blogs/" + url.PathEscape(id.String())
}

func decode(body []byte, out any) error {
	if err := json.Unmarshal(body, out); err != nil {
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}
	return nil
}

// statusError builds the error for a non-success HTTP status.
func statusError(status int, body []byte, message string) *ClientError {
	errType := ErrTypeBackend
	if status == http.StatusNotFound {
		errType = ErrTypeNotFound
	}
	return &ClientError{
		Type:       errType,
		StatusCode: status,
		Message:    fmt.Sprintf("%s with status %d", message, status),
		Detail:     extractDetail(body),
	}
}

// transportError classifies a failure that produced no HTTP response.
func transportError(err error) *ClientError {
	if errors.Is(err, context.DeadlineExceeded) {
		return &ClientError{Type: ErrTypeTimeout, Message: ErrTimeout.Message, Cause: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &ClientError{Type: ErrTypeTimeout, Message: ErrTimeout.Message, Cause: err}
	}
	if errors.Is(err, context.Canceled) {
		return &ClientError{Type: ErrTypeConnection, Message: "request canceled", Cause: err}
	}
	return &ClientError{Type: ErrTypeConnection, Message: ErrConnection.Message, Cause: err}
}
