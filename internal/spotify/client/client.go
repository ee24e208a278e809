package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	errs "github.com/tessro/termspot/internal/errors"
)

const (
	// BaseURL is the Spotify Web API base URL.
	BaseURL = "https://api.spotify.com/v1"

	defaultTimeout = 30 * time.Second

	// Spotify's limit is a rolling 30s window; stay well below it.
	defaultRate  = rate.Limit(5)
	defaultBurst = 5
)

// Client is a Spotify Web API client. Each request is attempted once.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	logger     *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l.WithPrefix("spotify")
		}
	}
}

// WithBaseTransport sets the transport beneath the OAuth2 layer.
func WithBaseTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		if t, ok := c.httpClient.Transport.(*oauth2.Transport); ok {
			t.Base = rt
		}
	}
}

// WithRateLimit sets the client-side request rate.
func WithRateLimit(r rate.Limit, burst int) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(r, burst)
	}
}

// New creates a Spotify client that authorizes requests with ts.
func New(ts oauth2.TokenSource, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout:   defaultTimeout,
			Transport: &oauth2.Transport{Source: ts},
		},
		baseURL: BaseURL,
		limiter: rate.NewLimiter(defaultRate, defaultBurst),
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get performs a GET request to the Spotify API.
func (c *Client) Get(ctx context.Context, path string, result interface{}) error {
	return c.request(ctx, http.MethodGet, path, nil, result)
}

// Post performs a POST request to the Spotify API.
func (c *Client) Post(ctx context.Context, path string, body interface{}, result interface{}) error {
	return c.request(ctx, http.MethodPost, path, body, result)
}

// Put performs a PUT request to the Spotify API.
func (c *Client) Put(ctx context.Context, path string, body interface{}, result interface{}) error {
	return c.request(ctx, http.MethodPut, path, body, result)
}

func (c *Client) request(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("request not sent: %w", err)
	}

	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
		c.logger.Debug("request", "method", method, "path", path, "body", string(jsonBody))
	} else {
		c.logger.Debug("request", "method", method, "path", path)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		var uerr *url.Error
		if errors.As(err, &uerr) && uerr.Timeout() {
			return fmt.Errorf("%w: %v", errs.ErrTimeout, err)
		}
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug("response", "status", resp.StatusCode, "path", path)

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if resp.StatusCode >= 400 {
		c.logger.Debug("error body", "body", string(respBody))
		var apiErr APIError
		if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.ErrorInfo.Message != "" {
			return &apiErr
		}
		apiErr.ErrorInfo.Status = resp.StatusCode
		apiErr.ErrorInfo.Message = http.StatusText(resp.StatusCode)
		return &apiErr
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}

// APIError represents a Spotify API error response.
type APIError struct {
	ErrorInfo struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
		Reason  string `json:"reason"`
	} `json:"error"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Spotify API error %d: %s", e.ErrorInfo.Status, e.ErrorInfo.Message)
}

// Unwrap maps well-known statuses onto the shared sentinel errors.
func (e *APIError) Unwrap() error {
	switch {
	case e.ErrorInfo.Status == http.StatusUnauthorized:
		return errs.ErrNotAuthenticated
	case e.IsNoActiveDevice():
		return errs.ErrNoActiveDevice
	case e.IsPremiumRequired():
		return errs.ErrPremiumRequired
	case e.IsRateLimited():
		return errs.ErrRateLimited
	}
	return nil
}

// IsNoActiveDevice returns true if the error indicates no active device.
func (e *APIError) IsNoActiveDevice() bool {
	return e.ErrorInfo.Status == http.StatusNotFound
}

// IsPremiumRequired returns true for the 403 Spotify sends to free accounts.
func (e *APIError) IsPremiumRequired() bool {
	return e.ErrorInfo.Status == http.StatusForbidden && e.ErrorInfo.Reason == "PREMIUM_REQUIRED"
}

// IsRateLimited returns true if Spotify rejected the request with 429.
func (e *APIError) IsRateLimited() bool {
	return e.ErrorInfo.Status == http.StatusTooManyRequests
}

// BuildURL builds a URL with query parameters.
func BuildURL(path string, params map[string]string) string {
	if len(params) == 0 {
		return path
	}

	u, _ := url.Parse(path)
	q := u.Query()
	for k, v := range params {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()
	return u.String()
}
