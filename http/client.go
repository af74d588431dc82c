// Package http implements the review service transport: a client that
// satisfies bugspotter.Reviewer and a chi server that exposes any Reviewer
// over the same wire format.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/bugspotter"
)

// Compile-time interface verification.
var _ bugspotter.Reviewer = (*Client)(nil)

// Wire constants.
const (
	ReviewPath      = "/ai/get-review"
	DefaultEndpoint = "http://localhost:3000"
)

// maxResponseBytes bounds the review body read from the service.
const maxResponseBytes = 4 << 20

// StatusError is returned when the review service answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("review service returned HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("review service returned HTTP %d: %s", e.StatusCode, e.Body)
}

// UnreachableMessage is the user-facing failure text for an endpoint.
func UnreachableMessage(endpoint string) string {
	return fmt.Sprintf("Could not fetch review. Is the review service running at %s ?", endpoint)
}

// Client posts review requests to a remote review service.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a Client for the service at endpoint, for example
// "http://localhost:3000". A trailing slash is ignored.
func NewClient(endpoint string, opts ...ClientOption) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	c := &Client{
		endpoint:   strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{Timeout: 2 * time.Minute},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the service base URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Review sends the request and returns the response body as the review text.
func (c *Client) Review(ctx context.Context, req bugspotter.ReviewRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("http: encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+ReviewPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("http: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/markdown, text/plain, application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("http: post review: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("http: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{StatusCode: resp.StatusCode, Body: truncate(strings.TrimSpace(string(data)), 200)}
	}

	return decodeReview(resp.Header.Get("Content-Type"), data), nil
}

// decodeReview unwraps a JSON string body; any other body is used verbatim.
func decodeReview(contentType string, data []byte) string {
	if strings.HasPrefix(contentType, "application/json") {
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			return s
		}
	}
	return string(data)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
