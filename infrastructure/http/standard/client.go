// ABOUTME: Standard HTTP client with timeout support and a single fixed-delay retry
// ABOUTME: Failures (network error, non-2xx other than 304) are retried exactly once

package standard

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"kenyanow-api/core/interfaces"
)

const (
	maxAttempts = 2
	retryDelay  = 500 * time.Millisecond
	userAgent   = "KenyaNow/0.4"
)

// StandardHTTPClient implements the HTTPClient interface using the
// standard library.
type StandardHTTPClient struct {
	client *http.Client
}

// NewStandardHTTPClient creates a new HTTP client with the specified
// overall timeout. Callers may impose tighter per-request deadlines via
// the context.
func NewStandardHTTPClient(timeout time.Duration) *StandardHTTPClient {
	return &StandardHTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Get performs an HTTP GET request.
func (c *StandardHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	return c.GetWithHeaders(ctx, url, nil)
}

// GetWithHeaders performs an HTTP GET request with extra request headers.
// On network error or a non-2xx status other than 304 Not Modified, the
// request is retried once after a fixed delay, then the last outcome is
// surfaced to the caller.
func (c *StandardHTTPClient) GetWithHeaders(ctx context.Context, url string, headers map[string]string) (interfaces.Response, error) {
	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(retryDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", "application/rss+xml,application/xml;q=0.9,text/html,*/*;q=0.8")
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err = c.client.Do(req)
		if err != nil {
			resp = nil
			lastErr = err
			continue
		}

		// 304 is a successful revalidation; everything else outside
		// 2xx consumes the retry
		if resp.StatusCode == http.StatusNotModified ||
			(resp.StatusCode >= 200 && resp.StatusCode < 300) {
			break
		}

		lastErr = fmt.Errorf("server returned %d", resp.StatusCode)
		if attempt < maxAttempts-1 {
			resp.Body.Close()
			resp = nil
		}
	}

	if resp == nil {
		return nil, lastErr
	}

	return &httpResponse{
		statusCode: resp.StatusCode,
		body:       resp.Body,
		headers:    resp.Header,
	}, nil
}

// httpResponse implements the Response interface
type httpResponse struct {
	statusCode int
	body       io.ReadCloser
	headers    http.Header
}

// StatusCode returns the HTTP status code
func (r *httpResponse) StatusCode() int {
	return r.statusCode
}

// Body returns the response body
func (r *httpResponse) Body() io.ReadCloser {
	return r.body
}

// Header returns the value of the specified header
func (r *httpResponse) Header(key string) string {
	return r.headers.Get(key)
}
