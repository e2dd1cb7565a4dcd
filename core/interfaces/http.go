package interfaces

import (
	"context"
	"io"
)

// HTTPClient performs outbound HTTP requests. The abstraction keeps the
// retry/timeout policy in one place and lets tests substitute a stub.
type HTTPClient interface {
	// Get performs a GET request to the given URL.
	Get(ctx context.Context, url string) (Response, error)

	// GetWithHeaders performs a GET request with additional request
	// headers, used for conditional fetches (If-None-Match,
	// If-Modified-Since).
	GetWithHeaders(ctx context.Context, url string, headers map[string]string) (Response, error)
}

// Response abstracts an HTTP response so client implementations can wrap
// their own types.
type Response interface {
	// StatusCode returns the HTTP status code.
	StatusCode() int

	// Body returns the response body. The caller closes it.
	Body() io.ReadCloser

	// Header returns the value of the named header, or "" when absent.
	// Header names are case-insensitive.
	Header(key string) string
}
