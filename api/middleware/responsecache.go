// ABOUTME: Response-cache middleware for GET feed endpoints
// ABOUTME: Serves identical requests from the shared cache for a short TTL

package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"kenyanow-api/core/interfaces"
)

// cachedResponse is the stored form of one response.
type cachedResponse struct {
	StatusCode  int    `json:"statusCode"`
	ContentType string `json:"contentType"`
	Body        []byte `json:"body"`
}

// captureWriter buffers a response so it can be stored after serving.
type captureWriter struct {
	http.ResponseWriter
	statusCode int
	buf        bytes.Buffer
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.statusCode = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	cw.buf.Write(b)
	return cw.ResponseWriter.Write(b)
}

// ResponseCacheMiddleware caches successful GET responses under the full
// request URL for ttl. Non-GET requests and error responses pass through
// uncached.
func ResponseCacheMiddleware(cache interfaces.Cache, ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet || cache == nil {
				next.ServeHTTP(w, r)
				return
			}

			key := "httpresp:" + r.URL.RequestURI()
			if data, err := cache.Get(r.Context(), key); err == nil && data != nil {
				var cached cachedResponse
				if err := json.Unmarshal(data, &cached); err == nil {
					if cached.ContentType != "" {
						w.Header().Set("Content-Type", cached.ContentType)
					}
					w.Header().Set("X-Cache", "HIT")
					w.WriteHeader(cached.StatusCode)
					w.Write(cached.Body)
					return
				}
			}

			cw := &captureWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(cw, r)

			if cw.statusCode >= 200 && cw.statusCode < 300 {
				data, err := json.Marshal(cachedResponse{
					StatusCode:  cw.statusCode,
					ContentType: cw.Header().Get("Content-Type"),
					Body:        cw.buf.Bytes(),
				})
				if err == nil {
					_ = cache.Set(r.Context(), key, data, ttl)
				}
			}
		})
	}
}
