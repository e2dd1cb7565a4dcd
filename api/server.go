// ABOUTME: Huma API server configuration and setup
// ABOUTME: Provides OpenAPI documentation and request/response validation

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"kenyanow-api/api/middleware"
	"kenyanow-api/core/interfaces"
)

// Config holds the server-level knobs.
type Config struct {
	Logger           interfaces.Logger
	RateLimit        int           // requests per window, 0 disables
	RateWindow       time.Duration // rate limit window
	ResponseCache    interfaces.Cache
	ResponseCacheTTL time.Duration
}

// NewAPI creates the Huma API on a chi router with CORS, request logging,
// rate limiting and the response cache applied in that order.
func NewAPI(cfg Config) (huma.API, chi.Router) {
	router := chi.NewRouter()

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	if cfg.Logger != nil {
		router.Use(middleware.RequestLoggingMiddleware(cfg.Logger))
	}

	if cfg.RateLimit > 0 && cfg.RateWindow > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		router.Use(middleware.RateLimitMiddleware(limiter))
	}

	if cfg.ResponseCache != nil && cfg.ResponseCacheTTL > 0 {
		respCache := middleware.ResponseCacheMiddleware(cfg.ResponseCache, cfg.ResponseCacheTTL)
		router.Use(func(next http.Handler) http.Handler {
			cached := respCache(next)
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				// admin reads must reflect updates immediately
				if !strings.HasPrefix(r.URL.Path, "/api/") || strings.HasPrefix(r.URL.Path, "/api/admin") {
					next.ServeHTTP(w, r)
					return
				}
				cached.ServeHTTP(w, r)
			})
		})
	}

	config := huma.DefaultConfig("KenyaNow API", "0.4.0")
	config.Info.Description = "Kenya-first news aggregation over public RSS feeds"

	api := humachi.New(router, config)

	// The OpenAPI spec is served at /openapi.json, the docs UI at /docs.

	return api, router
}
