// ABOUTME: Main entry point for the KenyaNow API server
// ABOUTME: Wires together all components and starts the HTTP server

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"kenyanow-api/api"
	"kenyanow-api/api/handlers"
	"kenyanow-api/core/aggregate"
	"kenyanow-api/core/events"
	"kenyanow-api/core/feed"
	"kenyanow-api/core/fetch"
	"kenyanow-api/core/images"
	"kenyanow-api/core/interfaces"
	"kenyanow-api/core/loader"
	"kenyanow-api/core/news"
	"kenyanow-api/core/sources"
	"kenyanow-api/infrastructure/cache/memory"
	"kenyanow-api/infrastructure/cache/redis"
	stdhttp "kenyanow-api/infrastructure/http/standard"
	logruslogger "kenyanow-api/infrastructure/logger/logrus"
	sqlitestore "kenyanow-api/infrastructure/store/sqlite"
	"kenyanow-api/pkg/config"
)

func main() {
	// A missing .env is fine; real env vars win either way
	_ = godotenv.Load()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := logruslogger.NewLogger(cfg.Server.LogLevel)
	logger.Info("Starting KenyaNow API", map[string]interface{}{
		"port":       cfg.Server.Port,
		"cache_type": cfg.Cache.Type,
		"store_path": cfg.Store.Path,
	})

	// Create cache
	var cache interfaces.Cache
	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := redis.NewRedisCache(cfg.Cache.Redis)
		if err != nil {
			logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			cache = memory.NewMemoryCache(cfg.Fetch.TTL, 5*time.Minute)
		} else {
			cache = redisCache
			logger.Info("Using Redis cache", map[string]interface{}{
				"address": cfg.Cache.Redis.Address,
			})
		}
	default:
		cache = memory.NewMemoryCache(cfg.Fetch.TTL, 5*time.Minute)
		logger.Info("Using memory cache", nil)
	}

	httpClient := stdhttp.NewStandardHTTPClient(cfg.Fetch.Timeout)

	deps := interfaces.Dependencies{
		Cache:      cache,
		HTTPClient: httpClient,
		Logger:     logger,
	}

	// Source registry: built-in seed unless a YAML file overrides it
	var registry *sources.Registry
	if cfg.SourcesFile != "" {
		registry, err = sources.NewRegistryFromFile(cfg.SourcesFile)
		if err != nil {
			log.Fatalf("Failed to load sources file: %v", err)
		}
		logger.Info("Loaded sources from file", map[string]interface{}{
			"path":  cfg.SourcesFile,
			"count": len(registry.List()),
		})
	} else {
		registry = sources.NewRegistry()
	}

	// Ingestion pipeline
	fetcher := fetch.NewFetcher(deps)
	normalizer := feed.NewNormalizer(deps)
	aggregator := aggregate.NewAggregator(fetcher, normalizer, deps, cfg.Fetch.TTL, cfg.Fetch.Timeout)
	resolver := images.NewResolver(deps, cfg.Images.TTL)
	newsService := news.NewService(registry, aggregator, resolver, deps, cfg.Images.BatchLimit)

	// Persistent store and cache-first loader
	store, err := sqlitestore.NewStore(cfg.Store.Path, cfg.Store.RetentionCap, logger)
	if err != nil {
		log.Fatalf("Failed to open article store: %v", err)
	}
	defer store.Close()

	bus := events.NewBus()
	newsLoader := loader.NewLoader(newsService, store, bus, deps, 2*cfg.Fetch.Timeout)

	// HTTP surface
	humaAPI, router := api.NewAPI(api.Config{
		Logger:           logger,
		RateLimit:        cfg.Server.RateLimit,
		RateWindow:       time.Minute,
		ResponseCache:    cache,
		ResponseCacheTTL: cfg.Server.ResponseCacheTTL,
	})

	handlers.NewNewsHandler(newsService, newsLoader).RegisterRoutes(humaAPI)
	handlers.NewAdminHandler(registry).RegisterRoutes(humaAPI)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
	}

	logger.Info("Server exited", nil)
}
