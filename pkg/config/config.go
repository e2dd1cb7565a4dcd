// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defines configuration structures for server, caches, fetching and the article store

package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig

	// Cache contains TTL-cache backend configuration
	Cache CacheConfig

	// Fetch contains conditional-fetcher settings
	Fetch FetchConfig

	// Images contains image-resolver settings
	Images ImagesConfig

	// Store contains persistent article store settings
	Store StoreConfig

	// SourcesFile optionally points at a YAML file overriding the
	// built-in source seed
	SourcesFile string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string

	// LogLevel is the minimum log level (debug/info/warn/error)
	LogLevel string

	// ResponseCacheTTL is how long feed endpoint responses are cached
	// in-process, keyed by request URL
	ResponseCacheTTL time.Duration

	// RateLimit is the allowed requests per minute per client IP
	RateLimit int
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (redis/memory)
	Type string

	// Redis contains Redis-specific configuration
	Redis RedisConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string

	// Password is the Redis authentication password
	Password string

	// DB is the Redis database number
	DB int
}

// FetchConfig holds conditional-fetcher settings
type FetchConfig struct {
	// TTL is the default response-cache freshness window per source;
	// individual sources may override it
	TTL time.Duration

	// Timeout is the hard per-fetch timeout
	Timeout time.Duration
}

// ImagesConfig holds image-resolver settings
type ImagesConfig struct {
	// TTL is the image cache lifetime, independent of feed caching
	TTL time.Duration

	// BatchLimit caps how many articles of a result set get a
	// page-scrape image lookup
	BatchLimit int
}

// StoreConfig holds persistent article store settings
type StoreConfig struct {
	// Path is the sqlite database file
	Path string

	// RetentionCap is the maximum records kept per feed group
	RetentionCap int
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:             getEnvOrDefault("PORT", "8000"),
			LogLevel:         getEnvOrDefault("LOG_LEVEL", "info"),
			ResponseCacheTTL: time.Duration(getEnvAsIntOrDefault("RESPONSE_CACHE_TTL_SECONDS", 60)) * time.Second,
			RateLimit:        getEnvAsIntOrDefault("RATE_LIMIT_PER_MINUTE", 100),
		},
		Cache: CacheConfig{
			Type: getEnvOrDefault("CACHE_TYPE", "memory"),
			Redis: RedisConfig{
				Address:  getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password: getEnvOrDefault("REDIS_PASSWORD", ""),
				DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
			},
		},
		Fetch: FetchConfig{
			TTL:     time.Duration(getEnvAsIntOrDefault("FETCH_TTL_MS", 60000)) * time.Millisecond,
			Timeout: time.Duration(getEnvAsIntOrDefault("FETCH_TIMEOUT_MS", 12000)) * time.Millisecond,
		},
		Images: ImagesConfig{
			TTL:        time.Duration(getEnvAsIntOrDefault("IMAGE_TTL_MINUTES", 30)) * time.Minute,
			BatchLimit: getEnvAsIntOrDefault("IMAGE_BATCH_LIMIT", 30),
		},
		Store: StoreConfig{
			Path:         getEnvOrDefault("STORE_PATH", "news.db"),
			RetentionCap: getEnvAsIntOrDefault("STORE_RETENTION_CAP", 400),
		},
		SourcesFile: getEnvOrDefault("SOURCES_FILE", ""),
	}

	return cfg, nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.Cache.Type != "redis" && c.Cache.Type != "memory" {
		return errors.New("cache type must be 'redis' or 'memory'")
	}

	if c.Cache.Type == "redis" && c.Cache.Redis.Address == "" {
		return errors.New("redis address cannot be empty when using redis cache")
	}

	if c.Fetch.Timeout <= 0 {
		return errors.New("fetch timeout must be positive")
	}

	if c.Store.RetentionCap < 1 {
		return errors.New("store retention cap must be at least 1")
	}

	return nil
}
