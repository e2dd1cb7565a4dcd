// Package interfaces defines the contracts used throughout the application.
// These interfaces allow for dependency injection and make the code testable.
package interfaces

import (
	"context"
	"time"
)

// Cache is a generic TTL-keyed cache. The application instantiates it
// several times with independent TTL policies: the per-URL response cache,
// the per-article image cache and the endpoint response cache.
type Cache interface {
	// Get retrieves a value by key. Returns an error on miss or expiry.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value under key for the given TTL. A zero TTL stores
	// the value with the backend's default expiration.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
