// ABOUTME: Dependencies container provides dependency injection for core services
// ABOUTME: Holds the external collaborators every pipeline stage may need

package interfaces

// Dependencies holds the external dependencies required by the core
// business logic. Individual fields may be nil in tests that don't
// exercise them.
type Dependencies struct {
	// Cache provides TTL-keyed caching
	Cache Cache

	// HTTPClient provides outbound HTTP with retry and timeout
	HTTPClient HTTPClient

	// Logger provides structured logging
	Logger Logger
}
