// ABOUTME: Source descriptor for a configured RSS/Atom feed
// ABOUTME: Seeded from static configuration and mutated only via the admin surface

package domain

// Feed group names used across the registry, aggregator and store.
const (
	FeedKenya  = "kenya"
	FeedGlobal = "global"
)

// Source describes one configured feed. The core pipeline only reads
// Active, URL and TTLMs; the rest belongs to the admin surface.
type Source struct {
	// ID is the short stable identifier used by the admin API
	ID string `json:"id" yaml:"id"`

	// Label is the display name
	Label string `json:"label" yaml:"label"`

	// URL is the feed document URL
	URL string `json:"url" yaml:"url"`

	// TTLMs overrides the response-cache TTL for this source; 0 means
	// use the configured default
	TTLMs int `json:"ttlMs,omitempty" yaml:"ttlMs,omitempty"`

	// Active toggles the source without deleting it
	Active bool `json:"active" yaml:"active"`

	// Feed is the logical group this source feeds into
	Feed string `json:"feed" yaml:"feed"`

	// Domestic marks sources subject to the host allow-list and
	// relevance filter
	Domestic bool `json:"domestic" yaml:"domestic"`
}

// SourcePatch carries the mutable fields of a Source for admin updates.
// Nil fields are left unchanged.
type SourcePatch struct {
	Active *bool   `json:"active,omitempty"`
	TTLMs  *int    `json:"ttlMs,omitempty"`
	URL    *string `json:"url,omitempty"`
	Label  *string `json:"label,omitempty"`
}
