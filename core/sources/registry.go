// ABOUTME: Source registry holding the configured RSS sources per feed
// ABOUTME: Seeded with built-in defaults, optionally overridden from a YAML file

package sources

import (
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"kenyanow-api/core/domain"
	coreerrors "kenyanow-api/core/errors"
)

// minTTLMs is the floor for per-source TTL overrides; anything lower is
// raised rather than rejected.
const minTTLMs = 10000

// Registry is the in-memory source store. Reads and updates are safe for
// concurrent use; updates do not survive a restart.
type Registry struct {
	mu      sync.RWMutex
	sources []domain.Source
}

// NewRegistry creates a registry seeded with the built-in sources.
func NewRegistry() *Registry {
	seed := defaultSources()
	cp := make([]domain.Source, len(seed))
	copy(cp, seed)
	return &Registry{sources: cp}
}

// NewRegistryFromFile creates a registry from a YAML source file. The file
// replaces the built-in seed entirely.
func NewRegistryFromFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, coreerrors.WrapError(err, "reading sources file "+path)
	}

	var doc struct {
		Sources []domain.Source `yaml:"sources"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, coreerrors.WrapError(err, "parsing sources file "+path)
	}
	if len(doc.Sources) == 0 {
		return nil, &coreerrors.ValidationError{Field: "sources", Message: "sources file defines no sources"}
	}

	for i := range doc.Sources {
		if doc.Sources[i].ID == "" || doc.Sources[i].URL == "" {
			return nil, &coreerrors.ValidationError{Field: "sources", Message: "every source needs an id and a url"}
		}
		if doc.Sources[i].TTLMs != 0 && doc.Sources[i].TTLMs < minTTLMs {
			doc.Sources[i].TTLMs = minTTLMs
		}
	}

	return &Registry{sources: doc.Sources}, nil
}

// List returns all configured sources in configuration order.
func (r *Registry) List() []domain.Source {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Source, len(r.sources))
	copy(out, r.sources)
	return out
}

// Get returns the source with the given id.
func (r *Registry) Get(id string) (domain.Source, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, src := range r.sources {
		if src.ID == id {
			return src, nil
		}
	}
	return domain.Source{}, &coreerrors.NotFoundError{Resource: "source", ID: id}
}

// ActiveByFeed returns the active sources for a feed, in configuration
// order. The order matters: the aggregator's tie-break follows it.
func (r *Registry) ActiveByFeed(feed string) []domain.Source {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Source, 0, len(r.sources))
	for _, src := range r.sources {
		if src.Feed == feed && src.Active {
			out = append(out, src)
		}
	}
	return out
}

// Update applies a partial update to the source with the given id and
// returns the updated source. TTL overrides below the floor are raised to
// it. Unknown ids return a NotFoundError.
func (r *Registry) Update(id string, patch domain.SourcePatch) (domain.Source, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.sources {
		if r.sources[i].ID != id {
			continue
		}

		if patch.Active != nil {
			r.sources[i].Active = *patch.Active
		}
		if patch.TTLMs != nil {
			ttl := *patch.TTLMs
			if ttl < minTTLMs {
				ttl = minTTLMs
			}
			r.sources[i].TTLMs = ttl
		}
		if patch.URL != nil && *patch.URL != "" {
			r.sources[i].URL = *patch.URL
		}
		if patch.Label != nil && *patch.Label != "" {
			r.sources[i].Label = *patch.Label
		}

		return r.sources[i], nil
	}

	return domain.Source{}, &coreerrors.NotFoundError{Resource: "source", ID: id}
}
