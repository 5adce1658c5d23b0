// Package source defines the data-source adapter contract and the concrete
// adapters that produce company record batches.
package source

import (
	"context"
	"sync"

	"github.com/openlead/leadgen-cli/internal/model"
)

// Source is a pluggable data-source collector. Scrape is synchronous and
// must never fail out-of-band: ordinary failures (network, parse) are
// reported inside the returned result with Succeeded=false so that one
// broken source cannot abort a run.
type Source interface {
	// Name returns the adapter's unique identifier.
	Name() string
	// Kind returns the origin tag stamped on produced records.
	Kind() model.DataSource
	// Scrape collects a batch of companies. Implementations should honor
	// ctx cancellation but always return a result, never panic.
	Scrape(ctx context.Context) *model.ScrapeResult
}

// Registry manages the configured source adapters by name.
type Registry struct {
	mu      sync.RWMutex
	sources map[string]Source
	order   []string
}

// NewRegistry creates an empty source registry.
func NewRegistry() *Registry {
	return &Registry{sources: make(map[string]Source)}
}

// Register adds a source, replacing any previous adapter with the same name.
func (r *Registry) Register(s Source) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.sources[s.Name()]; !exists {
		r.order = append(r.order, s.Name())
	}
	r.sources[s.Name()] = s
}

// Get returns a source by name, or nil if not found.
func (r *Registry) Get(name string) Source {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sources[name]
}

// List returns all registered sources in registration order.
func (r *Registry) List() []Source {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Source, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.sources[name])
	}
	return out
}

// Names returns registered source names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}
