// Package watch defines the shared contract between the discovery pass and
// the per-kind source adapters.
package watch

import (
	"context"
	"fmt"

	"AIUpdatesMonitor/internal/domain"
)

// Source describes one configured source to poll.
type Source struct {
	Name string
	Type domain.SourceType
	// URL is the feed or page address. For GitHub sources Repo is used instead.
	URL string
	// Repo is the owner/name pair for GitHub release tracking.
	Repo string
	// Selector is the CSS selector for news and direct-site sources.
	Selector string
	// Keywords restrict candidates to relevant items; empty means match all.
	Keywords []string
}

// Adapter converts one source kind's raw document into candidate items.
// Implementations wrap failures in *domain.FetchError and apply the source's
// keyword filter before returning; zero candidates is a normal outcome.
type Adapter interface {
	Type() domain.SourceType
	Fetch(ctx context.Context, src Source) ([]domain.CandidateItem, error)
}

// Registry maps source types to their adapter implementations.
type Registry struct {
	adapters map[domain.SourceType]Adapter
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{adapters: map[domain.SourceType]Adapter{}}
}

// Register adds or replaces an adapter implementation.
func (r *Registry) Register(a Adapter) {
	if r.adapters == nil {
		r.adapters = map[domain.SourceType]Adapter{}
	}
	r.adapters[a.Type()] = a
}

// Resolve returns the adapter for a source type or an error if it is absent.
func (r *Registry) Resolve(t domain.SourceType) (Adapter, error) {
	if a, ok := r.adapters[t]; ok {
		return a, nil
	}
	return nil, fmt.Errorf("no adapter registered for source type %s", t)
}
