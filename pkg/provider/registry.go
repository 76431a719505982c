package provider

import (
	"fmt"
	"sort"
	"sync"

	"github.com/cidgate/cidgate/pkg/cidx"
)

// Registry holds the set of configured providers for one gateway
// instance. It is built once at startup from config and then shared
// read-mostly between the gateway API and the indexer loop.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
}

// NewRegistry builds a Registry from a list of already-constructed
// providers. Duplicate provider ids are rejected: §3's uniqueness
// invariants assume provider_id is stable and unique.
func NewRegistry(providers ...Provider) (*Registry, error) {
	r := &Registry{providers: make(map[string]Provider, len(providers))}
	for _, p := range providers {
		if err := r.Register(p); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a provider to the registry.
func (r *Registry) Register(p Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := p.ProviderID()
	if _, exists := r.providers[id]; exists {
		return fmt.Errorf("provider: duplicate provider id %q", id)
	}
	r.providers[id] = p
	return nil
}

// Get looks up a provider by (id, type) pair, matching §4.6's "locate a
// provider matching both provider_id and provider_type".
func (r *Registry) Get(id string, typ ProviderType) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providers[id]
	if !ok || p.ProviderType() != typ {
		return nil, false
	}
	return p, true
}

// All returns every registered provider, ordered by provider id for
// deterministic iteration (the indexer loop depends on a stable order
// across ticks so logs read consistently).
func (r *Registry) All() []Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Provider, 0, len(r.providers))
	for _, p := range r.providers {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProviderID() < out[j].ProviderID() })
	return out
}

// EligibleWriters returns every registered provider whose filter matches
// c and which exposes BlobWriter, per §4.6 step 5.
func (r *Registry) EligibleWriters(c cidx.Cid) []BlobWriter {
	var out []BlobWriter
	for _, p := range r.All() {
		if !IsEligible(p, c) {
			continue
		}
		if w, ok := AsBlobWriter(p); ok {
			out = append(out, w)
		}
	}
	return out
}
