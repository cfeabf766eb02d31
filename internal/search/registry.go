package search

import (
	"fmt"

	"online-bookstore/internal/domain"
)

// Registry maps field keys to their predicate providers. Keys are
// case-sensitive and unique; registering a key again overwrites.
type Registry struct {
	providers map[string]Provider
}

func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{providers: make(map[string]Provider, len(providers))}
	for _, p := range providers {
		r.Register(p)
	}
	return r
}

func (r *Registry) Register(p Provider) {
	r.providers[p.Key()] = p
}

// Resolve returns the provider for the key. An unknown key is a wiring
// defect, not a user error: the caller gets domain.ErrConfiguration.
func (r *Registry) Resolve(key string) (Provider, error) {
	p, ok := r.providers[key]
	if !ok {
		return nil, fmt.Errorf("no predicate provider registered for field %q: %w", key, domain.ErrConfiguration)
	}
	return p, nil
}
