// Package sources holds the fixed table of retailers a comparison queries.
package sources

import (
	"errors"

	"github.com/rotisserie/eris"
)

// ErrUnknownSource is returned by Lookup for an identifier not in the registry
var ErrUnknownSource = errors.New("unknown source")

// Registry is an ordered, validated, read-only set of sources
type Registry struct {
	order []string
	byID  map[string]SourceConfig
}

// New validates every entry and builds a registry that preserves the given order
func New(configs ...SourceConfig) (*Registry, error) {
	if len(configs) == 0 {
		return nil, eris.New("registry needs at least one source")
	}

	r := &Registry{
		order: make([]string, 0, len(configs)),
		byID:  make(map[string]SourceConfig, len(configs)),
	}
	for _, c := range configs {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if _, dup := r.byID[c.ID]; dup {
			return nil, eris.Errorf("duplicate source id %q", c.ID)
		}
		r.order = append(r.order, c.ID)
		r.byID[c.ID] = c.clone()
	}
	return r, nil
}

// IDs returns the source identifiers in registry order
func (r *Registry) IDs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// All returns the source configs in registry order
func (r *Registry) All() []SourceConfig {
	out := make([]SourceConfig, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id].clone())
	}
	return out
}

// Lookup returns the config for id
func (r *Registry) Lookup(id string) (SourceConfig, error) {
	c, ok := r.byID[id]
	if !ok {
		return SourceConfig{}, eris.Wrapf(ErrUnknownSource, "source %q", id)
	}
	return c.clone(), nil
}

// Len returns the number of sources
func (r *Registry) Len() int {
	return len(r.order)
}
