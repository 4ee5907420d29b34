// Package strategy consolidates per-indicator signals into a single
// buy/hold/sell decision per strategy, scores its confidence, and recommends
// a strategy for an investor profile.
package strategy

import (
	"sort"
	"sync"

	"TradePulse/internal/domain/models"
)

// Registry holds named strategy definitions. It is explicit and injectable:
// tests and callers construct their own with custom strategy sets instead of
// sharing a global map.
type Registry struct {
	mu   sync.RWMutex
	defs map[string]models.StrategyDefinition
}

// NewRegistry creates a registry seeded with the given definitions.
func NewRegistry(defs ...models.StrategyDefinition) *Registry {
	r := &Registry{defs: make(map[string]models.StrategyDefinition, len(defs))}
	for _, d := range defs {
		r.defs[d.Key] = d
	}
	return r
}

// NewDefaultRegistry creates a registry with the four built-in strategies.
func NewDefaultRegistry() *Registry {
	return NewRegistry(BuiltinStrategies()...)
}

// Register adds or replaces a definition.
func (r *Registry) Register(def models.StrategyDefinition) {
	r.mu.Lock()
	r.defs[def.Key] = def
	r.mu.Unlock()
}

// Get looks up a definition by key.
func (r *Registry) Get(key string) (models.StrategyDefinition, error) {
	r.mu.RLock()
	def, ok := r.defs[key]
	r.mu.RUnlock()
	if !ok {
		return models.StrategyDefinition{}, &models.UnknownStrategyError{Key: key}
	}
	return def, nil
}

// List returns all definitions sorted by key.
func (r *Registry) List() []models.StrategyDefinition {
	r.mu.RLock()
	out := make([]models.StrategyDefinition, 0, len(r.defs))
	for _, d := range r.defs {
		out = append(out, d)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
