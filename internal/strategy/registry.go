// Package strategy provides a Registry of named strategy factories, so that
// concrete strategy implementations can be selected and configured by name
// at run time.
package strategy

import (
	"fmt"
	"sort"

	"backcast/internal/backtest"
)

// Params carries the construction-time inputs common to all strategies.
// Options holds strategy-specific numeric parameters from configuration
// (e.g. "short": 10, "long": 30); unknown keys are ignored by strategies
// that do not use them.
type Params struct {
	InitialCapital float64
	Options        map[string]float64
}

// Option returns the named option, or fallback when it is absent.
func (p Params) Option(name string, fallback float64) float64 {
	if v, ok := p.Options[name]; ok {
		return v
	}
	return fallback
}

// Factory constructs a ready-to-run strategy from the given parameters.
type Factory func(p Params) (backtest.Strategy, error)

// Registry holds a named collection of strategy factories for lookup and
// enumeration.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry creates an empty strategy Registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register adds a factory to the registry under the given name.
func (r *Registry) Register(name string, f Factory) {
	r.factories[name] = f
}

// New constructs the named strategy with the given parameters. It returns
// an error when no factory is registered under that name.
func (r *Registry) New(name string, p Params) (backtest.Strategy, error) {
	f, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("strategy: unknown strategy %q (registered: %v)", name, r.List())
	}
	return f(p)
}

// List returns a sorted slice of all registered strategy names.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
