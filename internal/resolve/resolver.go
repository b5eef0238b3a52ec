// Package resolve answers the two questions keyvars asks of a store: which
// variables apply to a (service, environment) scope, and how the scope's
// layers look side by side.
package resolve

import (
	"context"

	"github.com/systmms/keyvars/internal/enumerate"
	"github.com/systmms/keyvars/internal/layers"
	"github.com/systmms/keyvars/internal/logging"
	"github.com/systmms/keyvars/internal/metrics"
	"github.com/systmms/keyvars/internal/naming"
	"github.com/systmms/keyvars/internal/store"
)

// Resolver ties a store to the enumerator that lists it
type Resolver struct {
	store      store.Store
	enumerator enumerate.Enumerator
	logger     *logging.Logger
	metrics    *metrics.Metrics
}

// New creates a resolver
func New(st store.Store, en enumerate.Enumerator, logger *logging.Logger, m *metrics.Metrics) *Resolver {
	if m == nil {
		m = metrics.New()
	}
	return &Resolver{
		store:      st,
		enumerator: en,
		logger:     logger,
		metrics:    m,
	}
}

// Entries lists the store and keeps only entries keyvars could have written
func (r *Resolver) Entries(ctx context.Context) []naming.Entry {
	raw := r.enumerator.Enumerate(ctx)
	kept := layers.FilterValid(raw)
	r.metrics.Enumerated(len(raw), len(kept))
	if dropped := len(raw) - len(kept); dropped > 0 {
		r.logger.Debug("Ignored %d foreign credentials", dropped)
	}
	return kept
}

// Resolution is the flat variable map of a scope together with the namespace
// each value was read from. Both come from a single listing of the store.
type Resolution struct {
	Vars    map[string]string
	Sources map[string]string
}

// Resolve lists the store once and merges the scope's layers, later layers
// overriding earlier ones.
func (r *Resolver) Resolve(ctx context.Context, service, env string) (*Resolution, error) {
	active, err := layers.ResolveLayers(service, env)
	if err != nil {
		return nil, err
	}

	g := layers.GroupByNamespace(r.Entries(ctx))
	r.logger.Debug("Resolving layers %v", active)

	getter := &reportingGetter{store: r.store, logger: r.logger, sources: make(map[string]string)}
	vars, err := layers.Flatten(g, active, getter)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("Resolved %d variables", len(vars))
	return &Resolution{Vars: vars, Sources: getter.sources}, nil
}

// Environment returns the flat variable map for the scope
func (r *Resolver) Environment(ctx context.Context, service, env string) (map[string]string, error) {
	res, err := r.Resolve(ctx, service, env)
	if err != nil {
		return nil, err
	}
	return res.Vars, nil
}

// Sources maps every variable of the scope to the namespace that supplies it
func (r *Resolver) Sources(ctx context.Context, service, env string) (map[string]string, error) {
	res, err := r.Resolve(ctx, service, env)
	if err != nil {
		return nil, err
	}
	return res.Sources, nil
}

// Layered returns one view per active layer with overridden keys marked
func (r *Resolver) Layered(ctx context.Context, service, env string) ([]layers.View, error) {
	active, err := layers.ResolveLayers(service, env)
	if err != nil {
		return nil, err
	}
	return layers.Annotate(layers.GroupByNamespace(r.Entries(ctx)), active), nil
}

// All returns every keyvars namespace in the store, root first
func (r *Resolver) All(ctx context.Context) []layers.View {
	return layers.All(layers.GroupByNamespace(r.Entries(ctx)))
}

// reportingGetter logs keys that were listed but are gone by fetch time and
// records the last namespace each key was read from
type reportingGetter struct {
	store   store.Store
	logger  *logging.Logger
	sources map[string]string
}

func (g *reportingGetter) Get(namespace, name string) (string, bool, error) {
	value, found, err := g.store.Get(namespace, name)
	switch {
	case err != nil:
	case !found:
		g.logger.Debug("Skipping %s/%s: listed but no longer stored", namespace, name)
	default:
		g.sources[name] = namespace
	}
	return value, found, err
}
