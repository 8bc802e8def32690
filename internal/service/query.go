package service

import (
	"context"
	"sync"

	"github.com/MKhiriev/loopp-client/internal/cache"
)

// Query is a cached read. Its result is stored in the shared cache under a
// key built from resource and the params, so concurrent loads with equal
// params share one backend call.
type Query[P, T any] struct {
	cache    *cache.Cache
	resource string
	params   func(P) map[string]any
	fetch    func(ctx context.Context, p P) (T, error)

	mu    sync.Mutex
	state State[T]
}

// NewQuery builds a Query. params may be nil for parameterless reads.
func NewQuery[P, T any](c *cache.Cache, resource string, params func(P) map[string]any, fetch func(ctx context.Context, p P) (T, error)) *Query[P, T] {
	return &Query[P, T]{
		cache:    c,
		resource: resource,
		params:   params,
		fetch:    fetch,
	}
}

// Key returns the cache key of p.
func (q *Query[P, T]) Key(p P) cache.Key {
	if q.params == nil {
		return cache.NewKey(q.resource, nil)
	}
	return cache.NewKey(q.resource, q.params(p))
}

// Load returns the cached result for p or fetches it.
func (q *Query[P, T]) Load(ctx context.Context, p P) (T, error) {
	q.mu.Lock()
	q.state.start()
	q.mu.Unlock()

	data, err := cache.Fetch(ctx, q.cache, q.Key(p), func(ctx context.Context) (T, error) {
		return q.fetch(ctx, p)
	})

	q.mu.Lock()
	q.state.finish(data, err)
	q.mu.Unlock()

	return data, err
}

// RefetchWithParams drops the cached result for p and fetches it again,
// returning the fresh result directly.
func (q *Query[P, T]) RefetchWithParams(ctx context.Context, p P) (T, error) {
	q.cache.Invalidate(q.Key(p))
	return q.Load(ctx, p)
}

// Invalidate drops every cached result of this query's resource.
func (q *Query[P, T]) Invalidate() {
	q.cache.InvalidateResource(q.resource)
}

func (q *Query[P, T]) State() State[T] {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.state
}
