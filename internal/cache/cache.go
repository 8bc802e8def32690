// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package cache is the explicit read cache of the client. Reads are stored
// by [Key]; concurrent reads of the same key share one loader call, and
// invalidation always wins over a load that was already running.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/MKhiriev/loopp-client/internal/logger"
	"github.com/MKhiriev/loopp-client/internal/metrics"
)

// ErrUnexpectedType is returned by [Fetch] when the cached value under a key
// has a different type than requested.
var ErrUnexpectedType = errors.New("cached value has unexpected type")

// Loader produces the value of a key. The context it receives is detached
// from the cancellation of whichever caller started the load.
type Loader func(ctx context.Context) (any, error)

type entry struct {
	value    any
	storedAt time.Time
}

// Cache is safe for concurrent use.
type Cache struct {
	ttl     time.Duration
	now     func() time.Time
	metrics *metrics.Metrics
	logger  *logger.Logger

	group singleflight.Group

	mu          sync.Mutex
	entries     map[Key]entry
	generations map[Key]uint64
	inflight    map[string]struct{}
}

// New returns an empty cache. Entries older than ttl are reloaded on the
// next read; a zero ttl keeps entries until invalidated. m may be nil.
func New(ttl time.Duration, m *metrics.Metrics, log *logger.Logger) *Cache {
	if log == nil {
		log = logger.Nop()
	}

	return &Cache{
		ttl:         ttl,
		now:         time.Now,
		metrics:     m,
		logger:      log,
		entries:     make(map[Key]entry),
		generations: make(map[Key]uint64),
		inflight:    make(map[string]struct{}),
	}
}

// GetOrFetch returns the fresh cached value of key, or runs load once for
// all concurrent callers of the same key. Errors are returned to every
// waiter and never cached. A caller whose ctx ends stops waiting; the load
// itself keeps running for the others.
func (c *Cache) GetOrFetch(ctx context.Context, key Key, load Loader) (any, error) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok && c.fresh(e) {
		c.mu.Unlock()
		c.metrics.ObserveCache(metrics.CacheHit)
		return e.value, nil
	}

	gen := c.generations[key]
	c.generations[key] = gen
	flight := flightKey(key, gen)

	_, shared := c.inflight[flight]
	c.inflight[flight] = struct{}{}
	c.mu.Unlock()

	if shared {
		c.metrics.ObserveCache(metrics.CacheShared)
	} else {
		c.metrics.ObserveCache(metrics.CacheMiss)
	}

	loadCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(flight, func() (any, error) {
		value, err := load(loadCtx)

		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.inflight, flight)

		if err != nil {
			return nil, err
		}
		if c.generations[key] != gen {
			c.logger.Debug().
				Str("func", "Cache.GetOrFetch").
				Str("key", key.String()).
				Msg("load finished after invalidation, result not stored")
			return value, nil
		}

		c.entries[key] = entry{value: value, storedAt: c.now()}
		return value, nil
	})

	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Peek returns the cached value of key without loading. Stale entries are
// reported as absent.
func (c *Cache) Peek(key Key) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || !c.fresh(e) {
		return nil, false
	}
	return e.value, true
}

// Invalidate drops key. A load of key that is already running will not
// store its result, and the next read starts a new load.
func (c *Cache) Invalidate(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.invalidateLocked(key)
}

// InvalidateResource drops every key of resource, whatever its params.
func (c *Cache) InvalidateResource(resource string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.generations {
		if key.Resource() == resource {
			c.invalidateLocked(key)
		}
	}
}

// Purge drops everything, e.g. on sign-out.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.generations {
		c.invalidateLocked(key)
	}
}

func (c *Cache) invalidateLocked(key Key) {
	gen := c.generations[key]
	c.group.Forget(flightKey(key, gen))
	delete(c.entries, key)
	c.generations[key] = gen + 1
}

func (c *Cache) fresh(e entry) bool {
	return c.ttl <= 0 || c.now().Sub(e.storedAt) < c.ttl
}

func flightKey(key Key, gen uint64) string {
	return string(key) + "#" + strconv.FormatUint(gen, 10)
}

// Fetch is the typed form of [Cache.GetOrFetch].
func Fetch[T any](ctx context.Context, c *Cache, key Key, load func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	value, err := c.GetOrFetch(ctx, key, func(ctx context.Context) (any, error) {
		return load(ctx)
	})
	if err != nil {
		return zero, err
	}

	typed, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("%w: key %s holds %T", ErrUnexpectedType, key, value)
	}
	return typed, nil
}
