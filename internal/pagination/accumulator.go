// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package pagination implements "load more" listings: pages are fetched one
// at a time and merged into a single list without duplicates.
package pagination

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrLoadInProgress is returned when a load is requested while another
	// one is running. Callers are expected to disable their trigger instead.
	ErrLoadInProgress = errors.New("a page load is already in progress")

	// ErrInvalidLimit is returned by [New] for a non-positive page size.
	ErrInvalidLimit = errors.New("page limit must be positive")
)

// State of an [Accumulator].
type State int

const (
	// Idle means nothing has been loaded yet.
	Idle State = iota
	// Loaded means at least one page is loaded and more may exist.
	Loaded
	// LoadingMore means the next page is being fetched.
	LoadingMore
	// Exhausted means every page the server reported has been loaded.
	Exhausted
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loaded:
		return "loaded"
	case LoadingMore:
		return "loading_more"
	case Exhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// PageFetcher returns the items of a 1-based page and the total number of
// items on the server.
type PageFetcher[T any] func(ctx context.Context, page, limit int) (items []T, total int, err error)

// Accumulator merges fetched pages by id. Items already present are never
// replaced or moved; new items are appended in server order.
//
// At most one fetch runs at a time; a second request while one is running
// fails with [ErrLoadInProgress].
type Accumulator[T any] struct {
	fetch PageFetcher[T]
	id    func(T) string
	limit int

	mu      sync.Mutex
	state   State
	running bool
	epoch   uint64
	page    int
	total   int
	items   []T
	seen    map[string]struct{}
}

// New returns an Idle accumulator that fetches limit items per page.
func New[T any](limit int, id func(T) string, fetch PageFetcher[T]) (*Accumulator[T], error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}

	return &Accumulator[T]{
		fetch: fetch,
		id:    id,
		limit: limit,
		seen:  make(map[string]struct{}),
	}, nil
}

// Load discards what was accumulated and fetches the first page. On failure
// the previous items stay in place.
func (a *Accumulator[T]) Load(ctx context.Context) error {
	a.mu.Lock()
	if a.running {
		a.mu.Unlock()
		return ErrLoadInProgress
	}
	a.running = true
	epoch := a.epoch
	a.mu.Unlock()

	items, total, err := a.fetch(ctx, 1, a.limit)

	a.mu.Lock()
	defer a.mu.Unlock()
	if epoch != a.epoch {
		return nil
	}
	a.running = false
	if err != nil {
		return err
	}

	a.items = nil
	a.seen = make(map[string]struct{}, len(items))
	a.page = 1
	a.merge(items, total)
	return nil
}

// LoadMore fetches the page after the last loaded one. It reports whether a
// fetch was made: nothing is fetched when the accumulator is exhausted, that
// is when page*limit >= total. From Idle it behaves like [Accumulator.Load].
//
// A failed fetch leaves the items, the page counter and the state as they
// were, so the call can be retried.
func (a *Accumulator[T]) LoadMore(ctx context.Context) (bool, error) {
	a.mu.Lock()
	switch {
	case a.running:
		a.mu.Unlock()
		return false, ErrLoadInProgress
	case a.state == Idle:
		a.mu.Unlock()
		return true, a.Load(ctx)
	case !a.hasMore():
		a.state = Exhausted
		a.mu.Unlock()
		return false, nil
	}

	prev := a.state
	next := a.page + 1
	a.state = LoadingMore
	a.running = true
	epoch := a.epoch
	a.mu.Unlock()

	items, total, err := a.fetch(ctx, next, a.limit)

	a.mu.Lock()
	defer a.mu.Unlock()
	if epoch != a.epoch {
		return true, nil
	}
	a.running = false
	if err != nil {
		a.state = prev
		return true, err
	}

	a.page = next
	a.merge(items, total)
	return true, nil
}

// Reset returns to Idle. A fetch still running is ignored when it ends.
func (a *Accumulator[T]) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.epoch++
	a.running = false
	a.state = Idle
	a.page = 0
	a.total = 0
	a.items = nil
	a.seen = make(map[string]struct{})
}

// merge must be called with mu held.
func (a *Accumulator[T]) merge(items []T, total int) {
	for _, item := range items {
		id := a.id(item)
		if _, dup := a.seen[id]; dup {
			continue
		}
		a.seen[id] = struct{}{}
		a.items = append(a.items, item)
	}

	a.total = total
	if a.hasMore() {
		a.state = Loaded
	} else {
		a.state = Exhausted
	}
}

func (a *Accumulator[T]) hasMore() bool {
	return a.page*a.limit < a.total
}

// Items returns a copy of the accumulated items.
func (a *Accumulator[T]) Items() []T {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]T(nil), a.items...)
}

func (a *Accumulator[T]) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Page is the last successfully loaded page, 0 when Idle.
func (a *Accumulator[T]) Page() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.page
}

// Total is the server-reported item count from the last loaded page.
func (a *Accumulator[T]) Total() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.total
}

func (a *Accumulator[T]) Limit() int {
	return a.limit
}

func (a *Accumulator[T]) Exhausted() bool {
	return a.State() == Exhausted
}

// Loading reports whether a fetch is running.
func (a *Accumulator[T]) Loading() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.running
}
