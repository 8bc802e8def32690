package service

import (
	"context"
	"sync"
)

// Mutation is a write. Every Mutate call runs the write exactly once; there
// is no de-duplication and no retry.
//
// Success hooks run in registration order after the write succeeded. The
// first hook error stops the chain and becomes the result of Mutate. Error
// hooks see every failure, including hook failures.
type Mutation[In, Out any] struct {
	run       func(ctx context.Context, in In) (Out, error)
	onSuccess []func(ctx context.Context, in In, out Out) error
	onError   []func(ctx context.Context, in In, err error)

	mu    sync.Mutex
	state State[Out]
}

func NewMutation[In, Out any](run func(ctx context.Context, in In) (Out, error)) *Mutation[In, Out] {
	return &Mutation[In, Out]{run: run}
}

// OnSuccess registers fn and returns m for chaining.
func (m *Mutation[In, Out]) OnSuccess(fn func(ctx context.Context, in In, out Out) error) *Mutation[In, Out] {
	m.onSuccess = append(m.onSuccess, fn)
	return m
}

// OnError registers fn and returns m for chaining.
func (m *Mutation[In, Out]) OnError(fn func(ctx context.Context, in In, err error)) *Mutation[In, Out] {
	m.onError = append(m.onError, fn)
	return m
}

// Mutate performs the write.
func (m *Mutation[In, Out]) Mutate(ctx context.Context, in In) (Out, error) {
	m.mu.Lock()
	m.state.start()
	m.mu.Unlock()

	out, err := m.run(ctx, in)
	if err == nil {
		for _, fn := range m.onSuccess {
			if err = fn(ctx, in, out); err != nil {
				break
			}
		}
	}

	if err != nil {
		for _, fn := range m.onError {
			fn(ctx, in, err)
		}
		var zero Out
		out = zero
	}

	m.mu.Lock()
	m.state.finish(out, err)
	m.mu.Unlock()

	return out, err
}

func (m *Mutation[In, Out]) State() State[Out] {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Reset returns the mutation to idle, e.g. when its form is reopened.
func (m *Mutation[In, Out]) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = State[Out]{}
}
