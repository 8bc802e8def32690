package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/loopp-client/internal/adapter"
	"github.com/MKhiriev/loopp-client/internal/cache"
	"github.com/MKhiriev/loopp-client/internal/logger"
)

type pageParams struct{ Page, Limit int }

func pageKey(p pageParams) map[string]any {
	return map[string]any{"page": p.Page, "limit": p.Limit}
}

func TestQuery_ConcurrentLoadsShareOneCall(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})

	q := NewQuery(cache.New(0, nil, logger.Nop()), "services", pageKey,
		func(ctx context.Context, p pageParams) (string, error) {
			calls.Add(1)
			<-release
			return "page", nil
		})

	var wg sync.WaitGroup
	results := make([]string, 2)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := q.Load(context.Background(), pageParams{1, 12})
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}

	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, []string{"page", "page"}, results)
}

func TestQuery_CachedByParams(t *testing.T) {
	var calls atomic.Int32
	q := NewQuery(cache.New(0, nil, nil), "services", pageKey,
		func(ctx context.Context, p pageParams) (int, error) {
			calls.Add(1)
			return p.Page, nil
		})

	for _, p := range []pageParams{{1, 12}, {1, 12}, {2, 12}, {2, 12}} {
		v, err := q.Load(context.Background(), p)
		require.NoError(t, err)
		assert.Equal(t, p.Page, v)
	}

	assert.Equal(t, int32(2), calls.Load())
}

func TestQuery_RefetchWithParamsBypassesCache(t *testing.T) {
	var calls atomic.Int32
	q := NewQuery(cache.New(0, nil, nil), "services", pageKey,
		func(ctx context.Context, p pageParams) (int32, error) {
			return calls.Add(1), nil
		})

	first, err := q.Load(context.Background(), pageParams{2, 2})
	require.NoError(t, err)

	second, err := q.RefetchWithParams(context.Background(), pageParams{2, 2})
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	third, err := q.Load(context.Background(), pageParams{2, 2})
	require.NoError(t, err)
	assert.Equal(t, second, third)
}

func TestQuery_State(t *testing.T) {
	fail := true
	q := NewQuery(cache.New(0, nil, nil), "currentUser", nil,
		func(ctx context.Context, _ struct{}) (string, error) {
			if fail {
				return "", &adapter.APIError{StatusCode: 500, Message: "Server exploded"}
			}
			return "ada", nil
		})

	assert.True(t, q.State().IsIdle())

	_, err := q.Load(context.Background(), struct{}{})
	require.Error(t, err)
	st := q.State()
	assert.True(t, st.IsError())
	assert.Equal(t, "Server exploded", st.ErrMessage)

	fail = false
	v, err := q.Load(context.Background(), struct{}{})
	require.NoError(t, err)
	assert.Equal(t, "ada", v)

	st = q.State()
	assert.True(t, st.IsSuccess())
	assert.Equal(t, "ada", st.Data)
	assert.Empty(t, st.ErrMessage)
}

func TestQuery_FailedReloadKeepsData(t *testing.T) {
	boom := errors.New("dial tcp: connection refused")
	fail := false
	q := NewQuery(cache.New(0, nil, nil), "services", pageKey,
		func(ctx context.Context, p pageParams) (int, error) {
			if fail {
				return 0, boom
			}
			return 7, nil
		})

	_, err := q.Load(context.Background(), pageParams{1, 1})
	require.NoError(t, err)

	fail = true
	_, err = q.RefetchWithParams(context.Background(), pageParams{1, 1})
	require.ErrorIs(t, err, boom)

	st := q.State()
	assert.True(t, st.IsError())
	assert.Equal(t, 7, st.Data)
	assert.Equal(t, adapter.MsgUnexpected, st.ErrMessage)
}

func TestQuery_InvalidateDropsEveryParam(t *testing.T) {
	var calls atomic.Int32
	c := cache.New(0, nil, nil)
	q := NewQuery(c, "services", pageKey,
		func(ctx context.Context, p pageParams) (int, error) {
			calls.Add(1)
			return p.Page, nil
		})

	_, _ = q.Load(context.Background(), pageParams{1, 2})
	_, _ = q.Load(context.Background(), pageParams{2, 2})
	q.Invalidate()
	_, _ = q.Load(context.Background(), pageParams{1, 2})
	_, _ = q.Load(context.Background(), pageParams{2, 2})

	assert.Equal(t, int32(4), calls.Load())
}
