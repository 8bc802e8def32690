package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRequest(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveRequest("list_services", OutcomeSuccess, 20*time.Millisecond)
	m.ObserveRequest("list_services", OutcomeSuccess, 30*time.Millisecond)
	m.ObserveRequest("login", OutcomeHTTPError, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("list_services", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("login", OutcomeHTTPError)))
	assert.Equal(t, 2, testutil.CollectAndCount(m.RequestDuration))
}

func TestObserveCache(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveCache(CacheMiss)
	m.ObserveCache(CacheHit)
	m.ObserveCache(CacheHit)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheRequestsTotal.WithLabelValues(CacheHit)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheRequestsTotal.WithLabelValues(CacheMiss)))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRequest("login", OutcomeSuccess, time.Second)
		m.ObserveCache(CacheHit)
	})
}

func TestNew_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NotPanics(t, func() { New(reg) })
	assert.Panics(t, func() { New(reg) })
}
