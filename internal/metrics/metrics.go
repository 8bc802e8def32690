// Package metrics defines the Prometheus collectors of the loopp client.
// It is the single source of truth for metric names, labels, and help
// strings.
//
// Collectors are registered on the Registerer passed to [New], so tests can
// use a private registry. A nil *Metrics is valid and records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "loopp_client"

// Request outcomes.
const (
	OutcomeSuccess   = "success"
	OutcomeHTTPError = "http_error"
	OutcomeTransport = "transport_error"
)

// Cache lookup results.
const (
	CacheHit    = "hit"
	CacheMiss   = "miss"
	CacheShared = "shared"
)

type Metrics struct {
	// RequestsTotal counts backend requests.
	// Labels:
	//   - operation: adapter operation name (e.g. "list_services")
	//   - outcome: "success", "http_error" or "transport_error"
	RequestsTotal *prometheus.CounterVec

	// RequestDuration measures backend round trips.
	// Label:
	//   - operation: adapter operation name
	RequestDuration *prometheus.HistogramVec

	// CacheRequestsTotal counts query cache lookups.
	// Label:
	//   - result: "hit" (fresh value served), "miss" (loader started) or
	//     "shared" (joined an in-flight load)
	CacheRequestsTotal *prometheus.CounterVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Total number of backend requests, by operation and outcome.",
			},
			[]string{"operation", "outcome"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_seconds",
				Help:      "Duration of backend requests.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		CacheRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_requests_total",
				Help:      "Total number of query cache lookups, labelled by result (hit/miss/shared).",
			},
			[]string{"result"},
		),
	}
}

// ObserveRequest records one finished backend request.
func (m *Metrics) ObserveRequest(operation, outcome string, took time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(operation, outcome).Inc()
	m.RequestDuration.WithLabelValues(operation).Observe(took.Seconds())
}

// ObserveCache records one cache lookup.
func (m *Metrics) ObserveCache(result string) {
	if m == nil {
		return
	}
	m.CacheRequestsTotal.WithLabelValues(result).Inc()
}
