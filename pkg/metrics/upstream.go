package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "storefront"

// UpstreamMetrics records calls made to the Storefront API.
type UpstreamMetrics struct {
	duration *prometheus.HistogramVec
	requests *prometheus.CounterVec
}

// NewUpstreamMetrics registers the upstream metrics on the provided registerer.
func NewUpstreamMetrics(reg prometheus.Registerer) *UpstreamMetrics {
	if reg == nil {
		return &UpstreamMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of Storefront API operations in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Storefront API operations by outcome.",
	}, []string{"operation", "outcome"})
	reg.MustRegister(duration, requests)
	return &UpstreamMetrics{
		duration: duration,
		requests: requests,
	}
}

// ObserveUpstream records one finished operation.
func (m *UpstreamMetrics) ObserveUpstream(operation, outcome string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	op := normalizeLabel(operation)
	m.duration.WithLabelValues(op).Observe(duration.Seconds())
	m.requests.WithLabelValues(op, normalizeLabel(outcome)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
