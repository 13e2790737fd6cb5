// Package observability carries the metrics plumbing shared by the service
// layers: a small operation-level interface, a Prometheus-backed
// implementation, and a no-op implementation for tests.
package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// OperationMetrics records coarse per-operation outcomes for a component.
type OperationMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation, component string)
	RecordOperationSuccess(ctx context.Context, operation, component string)
	RecordOperationFailure(ctx context.Context, operation, component string)
	RecordOperationDuration(ctx context.Context, operation, component string, duration time.Duration)
}

// PrometheusMetrics implements OperationMetrics on a Prometheus registry.
type PrometheusMetrics struct {
	attempts  *prometheus.CounterVec
	successes *prometheus.CounterVec
	failures  *prometheus.CounterVec
	durations *prometheus.HistogramVec
}

// NewPrometheusMetrics registers the operation metric vectors on reg.
func NewPrometheusMetrics(reg prometheus.Registerer, namespace string) *PrometheusMetrics {
	factory := promauto.With(reg)
	labels := []string{"operation", "component"}
	return &PrometheusMetrics{
		attempts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operation_attempts_total",
			Help:      "Number of operation attempts.",
		}, labels),
		successes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operation_successes_total",
			Help:      "Number of operations that completed successfully.",
		}, labels),
		failures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operation_failures_total",
			Help:      "Number of operations that failed.",
		}, labels),
		durations: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Operation duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, labels),
	}
}

func (m *PrometheusMetrics) RecordOperationAttempt(_ context.Context, operation, component string) {
	m.attempts.WithLabelValues(operation, component).Inc()
}

func (m *PrometheusMetrics) RecordOperationSuccess(_ context.Context, operation, component string) {
	m.successes.WithLabelValues(operation, component).Inc()
}

func (m *PrometheusMetrics) RecordOperationFailure(_ context.Context, operation, component string) {
	m.failures.WithLabelValues(operation, component).Inc()
}

func (m *PrometheusMetrics) RecordOperationDuration(_ context.Context, operation, component string, duration time.Duration) {
	m.durations.WithLabelValues(operation, component).Observe(duration.Seconds())
}

// NoOpMetrics discards every observation. Used in unit tests.
type NoOpMetrics struct{}

func (NoOpMetrics) RecordOperationAttempt(context.Context, string, string) {}
func (NoOpMetrics) RecordOperationSuccess(context.Context, string, string) {}
func (NoOpMetrics) RecordOperationFailure(context.Context, string, string) {}
func (NoOpMetrics) RecordOperationDuration(context.Context, string, string, time.Duration) {
}

var _ OperationMetrics = (*PrometheusMetrics)(nil)

var _ OperationMetrics = NoOpMetrics{}
