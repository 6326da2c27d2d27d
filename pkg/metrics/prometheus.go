// Package metrics provides Prometheus metrics for the prediction gateway.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the gateway.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Business metrics
	predictionsTotal prometheus.Counter
	upstreamLatency  prometheus.Histogram
	upstreamErrors   *prometheus.CounterVec

	// HTTP performance metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Operational health metrics
	configHealthy        prometheus.Gauge
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "progno",
		subsystem:        "gateway",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	factory := promauto.With(m.registry)

	m.predictionsTotal = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "predictions_total",
		Help:      "Total number of successful predictions relayed to callers.",
	})

	m.upstreamLatency = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "upstream_latency_ms",
		Help:      "Latency of scoring calls to the model serving endpoint in milliseconds.",
		Buckets:   m.histogramBuckets,
	})

	m.upstreamErrors = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "upstream_errors_total",
		Help:      "Scoring call failures by kind (timeout, connection, non_success).",
	}, []string{"kind"})

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint, method, and status code.",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request duration by endpoint, method, and status code in milliseconds.",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.configHealthy = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "config_healthy",
		Help:      "1 when the configuration passes validation, 0 otherwise.",
	})

	m.systemMemoryUsage = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_bytes",
		Help:      "Current allocated memory in bytes.",
	})

	m.systemGoroutineCount = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutines",
		Help:      "Current number of goroutines.",
	})
}

// RecordPrediction increments the successful-prediction counter.
func RecordPrediction() {
	globalManager.predictionsTotal.Inc()
}

// RecordUpstreamLatency records one scoring call's latency in milliseconds.
func RecordUpstreamLatency(latencyMs float64) {
	globalManager.upstreamLatency.Observe(latencyMs)
}

// RecordUpstreamError increments the failure counter for the given kind.
func RecordUpstreamError(kind string) {
	globalManager.upstreamErrors.WithLabelValues(kind).Inc()
}

// RecordHTTPRequest increments the request counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records one request's duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// UpdateConfigHealthy reflects the latest configuration validation result.
func UpdateConfigHealthy(healthy bool) {
	if healthy {
		globalManager.configHealthy.Set(1)
		return
	}
	globalManager.configHealthy.Set(0)
}

// UpdateSystemMemoryUsage sets the allocated-memory gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine gauge.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the custom registry for serving /metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
