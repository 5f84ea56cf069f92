// Package metrics provides Prometheus metrics for the Gong slash-command
// service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector the service records into.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Business metrics
	commandsDispatched *prometheus.CounterVec
	recordsCreated     *prometheus.CounterVec
	recordsSkipped     prometheus.Counter
	leaderboardQueries *prometheus.CounterVec

	// Store health
	storeErrors prometheus.Counter
	storeKeys   prometheus.Gauge

	// HTTP performance
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	authFailures        prometheus.Counter
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "gong",
		subsystem:        "slash",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	factory := promauto.With(m.registry)

	m.commandsDispatched = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "commands_dispatched_total",
		Help:      "Slash commands dispatched, by command name.",
	}, []string{"command"})

	m.recordsCreated = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "records_created_total",
		Help:      "Achievement records persisted, by metric.",
	}, []string{"metric"})

	m.recordsSkipped = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "records_skipped_total",
		Help:      "Stored records skipped because they failed to decode.",
	})

	m.leaderboardQueries = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "leaderboard_queries_total",
		Help:      "Leaderboard reads, by metric.",
	}, []string{"metric"})

	m.storeErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_errors_total",
		Help:      "Key-value store operations that failed.",
	})

	m.storeKeys = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_keys",
		Help:      "Keys currently held by the in-memory store backend.",
	})

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests served, by endpoint, method, and status.",
	}, []string{"endpoint", "method", "status"})

	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status"})

	m.authFailures = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "auth_failures_total",
		Help:      "Requests rejected for a missing or mismatched verify token.",
	})
}

// GetRegistry returns the registry backing the global manager, for serving
// over HTTP.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level helpers recording into the global manager.

// CommandDispatched counts one dispatched slash command.
func CommandDispatched(command string) {
	if globalManager.enabled {
		globalManager.commandsDispatched.WithLabelValues(command).Inc()
	}
}

// RecordCreated counts one persisted achievement record.
func RecordCreated(metric string) {
	if globalManager.enabled {
		globalManager.recordsCreated.WithLabelValues(metric).Inc()
	}
}

// RecordSkipped counts one stored record dropped during aggregation.
func RecordSkipped() {
	if globalManager.enabled {
		globalManager.recordsSkipped.Inc()
	}
}

// LeaderboardQueried counts one leaderboard read.
func LeaderboardQueried(metric string) {
	if globalManager.enabled {
		globalManager.leaderboardQueries.WithLabelValues(metric).Inc()
	}
}

// RecordStoreError counts one failed store operation.
func RecordStoreError() {
	if globalManager.enabled {
		globalManager.storeErrors.Inc()
	}
}

// UpdateStoreKeys sets the current store key count.
func UpdateStoreKeys(n int) {
	if globalManager.enabled {
		globalManager.storeKeys.Set(float64(n))
	}
}

// RecordHTTPRequest counts one served HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	if globalManager.enabled {
		globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
	}
}

// RecordHTTPRequestDuration observes one request's latency in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, status string, durationMs float64) {
	if globalManager.enabled {
		globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(durationMs)
	}
}

// RecordAuthFailure counts one rejected verify token.
func RecordAuthFailure() {
	if globalManager.enabled {
		globalManager.authFailures.Inc()
	}
}
