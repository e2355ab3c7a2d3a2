// Package metrics provides Prometheus metrics for the selection service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the selection service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	registry         prometheus.Registerer

	// Core Business Metrics
	enrollments          prometheus.Counter
	duplicatesRejected   prometheus.Counter
	malformedRows        prometheus.Counter
	reportsGenerated     *prometheus.CounterVec
	loginSuccess         prometheus.Counter
	loginFailure         prometheus.Counter
	credentialMigrations prometheus.Counter

	// Operational Health Metrics
	rosterSize   prometheus.Gauge
	platoonSize  *prometheus.GaugeVec
	storeLatency *prometheus.HistogramVec

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByEndpoint    *prometheus.CounterVec
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
		namespace:        "cs25",
		subsystem:        "selection",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.enrollments = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "enrollments_total",
		Help:      "Total number of candidates enrolled",
	})

	m.duplicatesRejected = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "duplicates_rejected_total",
		Help:      "Total number of enrollments rejected for a duplicate name",
	})

	m.malformedRows = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "malformed_rows_total",
		Help:      "Total number of store rows excluded for failing validation",
	})

	m.reportsGenerated = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "reports_generated_total",
		Help:      "Total number of CSV reports generated, by platoon",
	}, []string{"platoon"})

	m.loginSuccess = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "login_success_total",
		Help:      "Total number of successful logins",
	})

	m.loginFailure = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "login_failure_total",
		Help:      "Total number of failed logins",
	})

	m.credentialMigrations = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "credential_migrations_total",
		Help:      "Total number of plaintext secrets rewritten as hashes",
	})

	m.rosterSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "roster_size",
		Help:      "Current number of well-formed candidates in the store",
	})

	m.platoonSize = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "platoon_size",
		Help:      "Current number of candidates per platoon",
	}, []string{"platoon"})

	m.storeLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_latency_milliseconds",
		Help:      "Histogram of external store round-trip latency in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"operation"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "Histogram of HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.errorsByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_by_endpoint_total",
		Help:      "Total number of error responses, by endpoint and type",
	}, []string{"endpoint", "method", "error_type"})
}

// RecordEnrollment increments the enrollment counter.
func RecordEnrollment() {
	globalManager.enrollments.Inc()
}

// RecordDuplicateRejected increments the duplicate rejection counter.
func RecordDuplicateRejected() {
	globalManager.duplicatesRejected.Inc()
}

// RecordMalformedRow increments the malformed row counter.
func RecordMalformedRow() {
	globalManager.malformedRows.Inc()
}

// RecordReportGenerated increments the report counter for a platoon.
func RecordReportGenerated(platoon string) {
	globalManager.reportsGenerated.WithLabelValues(platoon).Inc()
}

// RecordLogin counts a login attempt by outcome.
func RecordLogin(success bool) {
	if success {
		globalManager.loginSuccess.Inc()
		return
	}
	globalManager.loginFailure.Inc()
}

// RecordCredentialMigration increments the plaintext migration counter.
func RecordCredentialMigration() {
	globalManager.credentialMigrations.Inc()
}

// UpdateRosterSize sets the current roster size gauge.
func UpdateRosterSize(size int) {
	globalManager.rosterSize.Set(float64(size))
}

// UpdatePlatoonSize sets the per-platoon size gauge.
func UpdatePlatoonSize(platoon string, size int) {
	globalManager.platoonSize.WithLabelValues(platoon).Set(float64(size))
}

// RecordStoreLatency records one store round trip.
func RecordStoreLatency(operation string, latencyMs float64) {
	globalManager.storeLatency.WithLabelValues(operation).Observe(latencyMs)
}

// RecordHTTPRequest records HTTP request metrics.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordErrorByEndpoint records an error response by endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// GetRegistry returns the custom registry metrics are registered on.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
