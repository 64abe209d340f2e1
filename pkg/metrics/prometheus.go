// Package metrics provides Prometheus metrics for the MentiBY leaderboard service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Refresh Metrics - the core of the coordinator's behavior
	refreshesTotal    *prometheus.CounterVec
	refreshCoalesced  prometheus.Counter
	fetchFailures     prometheus.Counter
	fetchDuration     prometheus.Histogram
	lastFetchUnix     prometheus.Gauge

	// Notification Metrics - debounce visibility
	notifySignals prometheus.Counter
	notifyFires   prometheus.Counter

	// Staleness Metrics
	stalenessProbes   prometheus.Counter
	stalenessTriggers prometheus.Counter

	// Update Job Metrics
	updateJobs        *prometheus.CounterVec
	updateJobDuration prometheus.Histogram

	// Leaderboard State Metrics
	leaderboardSize prometheus.Gauge
	viewSize        prometheus.Gauge

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// System Performance Metrics
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
		namespace:        "mentiby",
		subsystem:        "leaderboard",
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

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.refreshesTotal = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "refreshes_total",
		Help:      "Total number of canonical dataset refreshes, by trigger source",
	}, []string{"trigger"})

	m.refreshCoalesced = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "refreshes_coalesced_total",
		Help:      "Total number of refresh requests serviced by an already in-flight fetch",
	})

	m.fetchFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fetch_failures_total",
		Help:      "Total number of failed canonical dataset fetches",
	})

	m.fetchDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fetch_duration_milliseconds",
		Help:      "Histogram of canonical dataset fetch duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.lastFetchUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "last_fetch_timestamp_seconds",
		Help:      "Unix timestamp of the last successful canonical dataset fetch",
	})

	m.notifySignals = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "notify_signals_total",
		Help:      "Total number of change notifications received from the store",
	})

	m.notifyFires = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "notify_fires_total",
		Help:      "Total number of debounced refetches fired (signals minus collapsed)",
	})

	m.stalenessProbes = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "staleness_probes_total",
		Help:      "Total number of one-shot staleness probes run",
	})

	m.stalenessTriggers = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "staleness_triggers_total",
		Help:      "Total number of staleness probes that triggered an update cycle",
	})

	m.updateJobs = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "update_jobs_total",
		Help:      "Total number of XP recomputation job invocations, by outcome",
	}, []string{"outcome"})

	m.updateJobDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "update_job_duration_milliseconds",
		Help:      "Histogram of XP recomputation job duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.leaderboardSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "canonical_entries",
		Help:      "Current number of entries in the canonical ranked dataset",
	})

	m.viewSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "view_entries",
		Help:      "Current number of entries in the filtered view",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by endpoint, method and status code",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "Histogram of HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "memory_usage_bytes",
		Help:      "Current memory usage in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "goroutine_count",
		Help:      "Current number of goroutines",
	})
}

// Refresh metrics.

// RecordRefresh increments the refresh counter for a trigger source.
func RecordRefresh(trigger string) {
	globalManager.refreshesTotal.WithLabelValues(trigger).Inc()
}

// RecordRefreshCoalesced increments the coalesced-refresh counter.
func RecordRefreshCoalesced() {
	globalManager.refreshCoalesced.Inc()
}

// RecordFetchFailure increments the fetch failure counter.
func RecordFetchFailure() {
	globalManager.fetchFailures.Inc()
}

// RecordFetchDuration records a fetch duration observation.
func RecordFetchDuration(durationMs float64) {
	globalManager.fetchDuration.Observe(durationMs)
}

// UpdateLastFetchTime sets the last successful fetch timestamp.
func UpdateLastFetchTime(unixSeconds float64) {
	globalManager.lastFetchUnix.Set(unixSeconds)
}

// Notification metrics.

// RecordNotifySignal increments the received-notification counter.
func RecordNotifySignal() {
	globalManager.notifySignals.Inc()
}

// RecordNotifyFire increments the debounce-fire counter.
func RecordNotifyFire() {
	globalManager.notifyFires.Inc()
}

// Staleness metrics.

// RecordStalenessProbe increments the staleness probe counter.
func RecordStalenessProbe() {
	globalManager.stalenessProbes.Inc()
}

// RecordStalenessTrigger increments the staleness-triggered-update counter.
func RecordStalenessTrigger() {
	globalManager.stalenessTriggers.Inc()
}

// Update job metrics.

// RecordUpdateJob increments the update job counter for an outcome.
func RecordUpdateJob(outcome string) {
	globalManager.updateJobs.WithLabelValues(outcome).Inc()
}

// RecordUpdateJobDuration records an update job duration observation.
func RecordUpdateJobDuration(durationMs float64) {
	globalManager.updateJobDuration.Observe(durationMs)
}

// Leaderboard state metrics.

// UpdateLeaderboardSize sets the canonical dataset size gauge.
func UpdateLeaderboardSize(count int) {
	globalManager.leaderboardSize.Set(float64(count))
}

// UpdateViewSize sets the filtered view size gauge.
func UpdateViewSize(count int) {
	globalManager.viewSize.Set(float64(count))
}

// HTTP metrics.

// RecordHTTPRequest increments the HTTP request counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records an HTTP request duration observation.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// System metrics.

// UpdateSystemMemoryUsage sets the memory usage gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine count gauge.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the custom Prometheus registry for serving /metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
