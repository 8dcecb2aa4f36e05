// Package metrics provides Prometheus metrics for the questlog service.
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

// Manager manages all Prometheus metrics for the questlog service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	registry         prometheus.Registerer

	// Core Business Metrics - session tracking and progression
	actionsTracked       *prometheus.CounterVec
	metricIncrements     *prometheus.CounterVec
	achievementsUnlocked *prometheus.CounterVec
	missionsCompleted    prometheus.Counter
	sessionsMerged       prometheus.Counter

	// Ranking Metrics
	rankingRebuilds        prometheus.Counter
	rankingRebuildDuration prometheus.Histogram
	rankingLastUnix        prometheus.Gauge
	leaderboardSize        prometheus.Gauge

	// Population Gauges
	heroCount      prometheus.Gauge
	userCount      prometheus.Gauge
	itemCount      prometheus.Gauge
	actionLogSize  prometheus.Gauge
	sessionSeconds prometheus.Gauge

	// Command Bus Metrics
	commandQueueSize        prometheus.Gauge
	commandQueueCapacity    prometheus.Gauge
	commandQueueUtilization prometheus.Gauge
	commandsEnqueued        prometheus.Counter
	commandsDropped         prometheus.Counter
	commandsDispatched      prometheus.Counter
	dispatchLatency         prometheus.Histogram
	dispatchErrors          prometheus.Counter

	// Storage Metrics
	storeReadFailures       prometheus.Counter
	repositoryQueryLatency  prometheus.Histogram
	repositoryUpdateLatency prometheus.Histogram

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Enhanced Error Metrics
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec
	errorLatency         *prometheus.HistogramVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
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
		namespace:        "questlog",
		subsystem:        "academy",
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
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)

	// Core Business Metrics
	m.actionsTracked = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "actions_tracked_total",
			Help:      "Total number of user actions recorded in the action log, by kind",
		},
		[]string{"kind"},
	)

	m.metricIncrements = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "metric_increments_total",
			Help:      "Total number of session metric increments, by metric name",
		},
		[]string{"metric"},
	)

	m.achievementsUnlocked = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "achievements_unlocked_total",
			Help:      "Total number of achievements unlocked, by badge key",
		},
		[]string{"badge"},
	)

	m.missionsCompleted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "missions_completed_total",
		Help:      "Total number of missions completed with rewards applied",
	})

	m.sessionsMerged = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sessions_merged_total",
		Help:      "Total number of sessions resumed from a prior snapshot",
	})

	// Ranking Metrics
	m.rankingRebuilds = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ranking_rebuilds_total",
		Help:      "Total number of leaderboard rebuilds",
	})

	m.rankingRebuildDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ranking_rebuild_duration_milliseconds",
		Help:      "Leaderboard rebuild duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.rankingLastUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ranking_last_rebuild_unix",
		Help:      "Unix timestamp of the last leaderboard rebuild",
	})

	m.leaderboardSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "leaderboard_size",
		Help:      "Number of entries in the current leaderboard",
	})

	// Population Gauges
	m.heroCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "hero_count",
		Help:      "Total number of heroes in the relational store",
	})

	m.userCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "user_count",
		Help:      "Total number of registered users",
	})

	m.itemCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "item_count",
		Help:      "Total number of items in the collection",
	})

	m.actionLogSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "action_log_size",
		Help:      "Current number of retained actions in the session action log",
	})

	m.sessionSeconds = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "session_duration_seconds",
		Help:      "Elapsed duration of the current session in seconds",
	})

	// Command Bus Metrics
	m.commandQueueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "command_queue_size",
		Help:      "Current size of the command queue (backlog indicator)",
	})

	m.commandQueueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "command_queue_capacity",
		Help:      "Maximum command queue capacity",
	})

	m.commandQueueUtilization = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "command_queue_utilization_ratio",
		Help:      "Command queue utilization ratio (current size / capacity)",
	})

	m.commandsEnqueued = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "commands_enqueued_total",
		Help:      "Total number of commands accepted onto the bus",
	})

	m.commandsDropped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "commands_dropped_total",
		Help:      "Total number of commands rejected due to backpressure or closed queue",
	})

	m.commandsDispatched = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "commands_dispatched_total",
		Help:      "Total number of commands applied to the session tracker",
	})

	m.dispatchLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dispatch_latency_milliseconds",
		Help:      "Command dispatch latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.dispatchErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dispatch_errors_total",
		Help:      "Total number of command dispatch errors",
	})

	// Storage Metrics
	m.storeReadFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_read_failures_total",
		Help:      "Total number of blob store reads degraded to an empty default",
	})

	m.repositoryQueryLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "repository_query_latency_milliseconds",
		Help:      "Relational store query latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.repositoryUpdateLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "repository_update_latency_milliseconds",
		Help:      "Relational store update latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	// HTTP Performance Metrics
	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds (user experience)",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	// Enhanced Error Metrics
	m.errorRateByComponent = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_component_total",
			Help:      "Total number of errors by component",
		},
		[]string{"component", "error_type"},
	)

	m.errorRateByType = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_type_total",
			Help:      "Total number of errors by type",
		},
		[]string{"error_type", "severity"},
	)

	m.errorRateByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_endpoint_total",
			Help:      "Total number of errors by endpoint",
		},
		[]string{"endpoint", "method", "error_type"},
	)

	m.errorLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "error_latency_milliseconds",
			Help:      "Latency of operations that resulted in errors",
			Buckets:   m.histogramBuckets,
		},
		[]string{"component", "error_type"},
	)

	// System Performance Metrics
	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_usage_bytes",
		Help:      "System memory usage in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutine_count",
		Help:      "Number of goroutines",
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_gc_pause_time_milliseconds",
		Help:      "GC pause time in milliseconds",
		Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	})
}

// RecordActionTracked increments the tracked-actions counter for a kind.
func RecordActionTracked(kind string) {
	globalManager.actionsTracked.WithLabelValues(kind).Inc()
}

// RecordMetricIncrement increments the metric-increments counter for a metric.
func RecordMetricIncrement(metric string) {
	globalManager.metricIncrements.WithLabelValues(metric).Inc()
}

// RecordAchievementUnlocked increments the unlocked counter for a badge key.
func RecordAchievementUnlocked(badge string) {
	globalManager.achievementsUnlocked.WithLabelValues(badge).Inc()
}

// RecordMissionCompleted increments the completed-missions counter.
func RecordMissionCompleted() {
	globalManager.missionsCompleted.Inc()
}

// RecordSessionMerged increments the resumed-sessions counter.
func RecordSessionMerged() {
	globalManager.sessionsMerged.Inc()
}

// RecordRankingRebuild records a leaderboard rebuild and its duration.
func RecordRankingRebuild(durationMs float64) {
	globalManager.rankingRebuilds.Inc()
	globalManager.rankingRebuildDuration.Observe(durationMs)
	globalManager.rankingLastUnix.Set(float64(time.Now().Unix()))
}

// UpdateLeaderboardSize sets the current leaderboard size.
func UpdateLeaderboardSize(n int) {
	globalManager.leaderboardSize.Set(float64(n))
}

// UpdateHeroCount sets the total hero count.
func UpdateHeroCount(n int) {
	globalManager.heroCount.Set(float64(n))
}

// UpdateUserCount sets the total user count.
func UpdateUserCount(n int) {
	globalManager.userCount.Set(float64(n))
}

// UpdateItemCount sets the total item count.
func UpdateItemCount(n int) {
	globalManager.itemCount.Set(float64(n))
}

// UpdateActionLogSize sets the current action log size.
func UpdateActionLogSize(n int) {
	globalManager.actionLogSize.Set(float64(n))
}

// UpdateSessionSeconds sets the elapsed session duration in seconds.
func UpdateSessionSeconds(seconds float64) {
	globalManager.sessionSeconds.Set(seconds)
}

// Command Bus Metrics Functions.

// UpdateCommandQueueSize sets the current command queue size.
func UpdateCommandQueueSize(size int) {
	globalManager.commandQueueSize.Set(float64(size))
}

// UpdateCommandQueueCapacity sets the maximum command queue capacity.
func UpdateCommandQueueCapacity(capacity int) {
	globalManager.commandQueueCapacity.Set(float64(capacity))
}

// UpdateCommandQueueUtilization sets the command queue utilization ratio.
func UpdateCommandQueueUtilization(utilization float64) {
	globalManager.commandQueueUtilization.Set(utilization)
}

// RecordCommandEnqueued increments the enqueued-commands counter.
func RecordCommandEnqueued() {
	globalManager.commandsEnqueued.Inc()
}

// RecordCommandDropped increments the dropped-commands counter.
func RecordCommandDropped() {
	globalManager.commandsDropped.Inc()
}

// RecordCommandDispatched increments the dispatched-commands counter.
func RecordCommandDispatched() {
	globalManager.commandsDispatched.Inc()
}

// RecordDispatchLatency records command dispatch latency in milliseconds.
func RecordDispatchLatency(latencyMs float64) {
	globalManager.dispatchLatency.Observe(latencyMs)
}

// RecordDispatchError increments the dispatch error counter.
func RecordDispatchError() {
	globalManager.dispatchErrors.Inc()
}

// Storage Metrics Functions.

// RecordStoreReadFailure increments the degraded-reads counter.
func RecordStoreReadFailure() {
	globalManager.storeReadFailures.Inc()
}

// RecordRepositoryQueryLatency records relational store query latency.
func RecordRepositoryQueryLatency(latencyMs float64) {
	globalManager.repositoryQueryLatency.Observe(latencyMs)
}

// RecordRepositoryUpdateLatency records relational store update latency.
func RecordRepositoryUpdateLatency(latencyMs float64) {
	globalManager.repositoryUpdateLatency.Observe(latencyMs)
}

// HTTP Metrics Functions.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// Enhanced Error Metrics Functions.

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records the latency of an operation that resulted in an error.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// System Performance Metrics Functions.

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
