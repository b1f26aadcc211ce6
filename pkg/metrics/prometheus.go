// Package metrics provides Prometheus metrics for the standings service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the standings service.
type Manager struct {
	namespace         string
	subsystem         string
	histogramBuckets  []float64
	constLabels       map[string]string
	runtimeCollectors bool
	registry          prometheus.Registerer

	// Loader Metrics - which table the board was read from
	snapshotLoads  *prometheus.CounterVec
	parseStrategy  *prometheus.CounterVec
	parseFailures  *prometheus.CounterVec
	snapshotRows   prometheus.Gauge
	historyRows    prometheus.Gauge
	storageLatency *prometheus.HistogramVec

	// Ranking Metrics
	rankedCompetitors prometheus.Gauge
	teamPoints        *prometheus.GaugeVec
	rankingErrors     *prometheus.CounterVec

	// Publisher Metrics
	publishes       prometheus.Counter
	publishFailures *prometheus.CounterVec
	publishDuration prometheus.Histogram

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByEndpoint *prometheus.CounterVec
	errorRateByType     *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to keep the exposition limited to what we register.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry), WithRuntimeCollectors(true))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "standings",
		subsystem:        "board",
		histogramBuckets: prometheus.DefBuckets,
		constLabels:      make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // one block per metric
	auto := promauto.With(m.registry)

	if m.runtimeCollectors {
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	m.snapshotLoads = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "snapshot_loads_total",
		Help:        "Board loads by source table (snapshot, initial, none)",
		ConstLabels: m.constLabels,
	}, []string{"source"})

	m.parseStrategy = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "parse_strategy_total",
		Help:        "Tables parsed, by the encoding/delimiter strategy that succeeded",
		ConstLabels: m.constLabels,
	}, []string{"strategy"})

	m.parseFailures = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "parse_failures_total",
		Help:        "Tables no strategy could parse, by origin",
		ConstLabels: m.constLabels,
	}, []string{"origin"})

	m.snapshotRows = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "snapshot_rows",
		Help:        "Data rows in the most recently loaded or published snapshot",
		ConstLabels: m.constLabels,
	})

	m.historyRows = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "history_rows",
		Help:        "Entries in the historical log after the last write",
		ConstLabels: m.constLabels,
	})

	m.storageLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "storage_latency_milliseconds",
		Help:        "Storage operation latency in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"operation"})

	m.rankedCompetitors = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "ranked_competitors",
		Help:        "Competitors in the last computed ranking",
		ConstLabels: m.constLabels,
	})

	m.teamPoints = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "team_points",
		Help:        "Points per team bucket in the last computed ranking",
		ConstLabels: m.constLabels,
	}, []string{"team"})

	m.rankingErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "ranking_errors_total",
		Help:        "Rankings that could not be computed, by kind",
		ConstLabels: m.constLabels,
	}, []string{"kind"})

	m.publishes = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "publishes_total",
		Help:        "Successful publish actions",
		ConstLabels: m.constLabels,
	})

	m.publishFailures = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "publish_failures_total",
		Help:        "Rejected or failed publish actions, by reason",
		ConstLabels: m.constLabels,
	}, []string{"reason"})

	m.publishDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "publish_duration_milliseconds",
		Help:        "Publish duration in milliseconds, parse through history write",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_requests_total",
		Help:        "Total number of HTTP requests by endpoint and method",
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_request_duration_milliseconds",
		Help:        "HTTP request duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.errorRateByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "errors_by_endpoint_total",
		Help:        "HTTP errors by endpoint, method and error type",
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "error_type"})

	m.errorRateByType = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "errors_by_type_total",
		Help:        "HTTP errors by type and severity",
		ConstLabels: m.constLabels,
	}, []string{"error_type", "severity"})
}

// Loader Metrics Functions.

// RecordSnapshotLoad counts a board load from source.
func RecordSnapshotLoad(source string) {
	globalManager.snapshotLoads.WithLabelValues(source).Inc()
}

// RecordParseStrategy counts a table parsed with strategy.
func RecordParseStrategy(strategy string) {
	globalManager.parseStrategy.WithLabelValues(strategy).Inc()
}

// RecordParseFailure counts a table from origin no strategy could parse.
func RecordParseFailure(origin string) {
	globalManager.parseFailures.WithLabelValues(origin).Inc()
}

// UpdateSnapshotRows sets the snapshot row count.
func UpdateSnapshotRows(count int) {
	globalManager.snapshotRows.Set(float64(count))
}

// UpdateHistoryRows sets the history entry count.
func UpdateHistoryRows(count int) {
	globalManager.historyRows.Set(float64(count))
}

// RecordStorageLatency records the latency of a storage operation.
func RecordStorageLatency(operation string, latencyMs float64) {
	globalManager.storageLatency.WithLabelValues(operation).Observe(latencyMs)
}

// Ranking Metrics Functions.

// UpdateRankedCompetitors sets the number of ranked competitors.
func UpdateRankedCompetitors(count int) {
	globalManager.rankedCompetitors.Set(float64(count))
}

// UpdateTeamPoints sets the points total of a team bucket.
func UpdateTeamPoints(team string, points int) {
	globalManager.teamPoints.WithLabelValues(team).Set(float64(points))
}

// RecordRankingError counts a ranking failure of kind.
func RecordRankingError(kind string) {
	globalManager.rankingErrors.WithLabelValues(kind).Inc()
}

// Publisher Metrics Functions.

// RecordPublish counts a successful publish and its duration.
func RecordPublish(durationMs float64) {
	globalManager.publishes.Inc()
	globalManager.publishDuration.Observe(durationMs)
}

// RecordPublishFailure counts a rejected or failed publish.
func RecordPublishFailure(reason string) {
	globalManager.publishFailures.WithLabelValues(reason).Inc()
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

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
