package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loadout_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "loadout_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	DBQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loadout_db_queries_total",
			Help: "Total number of database queries",
		},
		[]string{"query_type", "table"},
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "loadout_db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"query_type", "table"},
	)

	RedisOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loadout_redis_operations_total",
			Help: "Total number of Redis operations",
		},
		[]string{"operation", "status"},
	)

	RedisOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "loadout_redis_operation_duration_seconds",
			Help:    "Redis operation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	LoadoutIntentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loadout_intents_total",
			Help: "Total number of loadout intents by outcome",
		},
		[]string{"operation", "outcome", "reason"},
	)

	TotalsComputationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loadout_totals_computations_total",
			Help: "Total number of resource totals served, by source",
		},
		[]string{"source"},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "loadout_active_sessions",
			Help: "Number of active loadout sessions",
		},
	)

	CatalogEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "loadout_catalog_entries",
			Help: "Number of loaded catalog entries by kind",
		},
		[]string{"kind"},
	)

	ServiceUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "loadout_service_uptime_seconds",
			Help: "Time since Loadout Service started in seconds",
		},
	)

	ServiceInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "loadout_service_info",
			Help: "Loadout Service information",
		},
		[]string{"version", "build_time"},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordDBQuery(queryType, table string, duration float64) {
	DBQueriesTotal.WithLabelValues(queryType, table).Inc()
	DBQueryDuration.WithLabelValues(queryType, table).Observe(duration)
}

func RecordRedisOperation(operation, status string, duration float64) {
	RedisOperationsTotal.WithLabelValues(operation, status).Inc()
	RedisOperationDuration.WithLabelValues(operation).Observe(duration)
}

func RecordIntent(operation string, changed bool, reason string) {
	outcome := "rejected"
	if changed {
		outcome = "changed"
	}
	LoadoutIntentsTotal.WithLabelValues(operation, outcome, reason).Inc()
}

func RecordTotalsComputation(source string) {
	TotalsComputationsTotal.WithLabelValues(source).Inc()
}

func RecordCatalog(items, resources int) {
	CatalogEntries.WithLabelValues("items").Set(float64(items))
	CatalogEntries.WithLabelValues("resources").Set(float64(resources))
}
