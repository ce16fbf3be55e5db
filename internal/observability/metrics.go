package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "quill_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// PostVisibilityDecisions counts read-time visibility checks by outcome
	// (published, draft, scheduled, unscheduled).
	PostVisibilityDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quill_post_visibility_total",
		Help: "Post read visibility decisions by derived state",
	}, []string{"state"})

	// PostEventsPublished counts post lifecycle events by type and outcome.
	PostEventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quill_post_events_total",
		Help: "Post lifecycle events published to Redis",
	}, []string{"event_type", "result"})

	// FeedConnections is the number of open post feed websockets.
	FeedConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "quill_post_feed_connections",
		Help: "Open websocket connections on the post feed",
	})

	// FeedDrops counts events not delivered to a feed client.
	FeedDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quill_post_feed_dropped_total",
		Help: "Post feed events dropped by reason",
	}, []string{"reason"})
)

// DatabaseMetrics records repository query latency.
type DatabaseMetrics struct{}

// NewDatabaseMetrics returns a new DatabaseMetrics instance.
func NewDatabaseMetrics() *DatabaseMetrics {
	return &DatabaseMetrics{}
}

// ObserveQuery records the latency of a database query.
func (m *DatabaseMetrics) ObserveQuery(operation, table string, start time.Time) {
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func (m *DatabaseMetrics) TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		m.ObserveQuery(operation, table, start)
	}
}
