package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DatabaseQueryLatency records repository query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "skillswap_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// LeaderboardComputeDuration records how long a full leaderboard aggregation takes.
	LeaderboardComputeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "skillswap_leaderboard_compute_seconds",
		Help:    "Leaderboard aggregation latency in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// CacheLookups counts cache-aside lookups by cache name and result (hit, miss, error).
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skillswap_cache_lookups_total",
		Help: "Total cache lookups by result",
	}, []string{"cache", "result"})

	// WebSocketConnectionsTotal is the gauge of relay connections.
	WebSocketConnectionsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "skillswap_websocket_connections_total",
		Help: "Total number of active WebSocket connections",
	})

	// MessageThroughput counts relayed chat frames by delivery mode.
	MessageThroughput = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skillswap_message_throughput_total",
		Help: "Total number of chat messages relayed",
	}, []string{"delivery"})

	// WebSocketBackpressureDrops counts messages dropped due to backpressure by hub and reason.
	WebSocketBackpressureDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skillswap_websocket_backpressure_drops_total",
		Help: "Total number of WebSocket messages dropped due to backpressure",
	}, []string{"hub", "reason"})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
