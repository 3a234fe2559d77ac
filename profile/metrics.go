package profile

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are intentionally simple: plain counters plus one latency
// histogram, all updated from the calling goroutine.
var (
	searchesStartedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "peoplelens",
			Subsystem: "profile",
			Name:      "searches_started_total",
			Help:      "Searches submitted to the backend.",
		},
	)

	searchesCompletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "peoplelens",
			Subsystem: "profile",
			Name:      "searches_completed_total",
			Help:      "Searches that finished and yielded a payload.",
		},
	)

	searchTimeoutsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "peoplelens",
			Subsystem: "profile",
			Name:      "searches_timed_out_total",
			Help:      "Searches whose wait budget elapsed before completion.",
		},
	)

	pollAttemptsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "peoplelens",
			Subsystem: "profile",
			Name:      "poll_attempts_total",
			Help:      "Status checks issued while waiting for searches.",
		},
	)

	searchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "peoplelens",
			Subsystem: "profile",
			Name:      "search_duration_seconds",
			Help:      "End-to-end latency of successful searches.",
			Buckets:   prometheus.DefBuckets,
		},
	)
)
