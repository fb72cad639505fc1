// Package metrics defines and registers all custom Prometheus metrics for the
// scores API. Metrics are registered with the default registry on import and
// exposed on GET /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "scores"

// ── HTTP metrics ──────────────────────────────────────────────────────────────

// HTTPRequestsTotal counts handled requests.
// Labels:
//   - method: HTTP method
//   - route: the matched route template (e.g. "/api/users/scores/:id"), or "unmatched"
//   - status: response status code
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests handled.",
	},
	[]string{"method", "route", "status"},
)

// HTTPRequestDuration measures handler latency by route.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP request handling.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// AuthFailuresTotal counts rejected bearer tokens.
// Label:
//   - reason: "missing_header", "malformed_header" or "invalid_token"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of requests rejected by bearer authentication.",
	},
	[]string{"reason"},
)

// ── Score metrics ─────────────────────────────────────────────────────────────

// ScoreUpdatesTotal counts applied score updates.
var ScoreUpdatesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "score_updates_total",
		Help:      "Total number of score updates applied.",
	},
)

// ScoreCacheTotal counts leaderboard cache lookups.
// Label:
//   - result: "hit", "miss" or "error"
var ScoreCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "score_cache_total",
		Help:      "Total number of leaderboard cache lookups, labelled by result.",
	},
	[]string{"result"},
)

// ── History metrics ───────────────────────────────────────────────────────────

// HistoryRecordedTotal counts score changes persisted to the audit trail.
var HistoryRecordedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "history_recorded_total",
		Help:      "Total number of score changes written to the history collection.",
	},
)

// HistoryErrorsTotal counts score changes that could not be persisted.
var HistoryErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "history_errors_total",
		Help:      "Total number of score changes that failed to persist.",
	},
)

// HistoryQueueDepth tracks pending changes per dispatcher worker.
// Label:
//   - worker_id: numeric worker index
var HistoryQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "history_queue_depth",
		Help:      "Current number of score changes pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
