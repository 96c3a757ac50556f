// Package metrics defines the custom Prometheus metrics of the adoption web
// front end. Metrics register with the default registry on package init
// through promauto and are served at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "shaggy"

// ── Gateway metrics ───────────────────────────────────────────────────────────

// GatewayRequestsTotal counts remote calls.
// Labels:
//   - operation: gateway operation (e.g. "login", "list_pets")
//   - outcome: "ok", "remote_error", "transport_error" or "canceled"
var GatewayRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gateway_requests_total",
		Help:      "Total number of remote service calls, by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

// GatewayRequestDuration measures round-trip time of remote calls.
var GatewayRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "gateway_request_duration_seconds",
		Help:      "Duration of remote service calls.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// RoleResolutionsTotal counts role lookups by resolved role.
// A high "NoRole" rate with result="fallback" points at the role service.
var RoleResolutionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_resolutions_total",
		Help:      "Total number of role resolutions, by role and result (resolved/fallback).",
	},
	[]string{"role", "result"},
)

// SessionResetsTotal counts sessions cleared because of corrupt identity.
var SessionResetsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_resets_total",
		Help:      "Total number of sessions cleared after an unreadable identity.",
	},
)

// SubmitsRejectedTotal counts duplicate submits refused by the in-flight guard.
var SubmitsRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submits_rejected_total",
		Help:      "Total number of submits rejected while the same operation was in flight.",
	},
	[]string{"operation"},
)

// ── Decision metrics ──────────────────────────────────────────────────────────

// DecisionsTotal counts adoption decisions handed to the decision sink.
// Labels:
//   - status: "approved" or "rejected"
//   - result: "submitted" or "failed"
var DecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "adoption_decisions_total",
		Help:      "Total number of adoption decisions delivered to the decision sink.",
	},
	[]string{"status", "result"},
)

// DecisionQueueDepth tracks pending decisions in each dispatcher worker channel.
var DecisionQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "decision_queue_depth",
		Help:      "Current number of decisions pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
