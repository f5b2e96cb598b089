// Package metrics defines and registers all custom Prometheus metrics for
// the membership portal. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default registry at package init via
// promauto; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "membership"

// ── Authentication metrics ───────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Labels:
//   - method: "email" or "phone"
//   - result: "success", "invalid_input", "rejected", "unreachable", "locked"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by method and result.",
	},
	[]string{"method", "result"},
)

// ForcedLogoutsTotal counts sessions cleared after an upstream 401.
var ForcedLogoutsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "forced_logouts_total",
		Help:      "Total number of sessions cleared after a stale-token response.",
	},
)

// GuardDenialsTotal counts navigation attempts refused by a route guard.
// Labels:
//   - guard: "private" or "admin"
//   - reason: "no_session" or "wrong_role"
var GuardDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_denials_total",
		Help:      "Total number of guarded navigations redirected away.",
	},
	[]string{"guard", "reason"},
)

// ── Membership card metrics ──────────────────────────────────────────────────

// CardsIssuedTotal counts membership-card issuances.
// Label:
//   - format: "payload", "qr", or "share"
var CardsIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cards_issued_total",
		Help:      "Total number of membership cards issued, by output format.",
	},
	[]string{"format"},
)

// CardVerificationsTotal counts public card verifications.
// Label:
//   - result: "valid" or "invalid"
var CardVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "card_verifications_total",
		Help:      "Total number of card verification decodes, by result.",
	},
	[]string{"result"},
)

// ── Audit pipeline metrics ───────────────────────────────────────────────────

// AuditQueueDepth tracks the number of auth events waiting in each worker
// channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of auth events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditEventsDroppedTotal counts auth events dropped because a worker buffer
// was full.
// Label:
//   - kind: the event kind (e.g. "login_success")
var AuditEventsDroppedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_dropped_total",
		Help:      "Total number of auth events dropped under backpressure.",
	},
	[]string{"kind"},
)
