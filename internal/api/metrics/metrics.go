// Package metrics defines and registers all custom Prometheus metrics for
// the diary API's authentication subsystem. It is the single source of
// truth for metric names, labels, and help strings.
//
// Metrics register with the default Prometheus registry at package init;
// the router exposes them through the echoprometheus handler.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "diary"

// ── Authentication metrics ───────────────────────────────────────────────────

// LoginsTotal counts password-login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of password login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts successfully created local accounts.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of successful local-account registrations.",
	},
)

// TokenRefreshTotal counts refresh-token exchanges.
// Label:
//   - result: "success" or "failure"
var TokenRefreshTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refresh_total",
		Help:      "Total number of refresh-token exchanges, by result.",
	},
	[]string{"result"},
)

// SessionsRevokedTotal counts deleted refresh sessions.
// Label:
//   - scope: "single" (logout), "all" (logout-all or password change)
var SessionsRevokedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_revoked_total",
		Help:      "Total number of refresh sessions revoked, by scope.",
	},
	[]string{"scope"},
)

// ExternalLoginsTotal counts Google logins by how the identity resolved.
// Label:
//   - outcome: "matched" (provider id on file), "linked" (local account
//     adopted the identity), or "created" (fresh account)
var ExternalLoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "external_logins_total",
		Help:      "Total number of external identity logins, by resolution outcome.",
	},
	[]string{"outcome"},
)

// ── Audit pipeline metrics ───────────────────────────────────────────────────

// AuditQueueDepth tracks the number of audit events waiting in each worker
// channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditEventsDroppedTotal counts audit events discarded because a worker
// buffer was full.
var AuditEventsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_dropped_total",
		Help:      "Total number of audit events dropped due to full worker buffers.",
	},
)
