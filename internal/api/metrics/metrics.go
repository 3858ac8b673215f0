// Package metrics defines and registers all custom Prometheus metrics for the
// identity service. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at import time via
// promauto; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "identity"

// ── Resolution metrics ────────────────────────────────────────────────────────

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "created", "email_taken", or "weak_password"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts password login attempts.
// Labels:
//   - method: "email" or "phone"
//   - result: "ok" or "denied"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of password login attempts, by method and result.",
	},
	[]string{"method", "result"},
)

// ProviderResolutionsTotal counts OAuth profile resolutions.
// Labels:
//   - provider: "google", "facebook", or "github"
//   - outcome: "created" (new record), "linked" (provider id attached to an
//     existing record), or "matched" (already fully linked, no write)
var ProviderResolutionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "provider_resolutions_total",
		Help:      "Total number of provider profile resolutions, by provider and outcome.",
	},
	[]string{"provider", "outcome"},
)

// ── Reset-code metrics ────────────────────────────────────────────────────────

// ResetCodesIssuedTotal counts reset codes actually generated and stored.
// Requests for unknown emails are acknowledged but never counted here.
var ResetCodesIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reset_codes_issued_total",
		Help:      "Total number of password reset codes issued.",
	},
)

// ResetConsumedTotal counts reset-code consumption attempts.
// Label:
//   - result: "ok", "invalid", "expired", or "weak_password"
var ResetConsumedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reset_consumed_total",
		Help:      "Total number of reset-code consumption attempts, by result.",
	},
	[]string{"result"},
)

// ── Delivery queue metrics ────────────────────────────────────────────────────

// DeliveryQueueDepth tracks the number of reset-code deliveries waiting in
// each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var DeliveryQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "delivery_queue_depth",
		Help:      "Current number of reset-code deliveries pending per worker channel.",
	},
	[]string{"worker_id"},
)
