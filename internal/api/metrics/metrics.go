// Package metrics defines and registers the custom Prometheus metrics of the
// billing admin API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default registry on package init through
// promauto; echoprometheus serves them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/acmedash/billing-admin/internal/core/ports"
)

const namespace = "billing"

// Mutation outcomes.
const (
	OutcomeOK      = "ok"
	OutcomeInvalid = "invalid"
	OutcomeFailed  = "failed"
)

// ── Invoice metrics ───────────────────────────────────────────────────────────

// InvoiceMutationsTotal counts invoice mutations.
// Labels:
//   - op: "create", "update" or "delete"
//   - outcome: "ok", "invalid" (form rejected) or "failed" (store error)
var InvoiceMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "invoice_mutations_total",
		Help:      "Total number of invoice mutations, by operation and outcome.",
	},
	[]string{"op", "outcome"},
)

// ObserveMutation records the outcome of one invoice mutation.
func ObserveMutation(op string, res ports.ActionResult) {
	outcome := OutcomeOK
	switch {
	case len(res.Errors) > 0:
		outcome = OutcomeInvalid
	case res.Message != "":
		outcome = OutcomeFailed
	}
	InvoiceMutationsTotal.WithLabelValues(op, outcome).Inc()
}

// ── Auth metrics ──────────────────────────────────────────────────────────────

// SignInsTotal counts sign-in attempts.
// Label:
//   - outcome: "ok", "credentials_signin", "callback_error" or "error"
var SignInsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sign_ins_total",
		Help:      "Total number of sign-in attempts, by outcome.",
	},
	[]string{"outcome"},
)

// ── Storage metrics ───────────────────────────────────────────────────────────

// ViewCacheLookupsTotal counts view cache reads.
// Labels:
//   - path: the view path, e.g. "/dashboard/invoices"
//   - result: "hit", "miss" or "error"
var ViewCacheLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "view_cache_lookups_total",
		Help:      "Total number of view cache lookups, by path and result.",
	},
	[]string{"path", "result"},
)

// QueryDuration measures how long each SQL statement takes.
// Label:
//   - kind: "read" for queries returning rows, "write" for exec statements
var QueryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "db_query_duration_seconds",
		Help:      "Duration of SQL statements sent to Postgres.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"kind"},
)
