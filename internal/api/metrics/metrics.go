// Package metrics defines and registers all custom Prometheus metrics for the
// worklock API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default Prometheus registry at import time; the
// router exposes them on /metrics alongside the echoprometheus HTTP metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "worklock"

// TxSubmittedTotal counts transactions that reached the ledger and were
// accepted.
// Label:
//   - operation: the invoked contract function (e.g. "check_in")
var TxSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tx_submitted_total",
		Help:      "Total number of transactions accepted by the ledger.",
	},
	[]string{"operation"},
)

// TxRejectedTotal counts transactions the pipeline could not land.
// Labels:
//   - operation: the invoked contract function
//   - stage: where it died ("account", "simulation", "signing", "submission")
var TxRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tx_rejected_total",
		Help:      "Total number of transactions rejected, labelled by pipeline stage.",
	},
	[]string{"operation", "stage"},
)

// TxSubmitDuration measures the full assemble-sign-submit round trip.
// Label:
//   - operation: the invoked contract function
var TxSubmitDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "tx_submit_duration_seconds",
		Help:      "Duration of the transaction pipeline from assembly to receipt.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"operation"},
)

// ChallengesIssuedTotal counts fresh challenge issuances. Serving a still
// valid challenge from the store does not count.
var ChallengesIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "challenges_issued_total",
		Help:      "Total number of fresh challenges issued.",
	},
)

// NonceReplayTotal counts replay-guard decisions.
// Label:
//   - result: "hit" (replay, blocked locally) or "miss" (fresh nonce)
var NonceReplayTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "nonce_replay_total",
		Help:      "Total number of replay-guard checks, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// AttendanceReadFailuresTotal counts per-day history reads that were skipped
// after a ledger error.
var AttendanceReadFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "attendance_read_failures_total",
		Help:      "Total number of per-day attendance reads skipped due to ledger errors.",
	},
)
