// Package metrics exposes Prometheus counters for submission outcomes.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for SubmissionsTotal. One per terminal branch of the
// submit pipeline.
const (
	OutcomeAccepted      = "accepted"
	OutcomeInvalid       = "invalid"
	OutcomeForbidden     = "forbidden"
	OutcomeRateLimited   = "rate_limited"
	OutcomeMisconfigured = "misconfigured"
	OutcomeSendFailed    = "send_failed"
)

var (
	// SubmissionsTotal counts contact-form submissions by outcome.
	SubmissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "formrelay",
		Name:      "submissions_total",
		Help:      "Contact form submissions by pipeline outcome.",
	}, []string{"outcome"})

	// PanicsTotal counts panics recovered by the HTTP middleware.
	PanicsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "formrelay",
		Name:      "panics_recovered_total",
		Help:      "Panics recovered by HTTP middleware.",
	})
)

// RecordSubmission increments the outcome counter.
func RecordSubmission(outcome string) {
	SubmissionsTotal.WithLabelValues(outcome).Inc()
}

// RecordPanic increments the recovered-panic counter.
func RecordPanic() {
	PanicsTotal.Inc()
}
