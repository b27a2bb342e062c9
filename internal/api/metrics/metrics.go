// Package metrics defines all custom Prometheus metrics for the certificate
// tracker admin gateway. It is the single source of truth for metric names,
// labels, and help strings. Metrics register themselves with the default
// registry at package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "certtrack"

// Outcome labels for UpstreamRequestsTotal.
const (
	OutcomeOK          = "ok"
	OutcomeRejected    = "rejected"    // non-success HTTP status from the upstream
	OutcomeUnavailable = "unavailable" // transport failure, upstream never answered
)

// UpstreamRequestsTotal counts calls issued to the backend services.
// Labels:
//   - service: "auth", "users", "certificates" or "notify"
//   - outcome: see the Outcome constants
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of requests issued to upstream services, by outcome.",
	},
	[]string{"service", "outcome"},
)

// UpstreamRequestDuration measures the wall time of one upstream call,
// transport failures included.
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of upstream service calls.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"service"},
)

// SessionsEstablishedTotal counts successful logins, by role.
var SessionsEstablishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_established_total",
		Help:      "Total number of sessions established through login, by role.",
	},
	[]string{"role"},
)

// ImportsTotal counts bulk import attempts.
// Label:
//   - result: "ok" or "error"
var ImportsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "imports_total",
		Help:      "Total number of bulk certificate imports, by result.",
	},
	[]string{"result"},
)
