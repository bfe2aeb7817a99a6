package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	refreshSucceeded = "success"
	refreshFailed    = "failure"
	refreshMissing   = "missing_token"
)

// Metrics are the client-side counters of the API client.
type Metrics struct {
	Requests        *prometheus.CounterVec
	Refreshes       *prometheus.CounterVec
	SessionExpiries prometheus.Counter
}

// NewMetrics creates the counters and registers them with reg. A nil reg
// leaves them unregistered, which is what tests use.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tailor",
			Subsystem: "api_client",
			Name:      "requests_total",
			Help:      "Requests dispatched to the remote API by method and status code.",
		}, []string{"method", "code"}),
		Refreshes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tailor",
			Subsystem: "api_client",
			Name:      "token_refreshes_total",
			Help:      "Token refresh attempts by outcome.",
		}, []string{"outcome"}),
		SessionExpiries: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "tailor",
			Subsystem: "api_client",
			Name:      "session_expiries_total",
			Help:      "Sessions cleared because no valid credential could be restored.",
		}),
	}
}
