package accounts

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts summation activity for the /metrics endpoint of whatever
// binary embeds the engine.
type Metrics struct {
	FetchAttempts     prometheus.Counter
	TransientRetries  prometheus.Counter
	PermanentFailures prometheus.Counter
	RunsCompleted     prometheus.Counter
}

// NewMetrics builds the summation counters and registers them on reg. A nil
// reg leaves the counters unregistered, which is what tests and throwaway
// Summers want.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		FetchAttempts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "accountsum_fetch_attempts_total",
			Help: "Store fetch attempts, retried attempts included.",
		}),
		TransientRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "accountsum_transient_retries_total",
			Help: "Fetch attempts that failed transiently and were retried.",
		}),
		PermanentFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "accountsum_permanent_failures_total",
			Help: "Summation runs aborted by a non-retryable fetch failure.",
		}),
		RunsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "accountsum_runs_completed_total",
			Help: "Summation runs that processed every account.",
		}),
	}

	if reg != nil {
		reg.MustRegister(m.FetchAttempts, m.TransientRetries, m.PermanentFailures, m.RunsCompleted)
	}

	return m
}
