package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the registration module.
// Tracks acceptance and per-reason rejection counts and submission durations.
type Metrics struct {
	RegistrationsAccepted prometheus.Counter
	RegistrationsRejected *prometheus.CounterVec
	SubmitDuration        prometheus.Histogram
}

// New creates a new Metrics instance with all registration module metrics registered.
func New() *Metrics {
	return &Metrics{
		RegistrationsAccepted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bloodcamp_registrations_accepted_total",
			Help: "Total number of donor registrations accepted",
		}),
		RegistrationsRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "bloodcamp_registrations_rejected_total",
			Help: "Total number of donor registrations rejected, by reason",
		}, []string{"reason"}),
		SubmitDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "bloodcamp_registration_submit_duration_seconds",
			Help:    "Duration of registration submissions (validation through persistence)",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncrementAccepted records a successfully persisted registration.
func (m *Metrics) IncrementAccepted() {
	m.RegistrationsAccepted.Inc()
}

// IncrementRejected records an eligibility or availability rejection.
func (m *Metrics) IncrementRejected(reason string) {
	m.RegistrationsRejected.WithLabelValues(reason).Inc()
}

// ObserveSubmit records the duration of a registration submission.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveSubmit(start time.Time) {
	m.SubmitDuration.Observe(time.Since(start).Seconds())
}
