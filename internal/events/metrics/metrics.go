package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the events module.
// Tracks registration traffic, capacity rejections, and critical path durations.
type Metrics struct {
	RegistrationsConfirmed prometheus.Counter
	RegistrationsCancelled prometheus.Counter
	CapacityRejections     prometheus.Counter
	WaitlistJoins          prometheus.Counter
	WaitlistPromotions     prometheus.Counter
	BadgesExpired          prometheus.Counter
	RegisterDuration       prometheus.Histogram
	GetEventDuration       prometheus.Histogram
}

// New creates a Metrics instance with all events module metrics registered.
func New() *Metrics {
	return &Metrics{
		RegistrationsConfirmed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "lankaconnect_registrations_confirmed_total",
			Help: "Total number of confirmed event registrations",
		}),
		RegistrationsCancelled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "lankaconnect_registrations_cancelled_total",
			Help: "Total number of cancelled event registrations",
		}),
		CapacityRejections: promauto.NewCounter(prometheus.CounterOpts{
			Name: "lankaconnect_capacity_rejections_total",
			Help: "Total number of operations rejected by the capacity check",
		}),
		WaitlistJoins: promauto.NewCounter(prometheus.CounterOpts{
			Name: "lankaconnect_waitlist_joins_total",
			Help: "Total number of users added to event waiting lists",
		}),
		WaitlistPromotions: promauto.NewCounter(prometheus.CounterOpts{
			Name: "lankaconnect_waitlist_promotions_total",
			Help: "Total number of users promoted from waiting lists",
		}),
		BadgesExpired: promauto.NewCounter(prometheus.CounterOpts{
			Name: "lankaconnect_badges_expired_removed_total",
			Help: "Total number of expired badge assignments removed by the sweeper",
		}),
		RegisterDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "lankaconnect_register_duration_seconds",
			Help:    "Duration of registration operations (capacity critical path)",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		GetEventDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "lankaconnect_get_event_duration_seconds",
			Help:    "Duration of event reads",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// ObserveRegister records the duration of a registration operation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveRegister(start time.Time) {
	m.RegisterDuration.Observe(time.Since(start).Seconds())
}

// ObserveGetEvent records the duration of an event read.
func (m *Metrics) ObserveGetEvent(start time.Time) {
	m.GetEventDuration.Observe(time.Since(start).Seconds())
}
