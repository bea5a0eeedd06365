// Package metrics defines the prometheus collectors for the dinner
// coordinator.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Booking outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics bundles the coordinator's collectors.
type Metrics struct {
	RSVPs        prometheus.Counter
	Bookings     *prometheus.CounterVec
	ActiveEvents prometheus.Gauge
}

// New registers the collectors with reg and returns them.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RSVPs: factory.NewCounter(prometheus.CounterOpts{
			Name: "dinner_rsvps_total",
			Help: "Number of RSVP confirmations processed.",
		}),
		Bookings: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dinner_bookings_total",
			Help: "Number of completed booking attempts by outcome.",
		}, []string{"outcome"}),
		ActiveEvents: factory.NewGauge(prometheus.GaugeOpts{
			Name: "dinner_active_events",
			Help: "Number of dinner events still collecting RSVPs.",
		}),
	}
}
