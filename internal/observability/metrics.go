package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "airport_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "code", "method"},
	)

	BookingsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "airport_bookings_created_total",
			Help: "Bookings created per airport",
		},
		[]string{"airport"},
	)

	BookingsCancelled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "airport_bookings_cancelled_total",
			Help: "Bookings cancelled per airport",
		},
		[]string{"airport"},
	)

	SeatConflicts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "airport_seat_conflicts_total",
			Help: "Booking attempts rejected because the seat was taken",
		},
		[]string{"airport"},
	)

	FanoutDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "airport_fanout_seconds",
			Help:    "Duration of cross-airport fan-out operations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)
