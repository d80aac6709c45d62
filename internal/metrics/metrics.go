package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AppointmentsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "salon_appointments_created_total",
		Help: "Appointments successfully booked.",
	})

	BookingConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "salon_booking_conflicts_total",
		Help: "Booking attempts rejected because the slot was taken.",
	})

	NotificationsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "salon_notifications_sent_total",
		Help: "Outbound notifications by channel and outcome.",
	}, []string{"channel", "outcome"})
)
