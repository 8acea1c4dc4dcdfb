package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BookingValidations counts validation results (ok|user_not_found|
	// outside_working_hours|invalid_timezone|invalid_time_range|error).
	BookingValidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scheduler_booking_validations_total",
			Help: "Total number of appointment booking validations by result",
		},
		[]string{"result"},
	)

	// InviteeOutcomes counts per-invitee evaluation outcomes.
	InviteeOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scheduler_invitee_outcomes_total",
			Help: "Invitee evaluation outcomes during booking",
		},
		[]string{"status"},
	)

	AppointmentsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scheduler_appointments_created_total",
			Help: "Appointments persisted",
		},
	)

	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scheduler_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
