package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "sindauto_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"path", "method", "status"},
	)

	// ActiveConnections tracks active connections
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sindauto_active_connections",
			Help: "Number of active connections",
		},
	)

	// SlotResolutions counts slot resolutions by resulting status
	SlotResolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sindauto_slot_resolutions_total",
			Help: "Number of slot resolutions by status",
		},
		[]string{"status"},
	)

	// BookingSubmissions counts booking submissions by outcome
	BookingSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sindauto_booking_submissions_total",
			Help: "Number of booking submissions by outcome",
		},
		[]string{"outcome"},
	)

	// Lookups counts appointment lookups by answering source
	Lookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sindauto_lookup_total",
			Help: "Number of appointment lookups by source",
		},
		[]string{"source"},
	)

	// WorkflowSessions tracks live workflow sessions
	WorkflowSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sindauto_workflow_sessions",
			Help: "Number of live booking workflow sessions",
		},
	)
)
