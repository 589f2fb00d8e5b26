package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	RegistrationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobboard_registrations_total",
			Help: "Total number of registration attempts.",
		},
		[]string{"role", "result"},
	)

	LoginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobboard_logins_total",
			Help: "Total number of login attempts.",
		},
		[]string{"result"},
	)

	ModerationActionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobboard_moderation_actions_total",
			Help: "Total number of moderation actions by entity kind.",
		},
		[]string{"kind", "action"},
	)

	ApplicationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobboard_applications_total",
			Help: "Total number of application attempts.",
		},
		[]string{"result"},
	)
)

// Result label values
const (
	ResultSuccess   = "success"
	ResultRejected  = "rejected"
	ResultDuplicate = "duplicate"
	ResultError     = "error"
)

func MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDurationSeconds,
		RegistrationsTotal,
		LoginsTotal,
		ModerationActionsTotal,
		ApplicationsTotal,
	)
}
