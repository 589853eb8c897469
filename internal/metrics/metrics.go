package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for login and registration counters.
const (
	OutcomeSuccess     = "success"
	OutcomeFailure     = "failure"
	OutcomeRateLimited = "rate_limited"
	OutcomeInvalid     = "invalid"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// LoginAttempts counts login attempts by outcome (success, failure, rate_limited, invalid).
	LoginAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quizauth_login_attempts_total",
			Help: "Total number of login attempts by outcome",
		},
		[]string{"outcome"},
	)

	// Registrations counts registration attempts by outcome.
	Registrations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quizauth_registrations_total",
			Help: "Total number of registration attempts by outcome",
		},
		[]string{"outcome"},
	)

	// ActiveSessions is the number of live sessions (in-memory).
	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "quizauth_active_sessions",
			Help: "Number of currently active sessions",
		},
	)
)

var initOnce sync.Once

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, RequestTotal, LoginAttempts, Registrations, ActiveSessions)
	})
}

// RecordRequest records duration and count for an HTTP request. Call from middleware.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// RecordLogin increments the login counter for the given outcome.
func RecordLogin(outcome string) {
	LoginAttempts.WithLabelValues(outcome).Inc()
}

// RecordRegistration increments the registration counter for the given outcome.
func RecordRegistration(outcome string) {
	Registrations.WithLabelValues(outcome).Inc()
}

// SetActiveSessions updates the active sessions gauge.
func SetActiveSessions(n int) {
	ActiveSessions.Set(float64(n))
}
