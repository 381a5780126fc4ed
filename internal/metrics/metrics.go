package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "route", "status"},
	)
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Latency of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Accounts
	Registrations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "portfolio_registrations_total",
			Help: "Total successful registrations",
		},
	)
	Logins = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_logins_total",
			Help: "Login attempts by result",
		},
		[]string{"result"}, // success|failure
	)

	// Contact form
	MessagesReceived = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "portfolio_messages_received_total",
			Help: "Total contact messages delivered to an inbox",
		},
	)
)

// Handler serves the default registry for /metrics.
var Handler = promhttp.Handler
