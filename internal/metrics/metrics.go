package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for the portal
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight *prometheus.GaugeVec

	// Provider Metrics
	ProviderCallsTotal   *prometheus.CounterVec
	ProviderCallDuration *prometheus.HistogramVec

	// Business Metrics
	AdminOperationsTotal *prometheus.CounterVec
	CompensationsTotal   *prometheus.CounterVec
	PartialFailuresTotal *prometheus.CounterVec
	LoginAttemptsTotal   *prometheus.CounterVec
	WheelsCreatedTotal   prometheus.Counter
}

// NewMetricsRegistry registers every metric on reg. Pass prometheus.DefaultRegisterer in
// production and a fresh prometheus.NewRegistry() in tests.
func NewMetricsRegistry(reg prometheus.Registerer) *MetricsRegistry {
	factory := promauto.With(reg)

	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "portal_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "portal_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		// Provider Metrics
		ProviderCallsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_provider_calls_total",
				Help: "Calls to external providers by provider, operation and outcome",
			},
			[]string{"provider", "operation", "outcome"},
		),
		ProviderCallDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "portal_provider_call_duration_seconds",
				Help:    "External provider call latency in seconds",
				Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"provider", "operation"},
		),

		// Business Metrics
		AdminOperationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_admin_operations_total",
				Help: "Admin account operations by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		CompensationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_saga_compensations_total",
				Help: "Compensating actions run by step and outcome",
			},
			[]string{"step", "outcome"},
		),
		PartialFailuresTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_saga_partial_failures_total",
				Help: "Multi-step writes that left residual state behind",
			},
			[]string{"operation"},
		),
		LoginAttemptsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_login_attempts_total",
				Help: "Password gate attempts by outcome",
			},
			[]string{"outcome"},
		),
		WheelsCreatedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "portal_wheels_created_total",
				Help: "Wheels successfully created through the picker proxy",
			},
		),
	}
}
