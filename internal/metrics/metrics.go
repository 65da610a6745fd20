// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Login outcomes recorded by IncrementLogins.
const (
	LoginSuccess         = "success"
	LoginUnknownUser     = "unknown_user"
	LoginInvalidPassword = "invalid_password"
	LoginError           = "error"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal       *prometheus.CounterVec
	RequestDuration     *prometheus.HistogramVec
	CustomersCreated    prometheus.Counter
	DestinationsCreated prometheus.Counter
	Logins              *prometheus.CounterVec
}

// New creates a private registry and registers every collector on it,
// together with the Go runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)
	return &Metrics{
		registry: reg,
		RequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "travel_crm_http_requests_total",
			Help: "Total number of HTTP requests by route, method and status",
		}, []string{"route", "method", "status"}),
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "travel_crm_http_request_duration_seconds",
			Help:    "HTTP request latency by route and method",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		CustomersCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "travel_crm_customers_created_total",
			Help: "Total number of customers created",
		}),
		DestinationsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "travel_crm_destinations_created_total",
			Help: "Total number of destinations created, including those created with a customer",
		}),
		Logins: f.NewCounterVec(prometheus.CounterOpts{
			Name: "travel_crm_logins_total",
			Help: "Total number of login attempts by outcome",
		}, []string{"outcome"}),
	}
}

// ObserveRequest records one served request.
func (m *Metrics) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	m.RequestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// IncrementCustomersCreated records a new customer and the destinations it was created with.
func (m *Metrics) IncrementCustomersCreated(destinations int) {
	m.CustomersCreated.Inc()
	m.DestinationsCreated.Add(float64(destinations))
}

// IncrementDestinationsCreated increments the destinations created counter by 1.
func (m *Metrics) IncrementDestinationsCreated() {
	m.DestinationsCreated.Inc()
}

// IncrementLogins records a login attempt with the given outcome.
func (m *Metrics) IncrementLogins(outcome string) {
	m.Logins.WithLabelValues(outcome).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
