package service

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the HTTP
// surface and the claim/transition protocols.
type MetricsService struct {
	registry            *prometheus.Registry
	handler             http.Handler
	requestDuration     *prometheus.HistogramVec
	requestTotal        *prometheus.CounterVec
	claimTotal          *prometheus.CounterVec
	transitionConflicts prometheus.Counter
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	claimTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reservation_claims_total",
		Help: "Reservation claim attempts by outcome",
	}, []string{"outcome"})

	transitionConflicts := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "state_transition_conflicts_total",
		Help: "State transitions lost to a concurrent writer",
	})

	registry.MustRegister(requestDuration, requestTotal, claimTotal, transitionConflicts)

	return &MetricsService{
		registry:            registry,
		handler:             promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:     requestDuration,
		requestTotal:        requestTotal,
		claimTotal:          claimTotal,
		transitionConflicts: transitionConflicts,
	}
}

// Handler exposes the Prometheus scrape endpoint.
func (s *MetricsService) Handler() http.Handler {
	return s.handler
}

// ObserveHTTPRequest records a completed HTTP request.
func (s *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	labels := []string{method, path, strconv.Itoa(status)}
	s.requestDuration.WithLabelValues(labels...).Observe(duration.Seconds())
	s.requestTotal.WithLabelValues(labels...).Inc()
}

// RecordClaim counts a reservation claim attempt by outcome.
func (s *MetricsService) RecordClaim(outcome string) {
	s.claimTotal.WithLabelValues(outcome).Inc()
}

// RecordTransitionConflict counts a lost optimistic state write.
func (s *MetricsService) RecordTransitionConflict() {
	s.transitionConflicts.Inc()
}
