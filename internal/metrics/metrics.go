// Package metrics provides the centralized Prometheus metrics registry for
// the prediction service.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Rejection reasons used as label values.
const (
	ReasonSchema      = "schema"
	ReasonValidation  = "validation"
	ReasonComputation = "computation"
)

// Counter metrics
var (
	PredictionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "cfb_edge",
		Name:      "predictions_total",
		Help:      "Total number of successful model runs",
	})
	PredictionFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cfb_edge",
		Name:      "prediction_failures_total",
		Help:      "Total number of rejected model requests by reason",
	}, []string{"reason"})
	RecommendationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cfb_edge",
		Name:      "recommendations_total",
		Help:      "Total number of staking recommendations by side",
	}, []string{"side"})
	ProviderRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cfb_edge",
		Name:      "provider_requests_total",
		Help:      "Total number of outbound provider requests by provider and status",
	}, []string{"provider", "status"})
	ProviderCacheHitsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cfb_edge",
		Name:      "provider_cache_hits_total",
		Help:      "Total number of provider cache hits",
	}, []string{"provider"})
)

// Histogram metrics
var (
	ModelRunDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "cfb_edge",
		Name:      "model_run_duration_seconds",
		Help:      "Duration of model runs in seconds",
		Buckets:   prometheus.DefBuckets,
	})
	ProviderRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "cfb_edge",
		Name:      "provider_request_duration_seconds",
		Help:      "Duration of outbound provider requests in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"provider"})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(PredictionsTotal)
		registry.MustRegister(PredictionFailuresTotal)
		registry.MustRegister(RecommendationsTotal)
		registry.MustRegister(ProviderRequestsTotal)
		registry.MustRegister(ProviderCacheHitsTotal)

		registry.MustRegister(ModelRunDuration)
		registry.MustRegister(ProviderRequestDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordPrediction records a successful model run.
func RecordPrediction(side string, durationSeconds float64) {
	PredictionsTotal.Inc()
	RecommendationsTotal.WithLabelValues(side).Inc()
	ModelRunDuration.Observe(durationSeconds)
}

// RecordRejection records a rejected model request.
func RecordRejection(reason string) {
	PredictionFailuresTotal.WithLabelValues(reason).Inc()
}

// RecordProviderRequest records an outbound provider call.
func RecordProviderRequest(provider, status string, durationSeconds float64) {
	ProviderRequestsTotal.WithLabelValues(provider, status).Inc()
	ProviderRequestDuration.WithLabelValues(provider).Observe(durationSeconds)
}

// RecordProviderCacheHit records a provider cache hit.
func RecordProviderCacheHit(provider string) {
	ProviderCacheHitsTotal.WithLabelValues(provider).Inc()
}
