package metrics

import (
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRegistry(t *testing.T) {
	InitRegistry()
	registry := GetRegistry()

	assert.NotNil(t, registry)
	assert.IsType(t, &prometheus.Registry{}, registry)
}

func TestRecordPrediction(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordPrediction("home", 0.002)
		RecordPrediction("no_bet", 0.001)
	})
}

func TestRecordRejection(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordRejection(ReasonSchema)
		RecordRejection(ReasonValidation)
		RecordRejection(ReasonComputation)
	})
}

func TestRecordProviderMetrics(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordProviderRequest("cfbd", "200", 0.05)
		RecordProviderCacheHit("cfbd")
	})
}

func TestHandlerServesExposition(t *testing.T) {
	InitRegistry()
	RecordPrediction("home", 0.002)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	Handler().ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "cfb_edge_predictions_total")
}
