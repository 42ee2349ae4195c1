// Package logger provides model-run logging.
package logger

import (
	"github.com/sirupsen/logrus"

	"github.com/yourusername/cfb-edge/internal/models"
)

// ModelLogger provides dedicated logging for prediction runs.
type ModelLogger struct {
	*logrus.Entry
}

// NewModelLogger creates a new model logger.
func NewModelLogger(baseLogger *logrus.Logger) *ModelLogger {
	return &ModelLogger{
		Entry: baseLogger.WithField("component", "model"),
	}
}

// LogModelRun logs one completed prediction.
func (ml *ModelLogger) LogModelRun(requestID string, out *models.ModelOutput, durationMs float64) {
	ml.WithFields(logrus.Fields{
		"request_id":      requestID,
		"model":           out.Metadata.Model.Name,
		"spread_pred":     out.SpreadPred,
		"win_prob_home":   out.WinProbHome,
		"prob_home_cover": out.ProbHomeCover,
		"r2_reliability":  out.R2Reliability,
		"edge_confidence": out.EdgeConfidence,
		"side":            out.Recommendation.Side,
		"edge_ev":         out.Recommendation.EdgeEVPerDollar,
		"kelly_fraction":  out.Recommendation.QuarterKellyFraction,
		"run_duration_ms": durationMs,
	}).Info("Model run completed")
}

// LogRejection logs a rejected request.
func (ml *ModelLogger) LogRejection(requestID, reason string) {
	ml.WithFields(logrus.Fields{
		"request_id": requestID,
		"reason":     reason,
	}).Warn("Model request rejected")
}
