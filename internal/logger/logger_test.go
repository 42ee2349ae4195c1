package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/cfb-edge/internal/models"
)

func setupTestLogger() (*logrus.Logger, *bytes.Buffer) {
	log := logrus.New()
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.DebugLevel)
	return log, buf
}

func parseLogOutput(buf *bytes.Buffer) map[string]interface{} {
	var logEntry map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &logEntry)
	if err != nil {
		return nil
	}
	return logEntry
}

func TestNewLoggerLevels(t *testing.T) {
	log := NewLogger("debug", "development")
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	log = NewLogger("error", "development")
	assert.Equal(t, logrus.ErrorLevel, log.GetLevel())
}

func TestNewLoggerInvalidLevelDefaultsToInfo(t *testing.T) {
	log := NewLogger("shouty", "development")
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}

func TestNewLoggerProductionFormatter(t *testing.T) {
	log := NewLogger("info", "production")
	_, ok := log.Formatter.(*logrus.JSONFormatter)
	assert.True(t, ok, "production logger must emit JSON")

	log = NewLogger("info", "development")
	_, ok = log.Formatter.(*logrus.TextFormatter)
	assert.True(t, ok, "development logger must emit text")
}

func TestModelLoggerRun(t *testing.T) {
	log, buf := setupTestLogger()
	ml := NewModelLogger(log)

	out := &models.ModelOutput{
		SpreadPred:    22.14,
		WinProbHome:   0.974,
		ProbHomeCover: 0.986,
		Recommendation: models.Recommendation{
			Side:                 models.SideHome,
			EdgeEVPerDollar:      0.62,
			QuarterKellyFraction: 0.23,
		},
		Metadata: models.Metadata{
			Model: models.ModelInfo{Name: "cfb_spread_model_v2"},
		},
	}
	ml.LogModelRun("req-1", out, 1.5)

	entry := parseLogOutput(buf)
	require.NotNil(t, entry)
	assert.Equal(t, "model", entry["component"])
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "cfb_spread_model_v2", entry["model"])
	assert.Equal(t, "home", entry["side"])
	assert.Equal(t, 22.14, entry["spread_pred"])
}

func TestModelLoggerRejection(t *testing.T) {
	log, buf := setupTestLogger()
	ml := NewModelLogger(log)

	ml.LogRejection("req-2", "validation failed")

	entry := parseLogOutput(buf)
	require.NotNil(t, entry)
	assert.Equal(t, "req-2", entry["request_id"])
	assert.Equal(t, "validation failed", entry["reason"])
	assert.Equal(t, "warning", entry["level"])
}
