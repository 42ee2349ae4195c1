package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(ctx context.Context) error { return s.err }

func newTestServer(checks map[string]Pinger) *Server {
	return NewServer(Config{
		ServiceName: "cfb-edge",
		Version:     "test",
		Commit:      "abc123",
		Port:        "0",
		Checks:      checks,
	})
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(nil)

	rec := httptest.NewRecorder()
	s.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "cfb-edge", resp.Service)
	assert.Equal(t, "abc123", resp.Commit)
}

func TestHandleReadyNotReady(t *testing.T) {
	s := newTestServer(nil)

	rec := httptest.NewRecorder()
	s.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandleReadyWithChecks(t *testing.T) {
	s := newTestServer(map[string]Pinger{
		"cfbd":    stubPinger{},
		"weather": stubPinger{},
	})
	s.SetReady(true)

	rec := httptest.NewRecorder()
	s.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp ReadyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "ok", resp.Checks["cfbd"])
	assert.Equal(t, "ok", resp.Checks["weather"])
}

func TestHandleReadyFailingCheck(t *testing.T) {
	s := newTestServer(map[string]Pinger{
		"massey": stubPinger{err: errors.New("connection refused")},
	})
	s.SetReady(true)

	rec := httptest.NewRecorder()
	s.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "connection refused")
}

func TestSetReady(t *testing.T) {
	s := newTestServer(nil)
	assert.False(t, s.IsReady())
	s.SetReady(true)
	assert.True(t, s.IsReady())
	s.SetReady(false)
	assert.False(t, s.IsReady())
}
