package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/cfb-edge/internal/datasource"
)

type stubRefresher struct {
	calls int64
}

func (s *stubRefresher) Refresh(ctx context.Context) ([]datasource.PowerRating, error) {
	atomic.AddInt64(&s.calls, 1)
	return []datasource.PowerRating{{Team: "Georgia", Rating: 30.1}}, nil
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	return log
}

func TestScheduleRatingsRefresh(t *testing.T) {
	s := NewScheduler(&stubRefresher{}, testLogger())
	if err := s.ScheduleRatingsRefresh("0 * * * *"); err != nil {
		t.Fatalf("expected valid cron expression to schedule, got %v", err)
	}
}

func TestScheduleRatingsRefreshInvalidExpression(t *testing.T) {
	s := NewScheduler(&stubRefresher{}, testLogger())
	if err := s.ScheduleRatingsRefresh("whenever"); err == nil {
		t.Fatal("expected error for malformed cron expression")
	}
}

func TestScheduleWhileRunning(t *testing.T) {
	s := NewScheduler(&stubRefresher{}, testLogger())
	if err := s.ScheduleRatingsRefresh("0 * * * *"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	s.Start()
	defer s.Stop()

	if err := s.ScheduleRatingsRefresh("30 * * * *"); err == nil {
		t.Error("expected error scheduling while running")
	}
}

func TestStartStopIdempotent(t *testing.T) {
	s := NewScheduler(&stubRefresher{}, testLogger())
	if err := s.ScheduleRatingsRefresh("@every 1h"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	s.Start()
	s.Start()
	s.Stop()
	s.Stop()
}

func TestScheduledJobRuns(t *testing.T) {
	refresher := &stubRefresher{}
	s := NewScheduler(refresher, testLogger())
	if err := s.ScheduleRatingsRefresh("@every 10ms"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.Stop()

	if atomic.LoadInt64(&refresher.calls) == 0 {
		t.Error("expected at least one scheduled refresh")
	}
}
