// Package scheduler refreshes provider caches on a cron cadence.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/cfb-edge/internal/datasource"
)

// RatingsRefresher is the slice of the power ratings provider the scheduler
// needs: a cache-replacing refresh.
type RatingsRefresher interface {
	Refresh(ctx context.Context) ([]datasource.PowerRating, error)
}

// Scheduler keeps the power ratings cache warm so request-time lookups stay
// cheap. It never feeds the prediction core directly.
type Scheduler struct {
	cron      *cron.Cron
	ratings   RatingsRefresher
	logger    *logrus.Logger
	mu        sync.RWMutex
	isRunning bool
	jobIDs    []cron.EntryID
}

// NewScheduler creates a new scheduler.
func NewScheduler(ratings RatingsRefresher, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithLocation(time.UTC)),
		ratings: ratings,
		logger:  logger,
		jobIDs:  make([]cron.EntryID, 0),
	}
}

// ScheduleRatingsRefresh registers the periodic ratings refresh job.
func (s *Scheduler) ScheduleRatingsRefresh(cronExpression string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	jobID, err := s.cron.AddFunc(cronExpression, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		ratings, err := s.ratings.Refresh(ctx)
		if err != nil {
			s.logger.WithError(err).Warn("Scheduled ratings refresh failed")
			return
		}
		s.logger.WithField("teams", len(ratings)).Info("Scheduled ratings refresh completed")
	})
	if err != nil {
		return fmt.Errorf("failed to schedule ratings refresh: %w", err)
	}

	s.jobIDs = append(s.jobIDs, jobID)
	return nil
}

// Start begins running scheduled jobs.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isRunning {
		return
	}
	s.cron.Start()
	s.isRunning = true
	s.logger.WithField("jobs", len(s.jobIDs)).Info("Scheduler started")
}

// Stop halts scheduling and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isRunning {
		return
	}
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.isRunning = false
	s.logger.Info("Scheduler stopped")
}
