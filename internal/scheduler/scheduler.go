package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/wrecklessracks/racks/internal/logger"
	"github.com/wrecklessracks/racks/internal/worker"
)

// Scheduler fires cron jobs onto a worker pool so a slow job never stalls the clock
type Scheduler struct {
	cron       *cron.Cron
	workerPool *worker.Pool
}

// New creates a scheduler that evaluates cron specs in loc
func New(pool *worker.Pool, loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{
		cron:       cron.New(cron.WithLocation(loc)),
		workerPool: pool,
	}
}

// Schedule registers a job under a standard five-field cron spec
func (s *Scheduler) Schedule(spec string, job worker.Job) error {
	_, err := s.cron.AddFunc(spec, func() {
		if !s.workerPool.Enqueue(job) {
			logger.Warn(LogMsgJobSkipped, "job", job.Name())
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule %s (%q): %w", job.Name(), spec, err)
	}
	logger.Info(LogMsgJobScheduled, "job", job.Name(), "spec", spec)
	return nil
}

// Start begins firing scheduled jobs
func (s *Scheduler) Start() {
	s.cron.Start()
	logger.Info(LogMsgSchedulerStarted, "jobs", len(s.cron.Entries()))
}

// Stop stops the clock and waits for cron callbacks to return. Jobs already
// handed to the pool finish when the pool stops.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		logger.Info(LogMsgSchedulerStopped)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
