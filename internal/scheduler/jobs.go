package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/wrecklessracks/racks/internal/domain"
	"github.com/wrecklessracks/racks/internal/event"
	"github.com/wrecklessracks/racks/internal/logger"
)

// JackpotSource reads the current progressive pool
type JackpotSource interface {
	Current(ctx context.Context) (*domain.ProgressiveJackpot, error)
}

// JackpotRefreshJob snapshots the pool and publishes it so the gauge and any
// downstream consumers see growth between wins
type JackpotRefreshJob struct {
	jackpots  JackpotSource
	publisher event.Publisher
}

// NewJackpotRefreshJob creates the refresh job
func NewJackpotRefreshJob(jackpots JackpotSource, publisher event.Publisher) *JackpotRefreshJob {
	return &JackpotRefreshJob{jackpots: jackpots, publisher: publisher}
}

func (j *JackpotRefreshJob) Name() string { return JobJackpotRefresh }

func (j *JackpotRefreshJob) Process(ctx context.Context) error {
	pool, err := j.jackpots.Current(ctx)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgJackpotReadFailed, "error", err)
		return fmt.Errorf("failed to refresh jackpot: %w", err)
	}
	logger.FromContext(ctx).Debug(LogMsgJackpotRefreshed, "pool_id", pool.PoolID, "amount", pool.Amount)
	if j.publisher != nil {
		j.publisher.PublishWithRetry(ctx, event.NewJackpotRefreshedEvent(*pool))
	}
	return nil
}

// DailyRolloverJob marks the calendar-day boundary that resets daily bonus eligibility
type DailyRolloverJob struct {
	loc *time.Location
	now func() time.Time
}

// NewDailyRolloverJob creates the rollover job for the bonus timezone
func NewDailyRolloverJob(loc *time.Location) *DailyRolloverJob {
	if loc == nil {
		loc = time.UTC
	}
	return &DailyRolloverJob{loc: loc, now: time.Now}
}

func (j *DailyRolloverJob) Name() string { return JobDailyRollover }

func (j *DailyRolloverJob) Process(ctx context.Context) error {
	today := j.now().In(j.loc)
	logger.FromContext(ctx).Info(LogMsgDailyRollover,
		"date", today.Format(time.DateOnly),
		"timezone", j.loc.String())
	return nil
}
