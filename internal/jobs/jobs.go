// Package jobs runs periodic maintenance work on a cron schedule.
package jobs

import (
	"context"
	"fmt"
	"time"

	"dinelt/internal/metrics"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

const (
	storyPurgeJob     = "story_purge"
	defaultJobTimeout = 2 * time.Minute
)

// StoryPurger deletes expired stories.
type StoryPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// Scheduler wraps a cron runner. Overlapping runs of the same job are skipped.
type Scheduler struct {
	cron    *cron.Cron
	timeout time.Duration
	logger  zerolog.Logger
}

// NewScheduler creates a stopped scheduler.
func NewScheduler(logger zerolog.Logger) *Scheduler {
	logger = logger.With().Str("component", "jobs").Logger()
	cl := cronLogger{logger: logger}
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		timeout: defaultJobTimeout,
		logger:  logger,
	}
}

// AddStoryPurge schedules purger with a standard cron spec or descriptor such as "@every 15m".
func (s *Scheduler) AddStoryPurge(spec string, purger StoryPurger) error {
	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		_, _ = PurgeStories(ctx, purger, s.logger)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule %s with %q: %w", storyPurgeJob, spec, err)
	}
	s.logger.Info().Str("job", storyPurgeJob).Str("schedule", spec).Msg("job scheduled")
	return nil
}

// Start runs the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop prevents new runs and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) error {
	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return fmt.Errorf("jobs still running at shutdown: %w", ctx.Err())
	}
}

// PurgeStories runs one purge and records its outcome.
func PurgeStories(ctx context.Context, purger StoryPurger, logger zerolog.Logger) (int64, error) {
	start := time.Now()
	n, err := purger.PurgeExpired(ctx)
	metrics.RecordJobRun(storyPurgeJob, err == nil)
	if err != nil {
		logger.Error().Err(err).Str("job", storyPurgeJob).Msg("job failed")
		return 0, err
	}

	metrics.RecordStoriesPurged(n)
	logger.Info().
		Str("job", storyPurgeJob).
		Int64("deleted", n).
		Dur("duration", time.Since(start)).
		Msg("expired stories purged")
	return n, nil
}

// cronLogger adapts zerolog to cron.Logger.
type cronLogger struct {
	logger zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
