package scheduler

import (
	"context"
	"errors"
	"fmt"

	"github.com/MichalMitros/price-tracker/internal/platform"
	"github.com/MichalMitros/price-tracker/internal/platform/models"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

//go:generate mockery --name Refresher --filename refresher.go

// DefaultSchedule refreshes alerts every 30 minutes.
const DefaultSchedule = "*/30 * * * *"

// Refresher refreshes all active alerts.
type Refresher interface {
	RefreshAll(ctx context.Context) (*models.Run, error)
}

// Option is custom configuration of Scheduler.
type Option func(s *Scheduler)

// Scheduler refreshes alerts periodically.
// Ticks which come while previous refresh is still running are skipped.
type Scheduler struct {
	cron      *cron.Cron
	refresher Refresher
	schedule  string
	logger    *zerolog.Logger
}

// NewScheduler returns new Scheduler.
func NewScheduler(refresher Refresher, logger *zerolog.Logger, ops ...Option) *Scheduler {
	s := &Scheduler{
		cron:      cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.PrintfLogger(logger)))),
		refresher: refresher,
		schedule:  DefaultSchedule,
		logger:    logger,
	}

	for _, op := range ops {
		op(s)
	}

	return s
}

// Start schedules refreshing with ctx used by every refresh and starts scheduler in background.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		s.Refresh(ctx)
	})
	if err != nil {
		return fmt.Errorf("can't schedule alerts refreshing: %w", err)
	}

	s.cron.Start()

	s.logger.Info().
		Str("schedule", s.schedule).
		Msg("scheduler started")

	return nil
}

// Stop stops scheduler and waits for running refresh to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()

	s.logger.Info().Msg("scheduler stopped")
}

// Refresh refreshes all alerts once and logs the run result.
func (s *Scheduler) Refresh(ctx context.Context) {
	s.logger.Debug().Msg("alerts refreshing started")

	run, err := s.refresher.RefreshAll(ctx)
	if errors.Is(err, platform.ErrAlreadyRunning) {
		s.logger.Warn().
			Err(err).
			Msg("alerts refreshing skipped")
		return
	}

	event := s.logger.Info()
	if err != nil {
		event = s.logger.Error().Err(err)
	}

	if run != nil {
		event = event.Int("runId", run.ID)
		if run.RefreshedAlerts != nil {
			event = event.
				Int32("refreshedAlerts", *run.RefreshedAlerts).
				Int32("triggeredAlerts", *run.TriggeredAlerts).
				Int32("failedAlerts", *run.FailedAlerts)
		}
	}

	event.Msg("alerts refreshing finished")
}

// WithSchedule sets cron schedule of refreshing.
func WithSchedule(schedule string) Option {
	return func(s *Scheduler) {
		s.schedule = schedule
	}
}
