package scheduler

import (
	"context"
	"fmt"
	"time"

	"SaaSTracker/internal/tracker"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Reloader refreshes the dashboard. tracker.Service satisfies it.
type Reloader interface {
	Reload(ctx context.Context) (tracker.Dashboard, error)
}

// Scheduler manages the periodic reload task.
type Scheduler struct {
	Cron     *cron.Cron
	Reloader Reloader
	Ctx      context.Context
	// Timeout bounds a single scheduled reload; 0 means no bound.
	Timeout time.Duration
	log     zerolog.Logger
}

// NewScheduler creates a new Scheduler. Overlapping runs are skipped, so a
// slow store never queues up reloads.
func NewScheduler(ctx context.Context, r Reloader, timeout time.Duration, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		Reloader: r,
		Ctx:      ctx,
		Timeout:  timeout,
		log:      log.With().Str("component", "scheduler").Logger(),
	}
}

// Register adds the reload task on the given six-field cron spec.
func (s *Scheduler) Register(refreshCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.reloadTask); err != nil {
		return fmt.Errorf("register reload task: %w", err)
	}
	s.log.Info().Str("schedule", refreshCron).Msg("reload task registered")
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Info().Msg("scheduler started")
}

// Stop stops the scheduler and waits for a running reload to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.log.Info().Msg("scheduler stopped")
}

// RunNow reloads immediately, outside the schedule.
func (s *Scheduler) RunNow() error {
	return s.reload()
}

func (s *Scheduler) reloadTask() {
	if err := s.reload(); err != nil {
		s.log.Error().Err(err).Msg("scheduled reload failed")
	}
}

func (s *Scheduler) reload() error {
	ctx := s.Ctx
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	start := time.Now()
	d, err := s.Reloader.Reload(ctx)
	if err != nil {
		return fmt.Errorf("reload: %w", err)
	}
	s.log.Info().
		Str("status", string(d.Status)).
		Str("load_id", d.LoadID).
		Dur("took", time.Since(start)).
		Msg("reload finished")
	return nil
}
