// Package scheduler re-measures a configured target list on a fixed
// interval and saves each completed run, so the API's history fills up
// without anyone curling the trigger endpoint.
package scheduler

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/shariq818/latencymon/internal/domain"
	"github.com/shariq818/latencymon/internal/repo"
	"github.com/shariq818/latencymon/internal/runner"
)

// RunStarter starts one measurement run. *runner.Serial satisfies it.
type RunStarter interface {
	Run(ctx context.Context, opts runner.Options) (*domain.Run, error)
}

type Scheduler struct {
	Logger   *zap.Logger
	Engine   RunStarter
	Store    repo.RunStore
	Options  runner.Options
	Interval time.Duration
}

func New(logger *zap.Logger, eng RunStarter, store repo.RunStore, opts runner.Options, interval time.Duration) *Scheduler {
	if interval < 0 {
		interval = 0
	}
	return &Scheduler{
		Logger:   logger,
		Engine:   eng,
		Store:    store,
		Options:  opts,
		Interval: interval,
	}
}

// Run starts the loop. It does an immediate pass, then runs each tick.
// Stops when ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	if s.Interval == 0 || len(s.Options.Targets) == 0 {
		// disabled
		s.Logger.Info("scheduler_disabled")
		return
	}
	t := time.NewTicker(s.Interval)
	defer t.Stop()

	// immediate pass
	s.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			s.Logger.Info("scheduler_stopped")
			return
		case <-t.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	run, err := s.Engine.Run(ctx, s.Options)
	if errors.Is(err, runner.ErrBusy) {
		s.Logger.Info("scheduled_run_skipped_busy")
		return
	}
	if err != nil {
		s.Logger.Warn("scheduled_run_error", zap.Error(err))
		return
	}
	if err := s.Store.Save(ctx, run); err != nil {
		s.Logger.Warn("scheduled_run_save_error",
			zap.String("run_id", run.ID),
			zap.Error(err),
		)
		return
	}
	s.Logger.Info("scheduled_run_completed",
		zap.String("run_id", run.ID),
		zap.Int("targets", len(run.Summaries)),
	)
}
