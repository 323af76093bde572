// Package scheduler runs the report pipeline on a cron schedule. Scheduled
// runs are additive to on-demand runs; a failed run is logged and left for
// the next tick, never retried.
package scheduler

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/pulse-works/pulse/internal/pipeline"
	"github.com/pulse-works/pulse/pkg/lifecycle"
)

// Scheduler owns the cron instance driving periodic pipeline runs.
type Scheduler struct {
	cfg    Config
	runner *pipeline.Runner
	cron   *cron.Cron
	logger *slog.Logger
}

// New creates a scheduler for the given runner. A disabled config yields a
// scheduler whose Start registers nothing.
func New(cfg Config, runner *pipeline.Runner, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cfg:    cfg,
		runner: runner,
		cron:   cron.New(),
		logger: logger.With("system", "scheduler"),
	}
}

// Start registers lifecycle hooks that start and stop the cron loop.
func (s *Scheduler) Start(lc *lifecycle.Coordinator) error {
	if !s.cfg.Enabled {
		s.logger.Info("scheduler disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(s.cfg.Schedule, func() {
		s.run(lc.Context())
	}); err != nil {
		return err
	}

	lc.OnStartup(func() {
		s.cron.Start()
		s.logger.Info("scheduler started", "schedule", s.cfg.Schedule)
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		<-s.cron.Stop().Done()
		s.logger.Info("scheduler stopped")
	})

	return nil
}

func (s *Scheduler) run(ctx context.Context) {
	result, err := s.runner.Run(ctx)
	if err != nil {
		s.logger.Error("scheduled run failed", "error", err)
		return
	}

	s.logger.Info("scheduled run complete",
		"report_id", result.Report.ID,
		"articles", result.ArticlesAnalyzed,
	)
}
