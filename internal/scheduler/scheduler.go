// Package scheduler repeats import runs on a fixed interval, for
// unattended operation.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/itjobhub/importer/internal/pipeline"
	"github.com/itjobhub/importer/internal/report"
)

// Scheduler runs the import pipeline on an interval.
type Scheduler struct {
	runner   *pipeline.Runner
	interval time.Duration
	logger   *slog.Logger

	// Report receives the rendered summary after every run. Defaults to the
	// report package renderer printed by the caller; nil disables reporting.
	Report func(string)
}

// New creates a scheduler that triggers an import at the given interval.
func New(runner *pipeline.Runner, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		runner:   runner,
		interval: interval,
		logger:   logger,
	}
}

// Run starts the loop. It runs one immediate import, then ticks on the
// configured interval. It returns nil when ctx is cancelled (graceful
// shutdown).
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info("starting scheduler", "interval", s.interval.String())

	s.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("shutting down scheduler")
			return nil
		case <-time.After(s.interval):
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	stats, err := s.runner.Run(ctx)
	if err != nil {
		s.logger.Error("import run aborted", "error", err)
		return
	}

	totals := stats.Totals()
	s.logger.Info("import run finished",
		"stored", totals.Stored,
		"duplicates", totals.Duplicate,
		"failed", totals.Failed,
		"duration", stats.Duration().Round(time.Millisecond).String(),
	)

	if s.Report != nil {
		s.Report(report.Render(stats))
	}
}
