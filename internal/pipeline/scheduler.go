package pipeline

import (
	"context"
	"time"
)

// Scheduler triggers one pipeline run per day at a fixed local time. Runs
// never overlap: the next wait starts only after the previous run returns.
type Scheduler struct {
	runner *Runner
	hour   int
	minute int
}

// NewScheduler builds a daily scheduler around runner.
func NewScheduler(runner *Runner, hour, minute int) *Scheduler {
	return &Scheduler{runner: runner, hour: hour, minute: minute}
}

// nextRun returns the next occurrence of the configured wall-clock time
// after now.
func (s *Scheduler) nextRun(now time.Time) time.Time {
	target := time.Date(now.Year(), now.Month(), now.Day(), s.hour, s.minute, 0, 0, now.Location())
	if !target.After(now) {
		target = target.AddDate(0, 0, 1)
	}
	return target
}

// Start blocks, running the pipeline once per scheduled slot until ctx is
// canceled. Run errors are logged by the runner and do not stop the loop;
// retrying belongs to the next scheduled slot.
func (s *Scheduler) Start(ctx context.Context) {
	for {
		target := s.nextRun(time.Now())
		s.runner.logger.Info("Pipeline run scheduled",
			"next_run", target.Format(time.RFC3339),
		)

		timer := time.NewTimer(time.Until(target))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		_, _ = s.runner.Run(ctx)
	}
}
