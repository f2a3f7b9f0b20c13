// Package watch re-runs the analysis over an export directory on a cron
// schedule. Each run operates on a fresh snapshot of the directory; the
// most recent run's result supersedes earlier ones.
package watch

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// RunFunc performs one full analysis pass over dir.
type RunFunc func(ctx context.Context, dir string) error

// Watcher schedules repeated analysis runs.
type Watcher struct {
	schedule cron.Schedule
	dir      string
	run      RunFunc
}

// New parses a standard 5-field cron expression (minute hour day-of-month
// month day-of-week), e.g. "0 9 * * 1-5" for weekday mornings.
func New(schedule, dir string, run RunFunc) (*Watcher, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	sched, err := parser.Parse(schedule)
	if err != nil {
		return nil, fmt.Errorf("invalid watch schedule %q: %w", schedule, err)
	}
	return &Watcher{schedule: sched, dir: dir, run: run}, nil
}

// Run blocks, executing the analysis at every scheduled tick until the
// context is cancelled. A failed run is logged and the schedule continues.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		now := time.Now()
		next := w.schedule.Next(now)
		wait := next.Sub(now)
		log.Info().Time("next", next).Dur("in", wait.Round(time.Second)).Msg("Next scheduled analysis")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}

		if err := w.run(ctx, w.dir); err != nil {
			log.Error().Err(err).Str("dir", w.dir).Msg("Scheduled analysis failed")
			continue
		}
		log.Info().Str("dir", w.dir).Msg("Scheduled analysis complete")
	}
}
