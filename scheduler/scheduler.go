// Package scheduler triggers the daily digest run at a fixed local time.
package scheduler

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// dailySpec fires at 08:00 every day in the scheduler's location.
const dailySpec = "0 8 * * *"

// Scheduler runs one recurring job in a configured timezone. Single
// process, in-memory; there is no overlap protection between runs.
type Scheduler struct {
	cron     *cron.Cron
	location *time.Location
}

// New creates a Scheduler in the given timezone.
func New(timezone string) (*Scheduler, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", timezone, err)
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		location: loc,
	}, nil
}

// Location returns the timezone the schedule fires in.
func (s *Scheduler) Location() *time.Location {
	return s.location
}

// Schedule registers the daily 08:00 job. Exactly one job is registered.
func (s *Scheduler) Schedule(task func()) error {
	if _, err := s.cron.AddFunc(dailySpec, task); err != nil {
		return fmt.Errorf("failed to add cron entry: %w", err)
	}
	slog.Info("daily run scheduled", "cron", dailySpec, "timezone", s.location.String())
	return nil
}

// Run starts the scheduler and blocks the calling goroutine until Stop.
func (s *Scheduler) Run() {
	s.cron.Run()
}

// Stop halts the scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// Entries reports how many jobs are registered.
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}
