// Package schedule runs wall-clock jobs, such as the midnight checklist
// rollover, on top of gocron.
package schedule

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

type Daily struct {
	scheduler gocron.Scheduler
	logger    *zap.Logger
}

// NewDaily creates a scheduler whose wall clock is loc. Day keys are UTC, so
// callers normally pass time.UTC.
func NewDaily(loc *time.Location, logger *zap.Logger) (*Daily, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s, err := gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	return &Daily{scheduler: s, logger: logger}, nil
}

// AtMidnight runs fn every day at 00:00:00 in the scheduler's location.
func (d *Daily) AtMidnight(name string, fn func()) error {
	_, err := d.scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(0, 0, 0))),
		gocron.NewTask(func() {
			d.logger.Debug("running scheduled job", zap.String("job", name))
			fn()
		}),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("schedule %s: %w", name, err)
	}
	return nil
}

// NextRun reports when the named job fires next.
func (d *Daily) NextRun(name string) (time.Time, error) {
	for _, job := range d.scheduler.Jobs() {
		if job.Name() == name {
			return job.NextRun()
		}
	}
	return time.Time{}, fmt.Errorf("job %s not scheduled", name)
}

func (d *Daily) Start() {
	d.logger.Debug("starting scheduler")
	d.scheduler.Start()
}

func (d *Daily) Stop() error {
	if err := d.scheduler.Shutdown(); err != nil {
		return fmt.Errorf("stop scheduler: %w", err)
	}
	return nil
}
