package scheduler

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
)

// Daily runs a job once a day at a wall-clock time in a fixed zone. The
// notify daemon uses it to refetch the schedule after midnight.
type Daily struct {
	cron *gocron.Scheduler
}

// NewDaily registers job to run every day at hhmm in loc. Runs never overlap.
func NewDaily(loc *time.Location, hhmm string, job func()) (*Daily, error) {
	cron := gocron.NewScheduler(loc)
	cron.SingletonModeAll()
	if _, err := cron.Every(1).Day().At(hhmm).Do(job); err != nil {
		return nil, fmt.Errorf("failed to schedule daily job at %s: %w", hhmm, err)
	}
	return &Daily{cron: cron}, nil
}

// Start runs the scheduler in the background.
func (d *Daily) Start() {
	d.cron.StartAsync()
}

// Stop halts the scheduler. A job already running is not interrupted.
func (d *Daily) Stop() {
	d.cron.Stop()
}

// NextRun returns when the job will next run.
func (d *Daily) NextRun() time.Time {
	_, t := d.cron.NextRun()
	return t
}
