// Package scheduler runs periodic background jobs on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/trip-logbook/backend/internal/application/adapter"
)

// Job is a named unit of periodic work. Spec is a cron expression evaluated
// in the scheduler's timezone.
type Job struct {
	Name string
	Spec string
	Run  func(ctx context.Context) error

	schedule cron.Schedule
}

// Scheduler fires each job on its schedule in one timezone. A job that is
// still running when its next fire time comes is skipped for that tick.
type Scheduler struct {
	jobs     []Job
	clock    adapter.Clock
	location *time.Location
}

// New creates a Scheduler. A nil location means UTC. Every job spec is
// parsed up front.
func New(clock adapter.Clock, location *time.Location, jobs ...Job) (*Scheduler, error) {
	if location == nil {
		location = time.UTC
	}
	for i := range jobs {
		schedule, err := ParseSpec(jobs[i].Spec)
		if err != nil {
			return nil, fmt.Errorf("job %s: %w", jobs[i].Name, err)
		}
		jobs[i].schedule = schedule
	}
	return &Scheduler{
		jobs:     jobs,
		clock:    clock,
		location: location,
	}, nil
}

// Jobs returns the registered jobs.
func (s *Scheduler) Jobs() []Job {
	return s.jobs
}

// NextRun returns when job fires next.
func (s *Scheduler) NextRun(job Job) time.Time {
	return job.schedule.Next(s.clock.Now().In(s.location))
}

// Start runs every job until ctx is cancelled. It blocks until running jobs
// have returned.
func (s *Scheduler) Start(ctx context.Context) {
	logger := slogLogger{}
	c := cron.New(
		cron.WithLocation(s.location),
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)
	for _, job := range s.jobs {
		job := job
		c.Schedule(job.schedule, cron.FuncJob(func() { s.RunNow(ctx, job) }))
		slog.Info("Job scheduled", "job", job.Name, "spec", job.Spec, "next_run", s.NextRun(job))
	}

	c.Start()
	slog.Info("Scheduler started", "jobs", len(s.jobs), "timezone", s.location.String())

	<-ctx.Done()
	<-c.Stop().Done()
	slog.Info("Scheduler stopped")
}

// RunNow runs job once. Errors are logged.
func (s *Scheduler) RunNow(ctx context.Context, job Job) {
	started := s.clock.Now()
	if err := job.Run(ctx); err != nil {
		slog.Error("Job failed", "job", job.Name, "error", err)
		return
	}
	slog.Info("Job completed", "job", job.Name, "duration", s.clock.Now().Sub(started))
}
