package steps

import (
	"context"
	"fmt"
	"time"
)

const drainTimeout = 10 * time.Second

// theRecomputeWorkersDrainTheQueue runs the worker pool until every task
// queued so far has settled.
func (t *testContext) theRecomputeWorkersDrainTheQueue() error {
	pending, err := t.app.queue.Len(context.Background())
	if err != nil {
		return err
	}
	if pending == 0 {
		return nil
	}

	pool := t.app.injector.Pool
	before := pool.Stats()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		pool.Start(ctx)
	}()
	defer func() {
		cancel()
		<-done
	}()

	deadline := time.Now().Add(drainTimeout)
	for time.Now().Before(deadline) {
		stats := pool.Stats()
		settled := (stats.Succeeded - before.Succeeded) + (stats.Dropped - before.Dropped)
		left, err := t.app.queue.Len(context.Background())
		if err != nil {
			return err
		}
		if settled >= pending && left == 0 {
			return nil
		}
		time.Sleep(50 * time.Millisecond)
	}
	return fmt.Errorf("recompute queue did not drain within %s", drainTimeout)
}

func (t *testContext) theScheduledJobRuns(name string) error {
	scheduler := t.app.injector.Scheduler
	for _, job := range scheduler.Jobs() {
		if job.Name == name {
			return job.Run(context.Background())
		}
	}
	return fmt.Errorf("no scheduled job named %q", name)
}

func (t *testContext) thePendingEmailsAreDelivered() error {
	t.app.injector.EmailWorker.ProcessNow(context.Background())
	return nil
}
