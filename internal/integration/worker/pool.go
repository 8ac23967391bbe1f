// Package worker runs recompute tasks from the task queue on a pool of goroutines.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/trip-logbook/backend/internal/application/adapter"
	"github.com/trip-logbook/backend/internal/application/usecase/stats"
	"github.com/trip-logbook/backend/internal/domain/entity"
	domainerror "github.com/trip-logbook/backend/internal/domain/error"
)

// Processor handles one recompute task.
type Processor interface {
	Process(ctx context.Context, task entity.RecomputeTask) error
}

// ProcessorFunc adapts a function to Processor.
type ProcessorFunc func(ctx context.Context, task entity.RecomputeTask) error

// Process calls f.
func (f ProcessorFunc) Process(ctx context.Context, task entity.RecomputeTask) error {
	return f(ctx, task)
}

// RecomputeProcessor runs tasks through the monthly recompute use case.
type RecomputeProcessor struct {
	recompute *stats.RecomputeMonthUseCase
}

// NewRecomputeProcessor creates a new RecomputeProcessor.
func NewRecomputeProcessor(recompute *stats.RecomputeMonthUseCase) *RecomputeProcessor {
	return &RecomputeProcessor{recompute: recompute}
}

// Process recomputes the task's car-month.
func (p *RecomputeProcessor) Process(ctx context.Context, task entity.RecomputeTask) error {
	output, err := p.recompute.Execute(ctx, stats.RecomputeMonthInput{
		CarID: task.CarID,
		Year:  task.Year,
		Month: task.Month,
	})
	if err != nil {
		return err
	}
	if output.Skipped {
		slog.Info("Skipped recompute for deleted car", "car_id", task.CarID)
	}
	return nil
}

// Config holds the pool settings.
type Config struct {
	Concurrency int
	// RatePerSecond caps task starts across the pool. Zero means unlimited.
	RatePerSecond float64
	TaskTimeout   time.Duration
	MaxAttempts   int
	// RetryDelay overrides the task backoff when set. Used by tests.
	RetryDelay func(task entity.RecomputeTask) time.Duration
}

// DefaultConfig returns the default pool configuration.
func DefaultConfig() Config {
	return Config{
		Concurrency: 4,
		TaskTimeout: 30 * time.Second,
		MaxAttempts: 3,
	}
}

// Stats counts task outcomes since the pool was created.
type Stats struct {
	Succeeded int64
	Retried   int64
	Dropped   int64
}

// Pool dequeues tasks and processes them concurrently. A failed task is
// re-enqueued with its attempt incremented after its backoff delay, until
// MaxAttempts is reached. Permanent failures are dropped immediately.
type Pool struct {
	queue     adapter.TaskQueue
	processor Processor
	limiter   *rate.Limiter
	config    Config

	retries sync.WaitGroup

	succeeded atomic.Int64
	retried   atomic.Int64
	dropped   atomic.Int64
}

// NewPool creates a new Pool. Missing settings fall back to DefaultConfig.
func NewPool(queue adapter.TaskQueue, processor Processor, config Config) *Pool {
	defaults := DefaultConfig()
	if config.Concurrency <= 0 {
		config.Concurrency = defaults.Concurrency
	}
	if config.TaskTimeout <= 0 {
		config.TaskTimeout = defaults.TaskTimeout
	}
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = defaults.MaxAttempts
	}
	if config.RetryDelay == nil {
		config.RetryDelay = entity.RecomputeTask.RetryDelay
	}

	limit := rate.Inf
	if config.RatePerSecond > 0 {
		limit = rate.Limit(config.RatePerSecond)
	}

	return &Pool{
		queue:     queue,
		processor: processor,
		limiter:   rate.NewLimiter(limit, 1),
		config:    config,
	}
}

// Start runs the workers. It blocks until ctx is cancelled or the queue is
// closed, then waits for in-flight tasks and pending retries to settle.
func (p *Pool) Start(ctx context.Context) {
	slog.Info("Recompute worker pool started",
		"concurrency", p.config.Concurrency,
		"rate_per_second", p.config.RatePerSecond,
		"task_timeout", p.config.TaskTimeout,
		"max_attempts", p.config.MaxAttempts,
	)

	var workers sync.WaitGroup
	for i := 0; i < p.config.Concurrency; i++ {
		workers.Add(1)
		go func(id int) {
			defer workers.Done()
			p.run(ctx, id)
		}(i)
	}

	workers.Wait()
	p.retries.Wait()
	slog.Info("Recompute worker pool stopped")
}

// Stats returns the outcome counters.
func (p *Pool) Stats() Stats {
	return Stats{
		Succeeded: p.succeeded.Load(),
		Retried:   p.retried.Load(),
		Dropped:   p.dropped.Load(),
	}
}

func (p *Pool) run(ctx context.Context, id int) {
	for {
		task, err := p.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, domainerror.ErrQueueClosed) {
				return
			}
			slog.Error("Failed to dequeue recompute task", "worker", id, "error", err)
			if !sleep(ctx, time.Second) {
				return
			}
			continue
		}

		if err := p.limiter.Wait(ctx); err != nil {
			// Shutting down with a task in hand: put it back.
			p.requeue(task, "shutdown")
			return
		}

		p.handle(ctx, task)
	}
}

func (p *Pool) handle(ctx context.Context, task entity.RecomputeTask) {
	logger := slog.With(
		"car_id", task.CarID,
		"year", task.Year,
		"month", task.Month,
		"attempt", task.Attempt,
	)

	err := p.process(ctx, task)
	if err == nil {
		p.succeeded.Add(1)
		logger.Debug("Recompute task completed")
		return
	}

	if isPermanent(err) {
		p.dropped.Add(1)
		logger.Warn("Dropping recompute task after permanent failure", "error", err)
		return
	}

	if !task.CanRetry(p.config.MaxAttempts) {
		p.dropped.Add(1)
		logger.Error("Recompute task exhausted its attempts", "error", err)
		return
	}

	delay := p.config.RetryDelay(task)
	logger.Info("Recompute task scheduled for retry", "error", err, "delay", delay)
	p.retried.Add(1)
	p.scheduleRetry(ctx, task.NextAttempt(), delay)
}

// process runs the task under the per-task timeout and turns panics into errors.
func (p *Pool) process(ctx context.Context, task entity.RecomputeTask) (err error) {
	taskCtx, cancel := context.WithTimeout(ctx, p.config.TaskTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("recompute task panicked: %v", r)
		}
	}()

	return p.processor.Process(taskCtx, task)
}

func (p *Pool) scheduleRetry(ctx context.Context, task entity.RecomputeTask, delay time.Duration) {
	p.retries.Add(1)
	go func() {
		defer p.retries.Done()
		if !sleep(ctx, delay) {
			p.requeue(task, "shutdown")
			return
		}
		p.requeue(task, "retry")
	}()
}

// requeue enqueues the task outside of the pool context, which may be done.
func (p *Pool) requeue(task entity.RecomputeTask, reason string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := p.queue.Enqueue(ctx, task); err != nil {
		p.dropped.Add(1)
		slog.Warn("Failed to re-enqueue recompute task",
			"car_id", task.CarID,
			"year", task.Year,
			"month", task.Month,
			"reason", reason,
			"error", err,
		)
	}
}

func isPermanent(err error) bool {
	var statsErr *domainerror.StatsError
	return errors.As(err, &statsErr) && !statsErr.Transient()
}

// sleep waits for d and reports false if ctx ended first.
func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
