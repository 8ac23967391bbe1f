package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/trip-logbook/backend/internal/domain/entity"
	domainerror "github.com/trip-logbook/backend/internal/domain/error"
	"github.com/trip-logbook/backend/internal/integration/queue"
)

type recordingProcessor struct {
	mu       sync.Mutex
	attempts []int
	fn       func(ctx context.Context, task entity.RecomputeTask) error
}

func (p *recordingProcessor) Process(ctx context.Context, task entity.RecomputeTask) error {
	p.mu.Lock()
	p.attempts = append(p.attempts, task.Attempt)
	p.mu.Unlock()
	if p.fn == nil {
		return nil
	}
	return p.fn(ctx, task)
}

func (p *recordingProcessor) calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.attempts)
}

func instantRetry(entity.RecomputeTask) time.Duration { return time.Millisecond }

func transientErr() error {
	return domainerror.NewStatsError(domainerror.ErrCodeStoreUnavailable, "store down", domainerror.ErrStoreUnavailable)
}

// runPool starts the pool, waits for done to hold and returns the final stats.
func runPool(t *testing.T, processor Processor, config Config, tasks int, done func(Stats) bool) Stats {
	t.Helper()
	q := queue.NewMemoryQueue(16)
	config.RetryDelay = instantRetry
	pool := NewPool(q, processor, config)

	for i := 0; i < tasks; i++ {
		if err := q.Enqueue(context.Background(), entity.NewRecomputeTask(uuid.New(), 2024, 3)); err != nil {
			t.Fatalf("failed to enqueue: %v", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		pool.Start(ctx)
		close(stopped)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for !done(pool.Stats()) {
		if time.Now().After(deadline) {
			cancel()
			t.Fatalf("timed out waiting for pool, stats %+v", pool.Stats())
		}
		time.Sleep(5 * time.Millisecond)
	}

	cancel()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("expected pool to stop after cancel")
	}
	return pool.Stats()
}

func TestPool_ProcessesAllTasks(t *testing.T) {
	processor := &recordingProcessor{}
	stats := runPool(t, processor, Config{Concurrency: 3}, 5, func(s Stats) bool { return s.Succeeded == 5 })

	if processor.calls() != 5 {
		t.Errorf("expected 5 calls, got %d", processor.calls())
	}
	if stats.Retried != 0 || stats.Dropped != 0 {
		t.Errorf("expected no retries or drops, got %+v", stats)
	}
}

func TestPool_Retries(t *testing.T) {
	tests := []struct {
		name          string
		maxAttempts   int
		fn            func(ctx context.Context, task entity.RecomputeTask) error
		expectedCalls int
		expected      Stats
	}{
		{
			name:        "transient failure then success",
			maxAttempts: 3,
			fn: func(ctx context.Context, task entity.RecomputeTask) error {
				if task.Attempt < 2 {
					return transientErr()
				}
				return nil
			},
			expectedCalls: 3,
			expected:      Stats{Succeeded: 1, Retried: 2},
		},
		{
			name:        "attempts exhausted",
			maxAttempts: 3,
			fn: func(ctx context.Context, task entity.RecomputeTask) error {
				return transientErr()
			},
			expectedCalls: 3,
			expected:      Stats{Retried: 2, Dropped: 1},
		},
		{
			name:        "permanent failure is not retried",
			maxAttempts: 3,
			fn: func(ctx context.Context, task entity.RecomputeTask) error {
				return domainerror.NewStatsError(domainerror.ErrCodeInvalidPeriod, "bad month", domainerror.ErrInvalidPeriod)
			},
			expectedCalls: 1,
			expected:      Stats{Dropped: 1},
		},
		{
			name:        "plain errors are retried",
			maxAttempts: 2,
			fn: func(ctx context.Context, task entity.RecomputeTask) error {
				return errors.New("boom")
			},
			expectedCalls: 2,
			expected:      Stats{Retried: 1, Dropped: 1},
		},
		{
			name:        "panic counts as failure",
			maxAttempts: 1,
			fn: func(ctx context.Context, task entity.RecomputeTask) error {
				panic("unexpected")
			},
			expectedCalls: 1,
			expected:      Stats{Dropped: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			processor := &recordingProcessor{fn: tt.fn}
			stats := runPool(t, processor, Config{Concurrency: 1, MaxAttempts: tt.maxAttempts}, 1, func(s Stats) bool {
				return s.Succeeded+s.Dropped == 1
			})

			if stats != tt.expected {
				t.Errorf("expected stats %+v, got %+v", tt.expected, stats)
			}
			if processor.calls() != tt.expectedCalls {
				t.Errorf("expected %d calls, got %d", tt.expectedCalls, processor.calls())
			}
			for i, attempt := range processor.attempts {
				if attempt != i {
					t.Errorf("expected call %d to be attempt %d, got %d", i, i, attempt)
				}
			}
		})
	}
}

func TestPool_TaskTimeout(t *testing.T) {
	var seen error
	processor := &recordingProcessor{fn: func(ctx context.Context, task entity.RecomputeTask) error {
		<-ctx.Done()
		seen = ctx.Err()
		return ctx.Err()
	}}

	stats := runPool(t, processor, Config{Concurrency: 1, MaxAttempts: 1, TaskTimeout: 10 * time.Millisecond}, 1,
		func(s Stats) bool { return s.Dropped == 1 })

	if !errors.Is(seen, context.DeadlineExceeded) {
		t.Errorf("expected task context to time out, got %v", seen)
	}
	if stats.Dropped != 1 {
		t.Errorf("expected 1 dropped task, got %+v", stats)
	}
}

func TestPool_StuckTaskDoesNotBlockOthers(t *testing.T) {
	release := make(chan struct{})
	var once sync.Once
	processor := &recordingProcessor{fn: func(ctx context.Context, task entity.RecomputeTask) error {
		blocked := false
		once.Do(func() { blocked = true })
		if blocked {
			select {
			case <-release:
			case <-ctx.Done():
			}
		}
		return nil
	}}
	defer close(release)

	runPool(t, processor, Config{Concurrency: 2, TaskTimeout: time.Minute}, 4,
		func(s Stats) bool { return s.Succeeded >= 3 })
}

func TestNewPool_Defaults(t *testing.T) {
	pool := NewPool(queue.NewMemoryQueue(1), ProcessorFunc(func(context.Context, entity.RecomputeTask) error { return nil }), Config{})

	defaults := DefaultConfig()
	if pool.config.Concurrency != defaults.Concurrency ||
		pool.config.MaxAttempts != defaults.MaxAttempts ||
		pool.config.TaskTimeout != defaults.TaskTimeout {
		t.Errorf("expected defaults, got %+v", pool.config)
	}
}
