package adaptertest

import (
	"context"
	"sync"
	"time"

	"github.com/trip-logbook/backend/internal/application/adapter"
	"github.com/trip-logbook/backend/internal/domain/entity"
)

// RecordingQueue is a TaskQueue that records every enqueued task. Dequeue is
// not supported; use the memory queue for consumer tests.
type RecordingQueue struct {
	mu    sync.Mutex
	tasks []entity.RecomputeTask
	// Fail, when set, decides per task whether Enqueue fails.
	Fail func(task entity.RecomputeTask) error
}

var _ adapter.TaskQueue = (*RecordingQueue)(nil)

// Enqueue records the task.
func (q *RecordingQueue) Enqueue(ctx context.Context, task entity.RecomputeTask) error {
	if q.Fail != nil {
		if err := q.Fail(task); err != nil {
			return err
		}
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tasks = append(q.tasks, task)
	return nil
}

// Dequeue blocks until ctx is done.
func (q *RecordingQueue) Dequeue(ctx context.Context) (entity.RecomputeTask, error) {
	<-ctx.Done()
	return entity.RecomputeTask{}, ctx.Err()
}

// Close does nothing.
func (q *RecordingQueue) Close() error { return nil }

// Tasks returns a copy of the recorded tasks.
func (q *RecordingQueue) Tasks() []entity.RecomputeTask {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]entity.RecomputeTask(nil), q.tasks...)
}

// FixedClock always returns the same instant.
type FixedClock struct {
	T time.Time
}

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time { return c.T }

// RecordingEmailService records queued emails.
type RecordingEmailService struct {
	mu       sync.Mutex
	Welcome  []adapter.QueueWelcomeInput
	Weekly   []adapter.QueueWeeklySummaryInput
	FailWith error
}

var _ adapter.EmailService = (*RecordingEmailService)(nil)

// QueueWelcomeEmail records a welcome email.
func (s *RecordingEmailService) QueueWelcomeEmail(ctx context.Context, input adapter.QueueWelcomeInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return s.FailWith
	}
	s.Welcome = append(s.Welcome, input)
	return nil
}

// QueueWeeklySummaryEmail records a weekly summary email.
func (s *RecordingEmailService) QueueWeeklySummaryEmail(ctx context.Context, input adapter.QueueWeeklySummaryInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return s.FailWith
	}
	s.Weekly = append(s.Weekly, input)
	return nil
}
