package queue

import (
	"context"
	"sync"

	"github.com/trip-logbook/backend/internal/application/adapter"
	"github.com/trip-logbook/backend/internal/domain/entity"
	domainerror "github.com/trip-logbook/backend/internal/domain/error"
)

// DefaultBufferSize is the capacity of a memory queue created with a non-positive size.
const DefaultBufferSize = 1024

var errQueueClosed = domainerror.ErrQueueClosed

// MemoryQueue is an in-process TaskQueue backed by a buffered channel.
// Tasks are lost when the process exits.
type MemoryQueue struct {
	tasks     chan entity.RecomputeTask
	done      chan struct{}
	closeOnce sync.Once
}

var _ adapter.TaskQueue = (*MemoryQueue)(nil)

// NewMemoryQueue creates a MemoryQueue holding up to size pending tasks.
func NewMemoryQueue(size int) *MemoryQueue {
	if size <= 0 {
		size = DefaultBufferSize
	}
	return &MemoryQueue{
		tasks: make(chan entity.RecomputeTask, size),
		done:  make(chan struct{}),
	}
}

// Enqueue adds a task, blocking while the buffer is full.
func (q *MemoryQueue) Enqueue(ctx context.Context, task entity.RecomputeTask) error {
	select {
	case <-q.done:
		return errQueueClosed
	default:
	}

	select {
	case q.tasks <- task:
		return nil
	case <-q.done:
		return errQueueClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Dequeue blocks until a task is available, the queue is closed or ctx is done.
func (q *MemoryQueue) Dequeue(ctx context.Context) (entity.RecomputeTask, error) {
	select {
	case task := <-q.tasks:
		return task, nil
	case <-q.done:
		return entity.RecomputeTask{}, errQueueClosed
	case <-ctx.Done():
		return entity.RecomputeTask{}, ctx.Err()
	}
}

// Len returns the number of pending tasks.
func (q *MemoryQueue) Len() int {
	return len(q.tasks)
}

// Close wakes every blocked caller. Pending tasks are dropped.
func (q *MemoryQueue) Close() error {
	q.closeOnce.Do(func() { close(q.done) })
	return nil
}
