package adapter

import (
	"context"

	"github.com/trip-logbook/backend/internal/domain/entity"
)

// TaskQueue carries recompute tasks from producers to the worker pool.
type TaskQueue interface {
	// Enqueue adds a task to the queue.
	Enqueue(ctx context.Context, task entity.RecomputeTask) error

	// Dequeue blocks until a task is available or ctx is done.
	Dequeue(ctx context.Context) (entity.RecomputeTask, error)

	// Close releases the queue. Blocked Dequeue calls return an error.
	Close() error
}
