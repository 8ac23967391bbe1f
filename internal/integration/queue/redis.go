package queue

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/trip-logbook/backend/internal/application/adapter"
	"github.com/trip-logbook/backend/internal/domain/entity"
)

const (
	// DefaultRedisKey is the list holding pending recompute tasks.
	DefaultRedisKey = "trip-logbook:recompute"

	// redisPollTimeout bounds each BRPOP so cancellation is noticed.
	redisPollTimeout = time.Second
)

// RedisQueue is a TaskQueue backed by a Redis list. Producers LPUSH JSON
// encoded tasks and consumers BRPOP them, which keeps FIFO order.
type RedisQueue struct {
	client *redis.Client
	key    string
	closed atomic.Bool
}

var _ adapter.TaskQueue = (*RedisQueue)(nil)

// NewRedisQueue creates a RedisQueue on key. The client stays owned by the caller.
func NewRedisQueue(client *redis.Client, key string) *RedisQueue {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisQueue{client: client, key: key}
}

// Enqueue pushes the task onto the list.
func (q *RedisQueue) Enqueue(ctx context.Context, task entity.RecomputeTask) error {
	if q.closed.Load() {
		return errQueueClosed
	}

	body, err := encodeTask(task)
	if err != nil {
		return err
	}

	if err := q.client.LPush(ctx, q.key, body).Err(); err != nil {
		return fmt.Errorf("failed to push task: %w", err)
	}
	return nil
}

// Dequeue pops the oldest task, waiting until one arrives.
func (q *RedisQueue) Dequeue(ctx context.Context) (entity.RecomputeTask, error) {
	for {
		if q.closed.Load() || ctx.Err() != nil {
			return entity.RecomputeTask{}, closedErr(ctx, q.closed.Load())
		}

		result, err := q.client.BRPop(ctx, redisPollTimeout, q.key).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				return entity.RecomputeTask{}, ctx.Err()
			}
			return entity.RecomputeTask{}, fmt.Errorf("failed to pop task: %w", err)
		}

		// BRPOP replies with the key followed by the value.
		return decodeTask([]byte(result[1]))
	}
}

// Len returns the number of pending tasks.
func (q *RedisQueue) Len(ctx context.Context) (int64, error) {
	n, err := q.client.LLen(ctx, q.key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to read queue length: %w", err)
	}
	return n, nil
}

// Close stops accepting and returning tasks.
func (q *RedisQueue) Close() error {
	q.closed.Store(true)
	return nil
}
