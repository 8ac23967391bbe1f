// Package queue implements the recompute task queue over an in-process
// channel, a Redis list, or a RabbitMQ queue.
package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/trip-logbook/backend/internal/application/adapter"
	"github.com/trip-logbook/backend/internal/domain/entity"
)

// Backend names accepted by New.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendAMQP   = "amqp"
)

// Config selects and configures a queue backend.
type Config struct {
	Backend      string
	BufferSize   int
	RedisKey     string
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

// New creates the queue selected by cfg.Backend. redisClient is only used by
// the redis backend.
func New(cfg Config, redisClient *redis.Client) (adapter.TaskQueue, error) {
	switch cfg.Backend {
	case "", BackendMemory:
		return NewMemoryQueue(cfg.BufferSize), nil
	case BackendRedis:
		if redisClient == nil {
			return nil, fmt.Errorf("redis backend requires a redis client")
		}
		return NewRedisQueue(redisClient, cfg.RedisKey), nil
	case BackendAMQP:
		return NewAMQPQueue(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	default:
		return nil, fmt.Errorf("unknown queue backend %q", cfg.Backend)
	}
}

func encodeTask(task entity.RecomputeTask) ([]byte, error) {
	body, err := json.Marshal(task)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal task: %w", err)
	}
	return body, nil
}

func decodeTask(body []byte) (entity.RecomputeTask, error) {
	var task entity.RecomputeTask
	if err := json.Unmarshal(body, &task); err != nil {
		return entity.RecomputeTask{}, fmt.Errorf("failed to unmarshal task: %w", err)
	}
	return task, nil
}

// closedErr reports ErrQueueClosed when the queue was closed, else the context error.
func closedErr(ctx context.Context, closed bool) error {
	if closed {
		return errQueueClosed
	}
	return ctx.Err()
}
