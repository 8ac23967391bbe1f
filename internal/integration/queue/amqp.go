package queue

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/trip-logbook/backend/internal/application/adapter"
	"github.com/trip-logbook/backend/internal/domain/entity"
)

const (
	DefaultAMQPExchange = "trip-logbook"
	DefaultAMQPQueue    = "recompute-monthly-stats"

	publishTimeout = 5 * time.Second
)

// AMQPQueue is a TaskQueue on a durable RabbitMQ queue bound to a direct
// exchange. Messages are persistent and acknowledged once handed to a consumer;
// retries are republished by the worker pool.
type AMQPQueue struct {
	conn         *amqp091.Connection
	channel      *amqp091.Channel
	exchangeName string
	queueName    string

	consumeOnce sync.Once
	deliveries  <-chan amqp091.Delivery
	consumeErr  error

	mu     sync.Mutex
	closed bool
}

var _ adapter.TaskQueue = (*AMQPQueue)(nil)

// NewAMQPQueue dials url and declares the exchange and queue.
func NewAMQPQueue(url, exchangeName, queueName string) (*AMQPQueue, error) {
	if exchangeName == "" {
		exchangeName = DefaultAMQPExchange
	}
	if queueName == "" {
		queueName = DefaultAMQPQueue
	}

	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	q := &AMQPQueue{
		conn:         conn,
		channel:      channel,
		exchangeName: exchangeName,
		queueName:    queueName,
	}

	if err := q.setup(); err != nil {
		q.Close()
		return nil, fmt.Errorf("failed to set up exchange and queue: %w", err)
	}

	return q, nil
}

func (q *AMQPQueue) setup() error {
	err := q.channel.ExchangeDeclare(
		q.exchangeName, // name
		"direct",       // type
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	_, err = q.channel.QueueDeclare(
		q.queueName, // name
		true,        // durable
		false,       // delete when unused
		false,       // exclusive
		false,       // no-wait
		nil,         // arguments
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	// The routing key is the queue name.
	if err := q.channel.QueueBind(q.queueName, q.queueName, q.exchangeName, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}

	// Deliver one unacknowledged message at a time per consumer.
	if err := q.channel.Qos(1, 0, false); err != nil {
		return fmt.Errorf("set qos: %w", err)
	}
	return nil
}

// Enqueue publishes the task as a persistent message.
func (q *AMQPQueue) Enqueue(ctx context.Context, task entity.RecomputeTask) error {
	if q.isClosed() {
		return errQueueClosed
	}

	body, err := encodeTask(task)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = q.channel.PublishWithContext(
		ctx,
		q.exchangeName, // exchange
		q.queueName,    // routing key
		false,          // mandatory
		false,          // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish task: %w", err)
	}

	slog.DebugContext(ctx, "Published recompute task",
		"car_id", task.CarID,
		"year", task.Year,
		"month", task.Month,
		"attempt", task.Attempt,
	)
	return nil
}

// Dequeue waits for the next delivery. Malformed messages are rejected
// without requeue and skipped.
func (q *AMQPQueue) Dequeue(ctx context.Context) (entity.RecomputeTask, error) {
	q.consumeOnce.Do(func() {
		q.deliveries, q.consumeErr = q.channel.Consume(
			q.queueName, // queue
			"",          // consumer
			false,       // auto-ack
			false,       // exclusive
			false,       // no-local
			false,       // no-wait
			nil,         // args
		)
		if q.consumeErr == nil {
			slog.InfoContext(ctx, "Started consuming recompute tasks", "queue", q.queueName)
		}
	})
	if q.consumeErr != nil {
		return entity.RecomputeTask{}, fmt.Errorf("failed to start consuming: %w", q.consumeErr)
	}

	for {
		select {
		case <-ctx.Done():
			return entity.RecomputeTask{}, ctx.Err()
		case delivery, ok := <-q.deliveries:
			if !ok {
				if q.isClosed() {
					return entity.RecomputeTask{}, errQueueClosed
				}
				return entity.RecomputeTask{}, fmt.Errorf("delivery channel closed")
			}

			task, err := decodeTask(delivery.Body)
			if err != nil {
				slog.ErrorContext(ctx, "Dropping malformed recompute message", "error", err)
				_ = delivery.Nack(false, false)
				continue
			}

			if err := delivery.Ack(false); err != nil {
				return entity.RecomputeTask{}, fmt.Errorf("failed to ack task: %w", err)
			}
			return task, nil
		}
	}
}

func (q *AMQPQueue) isClosed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

// Close closes the channel and the connection.
func (q *AMQPQueue) Close() error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	q.mu.Unlock()

	if q.channel != nil {
		q.channel.Close()
	}
	if q.conn != nil {
		return q.conn.Close()
	}
	return nil
}
