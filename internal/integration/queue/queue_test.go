package queue

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/trip-logbook/backend/internal/application/adapter"
	"github.com/trip-logbook/backend/internal/domain/entity"
	domainerror "github.com/trip-logbook/backend/internal/domain/error"
)

func newRedisClient(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client, server
}

// exerciseQueue runs the behaviour every backend shares.
func exerciseQueue(t *testing.T, q adapter.TaskQueue) {
	t.Helper()
	ctx := context.Background()
	carID := uuid.New()

	first := entity.NewRecomputeTask(carID, 2024, 3)
	second := entity.NewRecomputeTask(carID, 2024, 4).NextAttempt()
	for _, task := range []entity.RecomputeTask{first, second} {
		if err := q.Enqueue(ctx, task); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	}

	got, err := q.Dequeue(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.CarID != carID || got.Month != 3 || got.Attempt != 0 {
		t.Errorf("expected first task, got %+v", got)
	}

	got, err = q.Dequeue(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.Month != 4 || got.Attempt != 1 {
		t.Errorf("expected retried second task, got %+v", got)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := q.Dequeue(cancelled); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled on empty queue, got %v", err)
	}

	if err := q.Close(); err != nil {
		t.Fatalf("expected no error on close, got %v", err)
	}
	if err := q.Enqueue(ctx, first); !errors.Is(err, domainerror.ErrQueueClosed) {
		t.Errorf("expected ErrQueueClosed after close, got %v", err)
	}
	if _, err := q.Dequeue(ctx); !errors.Is(err, domainerror.ErrQueueClosed) {
		t.Errorf("expected ErrQueueClosed from dequeue after close, got %v", err)
	}
}

func TestMemoryQueue(t *testing.T) {
	exerciseQueue(t, NewMemoryQueue(4))
}

func TestRedisQueue(t *testing.T) {
	client, _ := newRedisClient(t)
	exerciseQueue(t, NewRedisQueue(client, ""))
}

func TestMemoryQueue_CloseWakesBlockedDequeue(t *testing.T) {
	q := NewMemoryQueue(1)
	errCh := make(chan error, 1)
	go func() {
		_, err := q.Dequeue(context.Background())
		errCh <- err
	}()

	time.Sleep(10 * time.Millisecond)
	_ = q.Close()

	select {
	case err := <-errCh:
		if !errors.Is(err, domainerror.ErrQueueClosed) {
			t.Errorf("expected ErrQueueClosed, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("expected blocked dequeue to return after close")
	}
}

func TestMemoryQueue_FullBufferHonoursContext(t *testing.T) {
	q := NewMemoryQueue(1)
	task := entity.NewRecomputeTask(uuid.New(), 2024, 1)
	if err := q.Enqueue(context.Background(), task); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := q.Enqueue(ctx, task); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected context.DeadlineExceeded, got %v", err)
	}
	if q.Len() != 1 {
		t.Errorf("expected 1 pending task, got %d", q.Len())
	}
}

func TestRedisQueue_StoresJSON(t *testing.T) {
	client, server := newRedisClient(t)
	q := NewRedisQueue(client, "tasks")
	carID := uuid.New()

	if err := q.Enqueue(context.Background(), entity.NewRecomputeTask(carID, 2024, 2)); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	items, err := server.List("tasks")
	if err != nil {
		t.Fatalf("expected list to exist, got %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	decoded, err := decodeTask([]byte(items[0]))
	if err != nil {
		t.Fatalf("expected valid JSON, got %v", err)
	}
	if decoded.CarID != carID || decoded.Year != 2024 || decoded.Month != 2 {
		t.Errorf("unexpected decoded task %+v", decoded)
	}

	n, _ := q.Len(context.Background())
	if n != 1 {
		t.Errorf("expected length 1, got %d", n)
	}
}

func TestRedisQueue_EnqueueFailure(t *testing.T) {
	client, server := newRedisClient(t)
	q := NewRedisQueue(client, "")
	server.Close()

	if err := q.Enqueue(context.Background(), entity.NewRecomputeTask(uuid.New(), 2024, 1)); err == nil {
		t.Error("expected error when redis is unreachable")
	}
}

func TestNew(t *testing.T) {
	client, _ := newRedisClient(t)

	tests := []struct {
		name        string
		cfg         Config
		client      *redis.Client
		expectError bool
	}{
		{name: "default is memory", cfg: Config{}},
		{name: "memory", cfg: Config{Backend: BackendMemory, BufferSize: 8}},
		{name: "redis", cfg: Config{Backend: BackendRedis}, client: client},
		{name: "redis without client", cfg: Config{Backend: BackendRedis}, expectError: true},
		{name: "unknown", cfg: Config{Backend: "kafka"}, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := New(tt.cfg, tt.client)
			if tt.expectError {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			_ = q.Close()
		})
	}
}
