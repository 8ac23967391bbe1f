package entity

import (
	"time"

	"github.com/google/uuid"
)

// RecomputeTask asks the aggregator to rebuild the MonthlyCarStat of one car-month.
type RecomputeTask struct {
	CarID      uuid.UUID `json:"car_id"`
	Year       int       `json:"year"`
	Month      int       `json:"month"`
	Attempt    int       `json:"attempt"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

// NewRecomputeTask creates a first-attempt task.
func NewRecomputeTask(carID uuid.UUID, year, month int) RecomputeTask {
	return RecomputeTask{
		CarID:      carID,
		Year:       year,
		Month:      month,
		EnqueuedAt: time.Now().UTC(),
	}
}

// NextAttempt returns the same task marked as its next retry.
func (t RecomputeTask) NextAttempt() RecomputeTask {
	t.Attempt++
	t.EnqueuedAt = time.Now().UTC()
	return t
}

// CanRetry reports whether another attempt is allowed under maxAttempts.
func (t RecomputeTask) CanRetry(maxAttempts int) bool {
	return t.Attempt+1 < maxAttempts
}

// RetryDelay returns the backoff before the next attempt.
// Retry delays: 1s, 5s, 30s
func (t RecomputeTask) RetryDelay() time.Duration {
	delays := []time.Duration{1 * time.Second, 5 * time.Second, 30 * time.Second}
	if t.Attempt < len(delays) {
		return delays[t.Attempt]
	}
	return 30 * time.Second
}
