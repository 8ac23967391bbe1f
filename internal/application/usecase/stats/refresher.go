package stats

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/trip-logbook/backend/internal/application/adapter"
	"github.com/trip-logbook/backend/internal/domain/entity"
	"github.com/trip-logbook/backend/internal/domain/valueobject"
)

// Refresher enqueues recompute tasks after ledger mutations so the monthly
// snapshots catch up without waiting for the nightly run.
type Refresher struct {
	queue adapter.TaskQueue
}

// NewRefresher creates a new Refresher. A nil queue disables refreshing.
func NewRefresher(queue adapter.TaskQueue) *Refresher {
	return &Refresher{queue: queue}
}

// Touch enqueues one task per distinct month among dates for carID.
// Enqueue failures are logged and never returned.
func (r *Refresher) Touch(ctx context.Context, carID uuid.UUID, dates ...time.Time) {
	if r == nil || r.queue == nil {
		return
	}

	seen := make(map[valueobject.MonthPeriod]struct{}, len(dates))
	for _, d := range dates {
		period := valueobject.MonthPeriodOf(d)
		if _, ok := seen[period]; ok {
			continue
		}
		seen[period] = struct{}{}

		task := entity.NewRecomputeTask(carID, period.Year, period.Month)
		if err := r.queue.Enqueue(ctx, task); err != nil {
			slog.Warn("Failed to enqueue recompute task",
				"car_id", carID,
				"period", period.String(),
				"error", err,
			)
		}
	}
}
