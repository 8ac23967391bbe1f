package stats

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/trip-logbook/backend/internal/application/adapter"
	"github.com/trip-logbook/backend/internal/domain/entity"
	"github.com/trip-logbook/backend/internal/domain/valueobject"
)

// RecomputeAllInput represents the input for the nightly fan-out.
type RecomputeAllInput struct {
	// At overrides the moment whose month is recomputed. Defaults to now.
	At *time.Time
}

// RecomputeAllOutput represents the output of the fan-out.
type RecomputeAllOutput struct {
	Year     int
	Month    int
	Enqueued int
	Failed   int
}

// RecomputeAllUseCase enqueues one recompute task per car for the current month.
type RecomputeAllUseCase struct {
	carRepo  adapter.CarRepository
	queue    adapter.TaskQueue
	clock    adapter.Clock
	location *time.Location
}

// NewRecomputeAllUseCase creates a new RecomputeAllUseCase instance.
// The current month is resolved in location.
func NewRecomputeAllUseCase(
	carRepo adapter.CarRepository,
	queue adapter.TaskQueue,
	clock adapter.Clock,
	location *time.Location,
) *RecomputeAllUseCase {
	if location == nil {
		location = time.UTC
	}
	return &RecomputeAllUseCase{
		carRepo:  carRepo,
		queue:    queue,
		clock:    clock,
		location: location,
	}
}

// Execute performs the fan-out. A failed enqueue is logged and counted; the
// remaining cars are still enqueued.
func (uc *RecomputeAllUseCase) Execute(ctx context.Context, input RecomputeAllInput) (*RecomputeAllOutput, error) {
	at := uc.clock.Now()
	if input.At != nil {
		at = *input.At
	}
	period := valueobject.MonthPeriodOf(at.In(uc.location))

	carIDs, err := uc.carRepo.ListIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list car ids: %w", err)
	}

	output := &RecomputeAllOutput{Year: period.Year, Month: period.Month}
	for _, carID := range carIDs {
		task := entity.NewRecomputeTask(carID, period.Year, period.Month)
		if err := uc.queue.Enqueue(ctx, task); err != nil {
			output.Failed++
			slog.Error("Failed to enqueue recompute task",
				"car_id", carID,
				"period", period.String(),
				"error", err,
			)
			continue
		}
		output.Enqueued++
	}

	slog.Info("Scheduled monthly recompute",
		"period", period.String(),
		"enqueued", output.Enqueued,
		"failed", output.Failed,
	)

	return output, nil
}
