package stats

import (
	"context"

	"github.com/google/uuid"

	"github.com/trip-logbook/backend/internal/application/adapter"
	"github.com/trip-logbook/backend/internal/application/usecase/access"
	"github.com/trip-logbook/backend/internal/domain/entity"
	domainerror "github.com/trip-logbook/backend/internal/domain/error"
	"github.com/trip-logbook/backend/internal/domain/policy"
	"github.com/trip-logbook/backend/internal/domain/valueobject"
)

// RequestRecomputeInput represents the input for an on-demand recompute.
type RequestRecomputeInput struct {
	Principal policy.Principal
	CarID     uuid.UUID
	Year      int
	Month     int
}

// RequestRecomputeOutput represents the output of an on-demand recompute.
type RequestRecomputeOutput struct {
	Task entity.RecomputeTask
}

// RequestRecomputeUseCase enqueues a recompute for a car the principal can see.
type RequestRecomputeUseCase struct {
	guard *access.CarGuard
	queue adapter.TaskQueue
}

// NewRequestRecomputeUseCase creates a new RequestRecomputeUseCase instance.
func NewRequestRecomputeUseCase(guard *access.CarGuard, queue adapter.TaskQueue) *RequestRecomputeUseCase {
	return &RequestRecomputeUseCase{
		guard: guard,
		queue: queue,
	}
}

// Execute validates the period and enqueues the task.
func (uc *RequestRecomputeUseCase) Execute(ctx context.Context, input RequestRecomputeInput) (*RequestRecomputeOutput, error) {
	period, err := valueobject.NewMonthPeriod(input.Year, input.Month)
	if err != nil {
		return nil, domainerror.NewStatsError(domainerror.ErrCodeInvalidPeriod, err.Error(), domainerror.ErrInvalidPeriod)
	}

	car, err := uc.guard.Load(ctx, input.Principal, policy.ActionView, policy.KindCar, input.CarID)
	if err != nil {
		return nil, err
	}

	task := entity.NewRecomputeTask(car.ID, period.Year, period.Month)
	if err := uc.queue.Enqueue(ctx, task); err != nil {
		return nil, domainerror.NewStatsError(domainerror.ErrCodeQueueUnavailable, "failed to enqueue recompute", err)
	}

	return &RequestRecomputeOutput{
		Task: task,
	}, nil
}
