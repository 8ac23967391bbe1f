package car

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/trip-logbook/backend/internal/application/adapter"
	"github.com/trip-logbook/backend/internal/application/usecase/access"
	"github.com/trip-logbook/backend/internal/domain/policy"
)

// DeleteCarInput represents the input for car deletion.
type DeleteCarInput struct {
	Principal policy.Principal
	CarID     uuid.UUID
}

// DeleteCarOutput represents the output of car deletion.
type DeleteCarOutput struct {
	Success bool
}

// DeleteCarUseCase handles car deletion logic.
type DeleteCarUseCase struct {
	carRepo adapter.CarRepository
	guard   *access.CarGuard
}

// NewDeleteCarUseCase creates a new DeleteCarUseCase instance.
func NewDeleteCarUseCase(carRepo adapter.CarRepository, guard *access.CarGuard) *DeleteCarUseCase {
	return &DeleteCarUseCase{
		carRepo: carRepo,
		guard:   guard,
	}
}

// Execute deletes the car together with its trips, refuels and monthly stats.
func (uc *DeleteCarUseCase) Execute(ctx context.Context, input DeleteCarInput) (*DeleteCarOutput, error) {
	car, err := uc.guard.Load(ctx, input.Principal, policy.ActionDelete, policy.KindCar, input.CarID)
	if err != nil {
		return nil, err
	}

	if err := uc.carRepo.Delete(ctx, car.ID); err != nil {
		return nil, fmt.Errorf("failed to delete car: %w", err)
	}

	return &DeleteCarOutput{
		Success: true,
	}, nil
}
