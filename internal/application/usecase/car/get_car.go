package car

import (
	"context"

	"github.com/google/uuid"

	"github.com/trip-logbook/backend/internal/application/usecase/access"
	"github.com/trip-logbook/backend/internal/domain/entity"
	"github.com/trip-logbook/backend/internal/domain/policy"
)

// GetCarInput represents the input for reading a car.
type GetCarInput struct {
	Principal policy.Principal
	CarID     uuid.UUID
}

// GetCarOutput represents the output of reading a car.
type GetCarOutput struct {
	Car *entity.Car
}

// GetCarUseCase handles reading a single car.
type GetCarUseCase struct {
	guard *access.CarGuard
}

// NewGetCarUseCase creates a new GetCarUseCase instance.
func NewGetCarUseCase(guard *access.CarGuard) *GetCarUseCase {
	return &GetCarUseCase{
		guard: guard,
	}
}

// Execute returns the car when the principal may view it.
func (uc *GetCarUseCase) Execute(ctx context.Context, input GetCarInput) (*GetCarOutput, error) {
	car, err := uc.guard.Load(ctx, input.Principal, policy.ActionView, policy.KindCar, input.CarID)
	if err != nil {
		return nil, err
	}

	return &GetCarOutput{
		Car: car,
	}, nil
}
