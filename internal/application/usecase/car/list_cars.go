package car

import (
	"context"
	"fmt"

	"github.com/trip-logbook/backend/internal/application/adapter"
	"github.com/trip-logbook/backend/internal/domain/entity"
	"github.com/trip-logbook/backend/internal/domain/policy"
)

// ListCarsInput represents the input for listing cars.
type ListCarsInput struct {
	Principal policy.Principal
}

// ListCarsOutput represents the output of listing cars.
type ListCarsOutput struct {
	Cars []*entity.Car
}

// ListCarsUseCase handles listing the cars visible to a principal.
type ListCarsUseCase struct {
	carRepo adapter.CarRepository
}

// NewListCarsUseCase creates a new ListCarsUseCase instance.
func NewListCarsUseCase(carRepo adapter.CarRepository) *ListCarsUseCase {
	return &ListCarsUseCase{
		carRepo: carRepo,
	}
}

// Execute lists the cars inside the principal's scope.
func (uc *ListCarsUseCase) Execute(ctx context.Context, input ListCarsInput) (*ListCarsOutput, error) {
	cars, err := uc.carRepo.List(ctx, policy.ScopeFor(input.Principal))
	if err != nil {
		return nil, fmt.Errorf("failed to list cars: %w", err)
	}

	return &ListCarsOutput{
		Cars: cars,
	}, nil
}
