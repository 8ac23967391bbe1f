package refuel

import (
	"context"

	"github.com/google/uuid"

	"github.com/trip-logbook/backend/internal/application/adapter"
	"github.com/trip-logbook/backend/internal/application/usecase/access"
	"github.com/trip-logbook/backend/internal/domain/entity"
	"github.com/trip-logbook/backend/internal/domain/policy"
)

// GetRefuelInput represents the input for reading a refuel.
type GetRefuelInput struct {
	Principal policy.Principal
	RefuelID  uuid.UUID
}

// GetRefuelOutput represents the output of reading a refuel.
type GetRefuelOutput struct {
	Refuel *entity.Refuel
}

// GetRefuelUseCase handles reading a single refuel.
type GetRefuelUseCase struct {
	refuelRepo adapter.RefuelRepository
	guard      *access.CarGuard
}

// NewGetRefuelUseCase creates a new GetRefuelUseCase instance.
func NewGetRefuelUseCase(refuelRepo adapter.RefuelRepository, guard *access.CarGuard) *GetRefuelUseCase {
	return &GetRefuelUseCase{
		refuelRepo: refuelRepo,
		guard:      guard,
	}
}

// Execute returns the refuel when the principal may view its car.
func (uc *GetRefuelUseCase) Execute(ctx context.Context, input GetRefuelInput) (*GetRefuelOutput, error) {
	refuel, err := loadRefuel(ctx, uc.refuelRepo, uc.guard, input.Principal, policy.ActionView, input.RefuelID)
	if err != nil {
		return nil, err
	}

	return &GetRefuelOutput{
		Refuel: refuel,
	}, nil
}
