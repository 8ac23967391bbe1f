package refuel

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/trip-logbook/backend/internal/application/adapter"
	"github.com/trip-logbook/backend/internal/application/usecase/access"
	"github.com/trip-logbook/backend/internal/application/usecase/stats"
	"github.com/trip-logbook/backend/internal/domain/policy"
)

// DeleteRefuelInput represents the input for refuel deletion.
type DeleteRefuelInput struct {
	Principal policy.Principal
	RefuelID  uuid.UUID
}

// DeleteRefuelOutput represents the output of refuel deletion.
type DeleteRefuelOutput struct {
	Success bool
}

// DeleteRefuelUseCase handles refuel deletion logic.
type DeleteRefuelUseCase struct {
	refuelRepo adapter.RefuelRepository
	guard      *access.CarGuard
	refresher  *stats.Refresher
}

// NewDeleteRefuelUseCase creates a new DeleteRefuelUseCase instance.
func NewDeleteRefuelUseCase(refuelRepo adapter.RefuelRepository, guard *access.CarGuard, refresher *stats.Refresher) *DeleteRefuelUseCase {
	return &DeleteRefuelUseCase{
		refuelRepo: refuelRepo,
		guard:      guard,
		refresher:  refresher,
	}
}

// Execute deletes the refuel.
func (uc *DeleteRefuelUseCase) Execute(ctx context.Context, input DeleteRefuelInput) (*DeleteRefuelOutput, error) {
	refuel, err := loadRefuel(ctx, uc.refuelRepo, uc.guard, input.Principal, policy.ActionDelete, input.RefuelID)
	if err != nil {
		return nil, err
	}

	if err := uc.refuelRepo.Delete(ctx, refuel.ID); err != nil {
		return nil, fmt.Errorf("failed to delete refuel: %w", err)
	}

	uc.refresher.Touch(ctx, refuel.CarID, refuel.Date)

	return &DeleteRefuelOutput{
		Success: true,
	}, nil
}
