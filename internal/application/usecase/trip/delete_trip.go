package trip

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/trip-logbook/backend/internal/application/adapter"
	"github.com/trip-logbook/backend/internal/application/usecase/access"
	"github.com/trip-logbook/backend/internal/application/usecase/stats"
	"github.com/trip-logbook/backend/internal/domain/policy"
)

// DeleteTripInput represents the input for trip deletion.
type DeleteTripInput struct {
	Principal policy.Principal
	TripID    uuid.UUID
}

// DeleteTripOutput represents the output of trip deletion.
type DeleteTripOutput struct {
	Success bool
}

// DeleteTripUseCase handles trip deletion logic.
type DeleteTripUseCase struct {
	tripRepo  adapter.TripRepository
	guard     *access.CarGuard
	refresher *stats.Refresher
}

// NewDeleteTripUseCase creates a new DeleteTripUseCase instance.
func NewDeleteTripUseCase(tripRepo adapter.TripRepository, guard *access.CarGuard, refresher *stats.Refresher) *DeleteTripUseCase {
	return &DeleteTripUseCase{
		tripRepo:  tripRepo,
		guard:     guard,
		refresher: refresher,
	}
}

// Execute deletes the trip. Expenses linked to it are kept and unlinked.
func (uc *DeleteTripUseCase) Execute(ctx context.Context, input DeleteTripInput) (*DeleteTripOutput, error) {
	trip, err := loadTrip(ctx, uc.tripRepo, uc.guard, input.Principal, policy.ActionDelete, input.TripID)
	if err != nil {
		return nil, err
	}

	if err := uc.tripRepo.Delete(ctx, trip.ID); err != nil {
		return nil, fmt.Errorf("failed to delete trip: %w", err)
	}

	uc.refresher.Touch(ctx, trip.CarID, trip.StartDate)

	return &DeleteTripOutput{
		Success: true,
	}, nil
}
