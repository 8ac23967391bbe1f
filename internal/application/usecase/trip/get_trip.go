package trip

import (
	"context"

	"github.com/google/uuid"

	"github.com/trip-logbook/backend/internal/application/adapter"
	"github.com/trip-logbook/backend/internal/application/usecase/access"
	"github.com/trip-logbook/backend/internal/domain/entity"
	"github.com/trip-logbook/backend/internal/domain/policy"
)

// GetTripInput represents the input for reading a trip.
type GetTripInput struct {
	Principal policy.Principal
	TripID    uuid.UUID
}

// GetTripOutput represents the output of reading a trip.
type GetTripOutput struct {
	Trip *entity.Trip
}

// GetTripUseCase handles reading a single trip.
type GetTripUseCase struct {
	tripRepo adapter.TripRepository
	guard    *access.CarGuard
}

// NewGetTripUseCase creates a new GetTripUseCase instance.
func NewGetTripUseCase(tripRepo adapter.TripRepository, guard *access.CarGuard) *GetTripUseCase {
	return &GetTripUseCase{
		tripRepo: tripRepo,
		guard:    guard,
	}
}

// Execute returns the trip when the principal may view its car.
func (uc *GetTripUseCase) Execute(ctx context.Context, input GetTripInput) (*GetTripOutput, error) {
	trip, err := loadTrip(ctx, uc.tripRepo, uc.guard, input.Principal, policy.ActionView, input.TripID)
	if err != nil {
		return nil, err
	}

	return &GetTripOutput{
		Trip: trip,
	}, nil
}
