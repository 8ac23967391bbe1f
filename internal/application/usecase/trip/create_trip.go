package trip

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/trip-logbook/backend/internal/application/adapter"
	"github.com/trip-logbook/backend/internal/application/usecase/access"
	"github.com/trip-logbook/backend/internal/application/usecase/stats"
	"github.com/trip-logbook/backend/internal/application/usecase/tag"
	"github.com/trip-logbook/backend/internal/domain/entity"
	"github.com/trip-logbook/backend/internal/domain/policy"
)

// CreateTripInput represents the input for trip creation.
type CreateTripInput struct {
	Principal     policy.Principal
	CarID         uuid.UUID
	StartOdometer int64
	EndOdometer   int64
	StartDate     time.Time
	EndDate       time.Time
	FromCity      string
	ToCity        string
	Notes         string
	TagIDs        []uuid.UUID
}

// CreateTripOutput represents the output of trip creation.
type CreateTripOutput struct {
	Trip *entity.Trip
}

// CreateTripUseCase handles trip creation logic.
type CreateTripUseCase struct {
	tripRepo  adapter.TripRepository
	guard     *access.CarGuard
	selector  *tag.Selector
	refresher *stats.Refresher
}

// NewCreateTripUseCase creates a new CreateTripUseCase instance.
func NewCreateTripUseCase(
	tripRepo adapter.TripRepository,
	guard *access.CarGuard,
	selector *tag.Selector,
	refresher *stats.Refresher,
) *CreateTripUseCase {
	return &CreateTripUseCase{
		tripRepo:  tripRepo,
		guard:     guard,
		selector:  selector,
		refresher: refresher,
	}
}

// Execute performs the trip creation.
func (uc *CreateTripUseCase) Execute(ctx context.Context, input CreateTripInput) (*CreateTripOutput, error) {
	car, err := uc.guard.Load(ctx, input.Principal, policy.ActionAdd, policy.KindTrip, input.CarID)
	if err != nil {
		return nil, err
	}

	trip := entity.NewTrip(car.ID, input.Principal.UserID, input.StartOdometer, input.EndOdometer,
		input.StartDate, input.EndDate, input.FromCity, input.ToCity)
	trip.Notes = input.Notes

	if err := validateTrip(trip); err != nil {
		return nil, err
	}

	tags, err := uc.selector.Resolve(ctx, input.TagIDs)
	if err != nil {
		return nil, err
	}
	trip.Tags = tags

	if err := uc.tripRepo.Create(ctx, trip); err != nil {
		return nil, fmt.Errorf("failed to create trip: %w", err)
	}

	uc.refresher.Touch(ctx, trip.CarID, trip.StartDate)

	return &CreateTripOutput{
		Trip: trip,
	}, nil
}
