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

// UpdateTripInput represents the input for trip update. Nil fields are left unchanged.
type UpdateTripInput struct {
	Principal     policy.Principal
	TripID        uuid.UUID
	CarID         *uuid.UUID
	StartOdometer *int64
	EndOdometer   *int64
	StartDate     *time.Time
	EndDate       *time.Time
	FromCity      *string
	ToCity        *string
	Notes         *string
	TagIDs        *[]uuid.UUID
}

// UpdateTripOutput represents the output of trip update.
type UpdateTripOutput struct {
	Trip *entity.Trip
}

// UpdateTripUseCase handles trip update logic.
type UpdateTripUseCase struct {
	tripRepo  adapter.TripRepository
	guard     *access.CarGuard
	selector  *tag.Selector
	refresher *stats.Refresher
}

// NewUpdateTripUseCase creates a new UpdateTripUseCase instance.
func NewUpdateTripUseCase(
	tripRepo adapter.TripRepository,
	guard *access.CarGuard,
	selector *tag.Selector,
	refresher *stats.Refresher,
) *UpdateTripUseCase {
	return &UpdateTripUseCase{
		tripRepo:  tripRepo,
		guard:     guard,
		selector:  selector,
		refresher: refresher,
	}
}

// Execute performs the trip update. Moving a trip to another car requires
// change access to both cars.
func (uc *UpdateTripUseCase) Execute(ctx context.Context, input UpdateTripInput) (*UpdateTripOutput, error) {
	trip, err := loadTrip(ctx, uc.tripRepo, uc.guard, input.Principal, policy.ActionChange, input.TripID)
	if err != nil {
		return nil, err
	}
	oldCarID, oldStart := trip.CarID, trip.StartDate

	if input.CarID != nil && *input.CarID != trip.CarID {
		car, err := uc.guard.Load(ctx, input.Principal, policy.ActionChange, policy.KindTrip, *input.CarID)
		if err != nil {
			return nil, err
		}
		trip.CarID = car.ID
	}
	if input.StartOdometer != nil {
		trip.StartOdometer = *input.StartOdometer
	}
	if input.EndOdometer != nil {
		trip.EndOdometer = *input.EndOdometer
	}
	if input.StartDate != nil {
		trip.StartDate = entity.DateOnly(*input.StartDate)
	}
	if input.EndDate != nil {
		trip.EndDate = entity.DateOnly(*input.EndDate)
	}
	if input.FromCity != nil {
		trip.FromCity = *input.FromCity
	}
	if input.ToCity != nil {
		trip.ToCity = *input.ToCity
	}
	if input.Notes != nil {
		trip.Notes = *input.Notes
	}

	if err := validateTrip(trip); err != nil {
		return nil, err
	}

	if input.TagIDs != nil {
		tags, err := uc.selector.Resolve(ctx, *input.TagIDs)
		if err != nil {
			return nil, err
		}
		trip.Tags = tags
	}

	if err := uc.tripRepo.Update(ctx, trip); err != nil {
		return nil, fmt.Errorf("failed to update trip: %w", err)
	}

	if oldCarID != trip.CarID {
		uc.refresher.Touch(ctx, oldCarID, oldStart)
		uc.refresher.Touch(ctx, trip.CarID, trip.StartDate)
	} else {
		uc.refresher.Touch(ctx, trip.CarID, oldStart, trip.StartDate)
	}

	return &UpdateTripOutput{
		Trip: trip,
	}, nil
}
