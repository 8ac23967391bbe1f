package trip

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/trip-logbook/backend/internal/application/adapter"
	"github.com/trip-logbook/backend/internal/application/usecase/access"
	"github.com/trip-logbook/backend/internal/domain/entity"
	domainerror "github.com/trip-logbook/backend/internal/domain/error"
	"github.com/trip-logbook/backend/internal/domain/policy"
	"github.com/trip-logbook/backend/internal/domain/valueobject"
)

// ListTripsInput represents the input for listing trips.
type ListTripsInput struct {
	Principal policy.Principal
	CarID     *uuid.UUID // Optional
	Year      *int       // Optional
	Month     *int       // Optional, requires Year
}

// ListTripsOutput represents the output of listing trips.
type ListTripsOutput struct {
	Trips []*entity.Trip
}

// ListTripsUseCase handles listing the trips visible to a principal.
type ListTripsUseCase struct {
	tripRepo adapter.TripRepository
}

// NewListTripsUseCase creates a new ListTripsUseCase instance.
func NewListTripsUseCase(tripRepo adapter.TripRepository) *ListTripsUseCase {
	return &ListTripsUseCase{
		tripRepo: tripRepo,
	}
}

// Execute lists trips inside the principal's scope. A car outside the scope
// yields an empty list.
func (uc *ListTripsUseCase) Execute(ctx context.Context, input ListTripsInput) (*ListTripsOutput, error) {
	from, to, err := valueobject.FilterWindow(input.Year, input.Month)
	if err != nil {
		return nil, domainerror.NewLedgerValidationError(domainerror.ErrCodeInvalidFilter, "month", err.Error())
	}

	trips, err := uc.tripRepo.List(ctx, adapter.TripFilter{
		Scope: policy.ScopeFor(input.Principal),
		CarID: input.CarID,
		From:  from,
		To:    to,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}

	return &ListTripsOutput{
		Trips: trips,
	}, nil
}

// ListCarTripsInput represents the input for listing the trips of one car.
type ListCarTripsInput struct {
	Principal policy.Principal
	CarID     uuid.UUID
}

// ListCarTripsOutput represents the output of listing the trips of one car.
type ListCarTripsOutput struct {
	Car   *entity.Car
	Trips []*entity.Trip
}

// ListCarTripsUseCase handles listing the trips of a single car.
type ListCarTripsUseCase struct {
	tripRepo adapter.TripRepository
	guard    *access.CarGuard
}

// NewListCarTripsUseCase creates a new ListCarTripsUseCase instance.
func NewListCarTripsUseCase(tripRepo adapter.TripRepository, guard *access.CarGuard) *ListCarTripsUseCase {
	return &ListCarTripsUseCase{
		tripRepo: tripRepo,
		guard:    guard,
	}
}

// Execute lists the trips of the car, newest start date first. Unlike
// ListTrips, a car the principal may not see is reported as not found.
func (uc *ListCarTripsUseCase) Execute(ctx context.Context, input ListCarTripsInput) (*ListCarTripsOutput, error) {
	car, err := uc.guard.Load(ctx, input.Principal, policy.ActionView, policy.KindCar, input.CarID)
	if err != nil {
		return nil, err
	}

	trips, err := uc.tripRepo.List(ctx, adapter.TripFilter{
		Scope: policy.ScopeFor(input.Principal),
		CarID: &car.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}

	return &ListCarTripsOutput{
		Car:   car,
		Trips: trips,
	}, nil
}
