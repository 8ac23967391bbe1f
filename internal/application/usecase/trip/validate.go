// Package trip contains trip-related use cases.
package trip

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/trip-logbook/backend/internal/application/adapter"
	"github.com/trip-logbook/backend/internal/application/usecase/access"
	"github.com/trip-logbook/backend/internal/domain/entity"
	domainerror "github.com/trip-logbook/backend/internal/domain/error"
	"github.com/trip-logbook/backend/internal/domain/policy"
)

// MaxCityLength is the maximum allowed length for city names.
const MaxCityLength = 60

// validateTrip enforces odometer and date ordering and trims text fields.
// Invalid trips are rejected, never clamped.
func validateTrip(trip *entity.Trip) error {
	trip.FromCity = strings.TrimSpace(trip.FromCity)
	trip.ToCity = strings.TrimSpace(trip.ToCity)
	trip.Notes = strings.TrimSpace(trip.Notes)

	if trip.StartOdometer < 0 {
		return domainerror.NewLedgerValidationError(domainerror.ErrCodeInvalidOdometer, "start_odometer", "odometer must not be negative")
	}
	if trip.EndOdometer < 0 {
		return domainerror.NewLedgerValidationError(domainerror.ErrCodeInvalidOdometer, "end_odometer", "odometer must not be negative")
	}
	if trip.EndOdometer < trip.StartOdometer {
		return domainerror.NewLedgerValidationError(domainerror.ErrCodeInvalidOdometer, "end_odometer", "end odometer must be >= start odometer")
	}
	if trip.StartDate.IsZero() {
		return domainerror.NewLedgerValidationError(domainerror.ErrCodeMissingLedgerFields, "start_date", "start date is required")
	}
	if trip.EndDate.IsZero() {
		return domainerror.NewLedgerValidationError(domainerror.ErrCodeMissingLedgerFields, "end_date", "end date is required")
	}
	if trip.EndDate.Before(trip.StartDate) {
		return domainerror.NewLedgerValidationError(domainerror.ErrCodeInvalidDateRange, "end_date", "end date must be >= start date")
	}

	cities := []struct{ field, value string }{
		{"from_city", trip.FromCity},
		{"to_city", trip.ToCity},
	}
	for _, c := range cities {
		if c.value == "" {
			return domainerror.NewLedgerValidationError(domainerror.ErrCodeMissingLedgerFields, c.field, "city is required")
		}
		if len([]rune(c.value)) > MaxCityLength {
			return domainerror.NewLedgerValidationError(domainerror.ErrCodeFieldTooLong, c.field,
				fmt.Sprintf("city must not exceed %d characters", MaxCityLength))
		}
	}
	return nil
}

// loadTrip finds a trip and checks the principal may perform action on it.
func loadTrip(ctx context.Context, tripRepo adapter.TripRepository, guard *access.CarGuard, p policy.Principal, action policy.Action, tripID uuid.UUID) (*entity.Trip, error) {
	trip, err := tripRepo.FindByID(ctx, tripID)
	if err != nil {
		if errors.Is(err, domainerror.ErrTripNotFound) {
			return nil, access.NotFound(policy.KindTrip)
		}
		return nil, fmt.Errorf("failed to find trip: %w", err)
	}

	if _, err := guard.Load(ctx, p, action, policy.KindTrip, trip.CarID); err != nil {
		return nil, err
	}
	return trip, nil
}
