// Package refuel contains refuel-related use cases.
package refuel

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/trip-logbook/backend/internal/application/adapter"
	"github.com/trip-logbook/backend/internal/application/usecase/access"
	"github.com/trip-logbook/backend/internal/domain/entity"
	domainerror "github.com/trip-logbook/backend/internal/domain/error"
	"github.com/trip-logbook/backend/internal/domain/policy"
)

// MaxStationLength is the maximum allowed length for a station name.
const MaxStationLength = 80

// validateRefuel checks the record on its own, without its car's timeline.
func validateRefuel(refuel *entity.Refuel) error {
	refuel.Station = strings.TrimSpace(refuel.Station)
	refuel.FuelType = strings.TrimSpace(refuel.FuelType)

	if refuel.Date.IsZero() {
		return domainerror.NewLedgerValidationError(domainerror.ErrCodeMissingLedgerFields, "date", "date is required")
	}
	if refuel.Odometer < 0 {
		return domainerror.NewLedgerValidationError(domainerror.ErrCodeInvalidOdometer, "odometer", "odometer must not be negative")
	}
	if err := validateAmount("liters", "liters", refuel.Liters); err != nil {
		return err
	}
	if err := validateAmount("total_cost", "total cost", refuel.TotalCost); err != nil {
		return err
	}
	if !refuel.Currency.IsSupported() {
		return domainerror.NewLedgerValidationError(domainerror.ErrCodeInvalidChoice, "currency",
			fmt.Sprintf("unsupported currency %q", refuel.Currency))
	}
	if len([]rune(refuel.Station)) > MaxStationLength {
		return domainerror.NewLedgerValidationError(domainerror.ErrCodeFieldTooLong, "station",
			fmt.Sprintf("station must not exceed %d characters", MaxStationLength))
	}
	return nil
}

// validateAmount rejects values that are not positive, carry more than two
// decimals or exceed the stored precision.
func validateAmount(field, label string, v decimal.Decimal) error {
	if !entity.HasAmountPrecision(v) {
		return domainerror.NewLedgerValidationError(domainerror.ErrCodeInvalidAmount, field,
			fmt.Sprintf("%s must have at most %d decimal places", label, entity.AmountPlaces))
	}
	if !v.IsPositive() {
		return domainerror.NewLedgerValidationError(domainerror.ErrCodeInvalidAmount, field, label+" must be greater than 0")
	}
	if v.GreaterThan(entity.MaxAmount) {
		return domainerror.NewLedgerValidationError(domainerror.ErrCodeInvalidAmount, field,
			fmt.Sprintf("%s must not exceed %s", label, entity.MaxAmount.StringFixed(entity.AmountPlaces)))
	}
	return nil
}

// checkTimeline rejects an odometer reading that goes backwards relative to
// the car's other refuels. The refuel itself is excluded from the lookup.
func checkTimeline(ctx context.Context, refuelRepo adapter.RefuelRepository, refuel *entity.Refuel) error {
	neighbors, err := refuelRepo.FindNeighbors(ctx, refuel.CarID, refuel.Date, refuel.ID)
	if err != nil {
		return fmt.Errorf("failed to find neighboring refuels: %w", err)
	}

	if prev := neighbors.Previous; prev != nil && refuel.Odometer < prev.Odometer {
		return domainerror.NewLedgerValidationError(domainerror.ErrCodeOdometerTimeline, "odometer",
			fmt.Sprintf("odometer must be at least %d (refuel on %s)", prev.Odometer, prev.Date.Format("2006-01-02")))
	}
	if next := neighbors.Next; next != nil && refuel.Odometer > next.Odometer {
		return domainerror.NewLedgerValidationError(domainerror.ErrCodeOdometerTimeline, "odometer",
			fmt.Sprintf("odometer must be at most %d (refuel on %s)", next.Odometer, next.Date.Format("2006-01-02")))
	}
	return nil
}

// loadRefuel finds a refuel and checks the principal may perform action on it.
func loadRefuel(ctx context.Context, refuelRepo adapter.RefuelRepository, guard *access.CarGuard, p policy.Principal, action policy.Action, refuelID uuid.UUID) (*entity.Refuel, error) {
	refuel, err := refuelRepo.FindByID(ctx, refuelID)
	if err != nil {
		if errors.Is(err, domainerror.ErrRefuelNotFound) {
			return nil, access.NotFound(policy.KindRefuel)
		}
		return nil, fmt.Errorf("failed to find refuel: %w", err)
	}

	if _, err := guard.Load(ctx, p, action, policy.KindRefuel, refuel.CarID); err != nil {
		return nil, err
	}
	return refuel, nil
}
