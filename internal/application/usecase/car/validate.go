// Package car contains car-related use cases.
package car

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/trip-logbook/backend/internal/application/adapter"
	"github.com/trip-logbook/backend/internal/domain/entity"
	domainerror "github.com/trip-logbook/backend/internal/domain/error"
)

const (
	// MaxBrandLength is the maximum allowed length for brand names.
	MaxBrandLength = 40
	// MaxModelLength is the maximum allowed length for model names.
	MaxModelLength = 60
)

// validateCar checks the fields of a car about to be saved and normalizes its VIN.
func validateCar(car *entity.Car, now time.Time) error {
	car.Brand = strings.TrimSpace(car.Brand)
	car.Model = strings.TrimSpace(car.Model)

	if car.Brand == "" {
		return domainerror.NewLedgerValidationError(domainerror.ErrCodeMissingLedgerFields, "brand", "brand is required")
	}
	if len(car.Brand) > MaxBrandLength {
		return domainerror.NewLedgerValidationError(domainerror.ErrCodeFieldTooLong, "brand",
			fmt.Sprintf("brand must not exceed %d characters", MaxBrandLength))
	}
	if car.Model == "" {
		return domainerror.NewLedgerValidationError(domainerror.ErrCodeMissingLedgerFields, "model", "model is required")
	}
	if len(car.Model) > MaxModelLength {
		return domainerror.NewLedgerValidationError(domainerror.ErrCodeFieldTooLong, "model",
			fmt.Sprintf("model must not exceed %d characters", MaxModelLength))
	}

	maxYear := entity.MaxCarYear(now)
	if car.Year < entity.MinCarYear || car.Year > maxYear {
		return domainerror.NewLedgerValidationError(domainerror.ErrCodeInvalidCarYear, "year",
			fmt.Sprintf("year must be between %d and %d", entity.MinCarYear, maxYear))
	}
	if !car.Fuel.IsValid() {
		return domainerror.NewLedgerValidationError(domainerror.ErrCodeInvalidChoice, "fuel", "unknown fuel type")
	}
	if !car.Gearbox.IsValid() {
		return domainerror.NewLedgerValidationError(domainerror.ErrCodeInvalidChoice, "gearbox", "unknown gearbox type")
	}

	vin, err := normalizeVIN(car.VIN)
	if err != nil {
		return err
	}
	car.VIN = vin
	return nil
}

// normalizeVIN trims and upper-cases a VIN. Blank VINs become nil.
func normalizeVIN(vin *string) (*string, error) {
	if vin == nil {
		return nil, nil
	}
	v := strings.TrimSpace(*vin)
	if v == "" {
		return nil, nil
	}
	if len(v) != entity.VINLength {
		return nil, domainerror.NewLedgerValidationError(domainerror.ErrCodeInvalidVIN, "vin",
			fmt.Sprintf("VIN must be exactly %d characters", entity.VINLength))
	}
	v = strings.ToUpper(v)
	return &v, nil
}

// checkDuplicate rejects a second car with the same owner, brand, model and year.
func checkDuplicate(ctx context.Context, carRepo adapter.CarRepository, car *entity.Car, excludeID uuid.UUID) error {
	exists, err := carRepo.ExistsDuplicate(ctx, car.OwnerID, car.Brand, car.Model, car.Year, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check car existence: %w", err)
	}
	if exists {
		return &domainerror.LedgerError{
			Code:    domainerror.ErrCodeDuplicateCar,
			Field:   "model",
			Message: "you already have this car",
			Err:     domainerror.ErrDuplicateCar,
		}
	}
	return nil
}
