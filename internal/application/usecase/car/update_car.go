package car

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/trip-logbook/backend/internal/application/adapter"
	"github.com/trip-logbook/backend/internal/application/usecase/access"
	"github.com/trip-logbook/backend/internal/application/usecase/tag"
	"github.com/trip-logbook/backend/internal/domain/entity"
	"github.com/trip-logbook/backend/internal/domain/policy"
)

// UpdateCarInput represents the input for car update. Nil fields are left unchanged.
type UpdateCarInput struct {
	Principal policy.Principal
	CarID     uuid.UUID
	Brand     *string
	Model     *string
	Year      *int
	Fuel      *entity.FuelType
	Gearbox   *entity.Gearbox
	VIN       *string // Empty string clears the VIN
	PhotoURL  *string // Empty string clears the photo
	TagIDs    *[]uuid.UUID
}

// UpdateCarOutput represents the output of car update.
type UpdateCarOutput struct {
	Car *entity.Car
}

// UpdateCarUseCase handles car update logic.
type UpdateCarUseCase struct {
	carRepo  adapter.CarRepository
	guard    *access.CarGuard
	selector *tag.Selector
	clock    adapter.Clock
}

// NewUpdateCarUseCase creates a new UpdateCarUseCase instance.
func NewUpdateCarUseCase(carRepo adapter.CarRepository, guard *access.CarGuard, selector *tag.Selector, clock adapter.Clock) *UpdateCarUseCase {
	return &UpdateCarUseCase{
		carRepo:  carRepo,
		guard:    guard,
		selector: selector,
		clock:    clock,
	}
}

// Execute performs the car update. The owner never changes.
func (uc *UpdateCarUseCase) Execute(ctx context.Context, input UpdateCarInput) (*UpdateCarOutput, error) {
	car, err := uc.guard.Load(ctx, input.Principal, policy.ActionChange, policy.KindCar, input.CarID)
	if err != nil {
		return nil, err
	}

	if input.Brand != nil {
		car.Brand = *input.Brand
	}
	if input.Model != nil {
		car.Model = *input.Model
	}
	if input.Year != nil {
		car.Year = *input.Year
	}
	if input.Fuel != nil {
		car.Fuel = *input.Fuel
	}
	if input.Gearbox != nil {
		car.Gearbox = *input.Gearbox
	}
	if input.VIN != nil {
		car.VIN = input.VIN
	}
	if input.PhotoURL != nil {
		if *input.PhotoURL == "" {
			car.PhotoURL = nil
		} else {
			car.PhotoURL = input.PhotoURL
		}
	}

	if err := validateCar(car, uc.clock.Now()); err != nil {
		return nil, err
	}
	if err := checkDuplicate(ctx, uc.carRepo, car, car.ID); err != nil {
		return nil, err
	}

	if input.TagIDs != nil {
		tags, err := uc.selector.Resolve(ctx, *input.TagIDs)
		if err != nil {
			return nil, err
		}
		car.Tags = tags
	}

	car.UpdatedAt = uc.clock.Now().UTC()
	if err := uc.carRepo.Update(ctx, car); err != nil {
		return nil, fmt.Errorf("failed to update car: %w", err)
	}

	return &UpdateCarOutput{
		Car: car,
	}, nil
}
