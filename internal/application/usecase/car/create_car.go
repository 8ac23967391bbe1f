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

// CreateCarInput represents the input for car creation.
type CreateCarInput struct {
	Principal policy.Principal
	Brand     string
	Model     string
	Year      int
	Fuel      entity.FuelType
	Gearbox   entity.Gearbox
	VIN       *string // Optional
	PhotoURL  *string // Optional
	TagIDs    []uuid.UUID
}

// CreateCarOutput represents the output of car creation.
type CreateCarOutput struct {
	Car *entity.Car
}

// CreateCarUseCase handles car creation logic.
type CreateCarUseCase struct {
	carRepo  adapter.CarRepository
	selector *tag.Selector
	clock    adapter.Clock
}

// NewCreateCarUseCase creates a new CreateCarUseCase instance.
func NewCreateCarUseCase(carRepo adapter.CarRepository, selector *tag.Selector, clock adapter.Clock) *CreateCarUseCase {
	return &CreateCarUseCase{
		carRepo:  carRepo,
		selector: selector,
		clock:    clock,
	}
}

// Execute performs the car creation. The principal becomes the owner.
func (uc *CreateCarUseCase) Execute(ctx context.Context, input CreateCarInput) (*CreateCarOutput, error) {
	if err := access.Authorize(input.Principal, policy.ActionAdd, policy.CarResource(policy.KindCar, input.Principal.UserID)); err != nil {
		return nil, err
	}

	car := entity.NewCar(input.Principal.UserID, input.Brand, input.Model, input.Year, input.Fuel, input.Gearbox)
	car.VIN = input.VIN
	car.PhotoURL = input.PhotoURL

	if err := validateCar(car, uc.clock.Now()); err != nil {
		return nil, err
	}
	if err := checkDuplicate(ctx, uc.carRepo, car, uuid.Nil); err != nil {
		return nil, err
	}

	tags, err := uc.selector.Resolve(ctx, input.TagIDs)
	if err != nil {
		return nil, err
	}
	car.Tags = tags

	if err := uc.carRepo.Create(ctx, car); err != nil {
		return nil, fmt.Errorf("failed to create car: %w", err)
	}

	return &CreateCarOutput{
		Car: car,
	}, nil
}
