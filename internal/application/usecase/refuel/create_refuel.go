package refuel

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/trip-logbook/backend/internal/application/adapter"
	"github.com/trip-logbook/backend/internal/application/usecase/access"
	"github.com/trip-logbook/backend/internal/application/usecase/stats"
	"github.com/trip-logbook/backend/internal/domain/entity"
	"github.com/trip-logbook/backend/internal/domain/policy"
)

// CreateRefuelInput represents the input for refuel creation.
type CreateRefuelInput struct {
	Principal policy.Principal
	CarID     uuid.UUID
	Date      time.Time
	Odometer  int64
	Liters    decimal.Decimal
	TotalCost decimal.Decimal
	Currency  entity.Currency // Optional, defaults to the user's preferred currency
	FuelType  string
	Station   string
}

// CreateRefuelOutput represents the output of refuel creation.
type CreateRefuelOutput struct {
	Refuel *entity.Refuel
}

// CreateRefuelUseCase handles refuel creation logic.
type CreateRefuelUseCase struct {
	refuelRepo adapter.RefuelRepository
	userRepo   adapter.UserRepository
	guard      *access.CarGuard
	refresher  *stats.Refresher
}

// NewCreateRefuelUseCase creates a new CreateRefuelUseCase instance.
func NewCreateRefuelUseCase(
	refuelRepo adapter.RefuelRepository,
	userRepo adapter.UserRepository,
	guard *access.CarGuard,
	refresher *stats.Refresher,
) *CreateRefuelUseCase {
	return &CreateRefuelUseCase{
		refuelRepo: refuelRepo,
		userRepo:   userRepo,
		guard:      guard,
		refresher:  refresher,
	}
}

// Execute performs the refuel creation.
func (uc *CreateRefuelUseCase) Execute(ctx context.Context, input CreateRefuelInput) (*CreateRefuelOutput, error) {
	car, err := uc.guard.Load(ctx, input.Principal, policy.ActionAdd, policy.KindRefuel, input.CarID)
	if err != nil {
		return nil, err
	}

	currency := entity.Currency(strings.ToUpper(strings.TrimSpace(string(input.Currency))))
	if currency == "" {
		user, err := uc.userRepo.FindByID(ctx, input.Principal.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to find user: %w", err)
		}
		currency = user.PreferredCurrency
	}

	refuel := entity.NewRefuel(car.ID, input.Principal.UserID, input.Date, input.Odometer,
		input.Liters, input.TotalCost, currency)
	refuel.FuelType = input.FuelType
	refuel.Station = input.Station

	if err := validateRefuel(refuel); err != nil {
		return nil, err
	}
	if err := checkTimeline(ctx, uc.refuelRepo, refuel); err != nil {
		return nil, err
	}

	if err := uc.refuelRepo.Create(ctx, refuel); err != nil {
		return nil, fmt.Errorf("failed to create refuel: %w", err)
	}

	uc.refresher.Touch(ctx, refuel.CarID, refuel.Date)

	return &CreateRefuelOutput{
		Refuel: refuel,
	}, nil
}
