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

// UpdateRefuelInput represents the input for refuel update. Nil fields are left unchanged.
type UpdateRefuelInput struct {
	Principal policy.Principal
	RefuelID  uuid.UUID
	Date      *time.Time
	Odometer  *int64
	Liters    *decimal.Decimal
	TotalCost *decimal.Decimal
	Currency  *entity.Currency
	FuelType  *string
	Station   *string
}

// UpdateRefuelOutput represents the output of refuel update.
type UpdateRefuelOutput struct {
	Refuel *entity.Refuel
}

// UpdateRefuelUseCase handles refuel update logic.
type UpdateRefuelUseCase struct {
	refuelRepo adapter.RefuelRepository
	guard      *access.CarGuard
	refresher  *stats.Refresher
}

// NewUpdateRefuelUseCase creates a new UpdateRefuelUseCase instance.
func NewUpdateRefuelUseCase(refuelRepo adapter.RefuelRepository, guard *access.CarGuard, refresher *stats.Refresher) *UpdateRefuelUseCase {
	return &UpdateRefuelUseCase{
		refuelRepo: refuelRepo,
		guard:      guard,
		refresher:  refresher,
	}
}

// Execute performs the refuel update. The odometer timeline is re-checked
// against the other refuels of the car.
func (uc *UpdateRefuelUseCase) Execute(ctx context.Context, input UpdateRefuelInput) (*UpdateRefuelOutput, error) {
	refuel, err := loadRefuel(ctx, uc.refuelRepo, uc.guard, input.Principal, policy.ActionChange, input.RefuelID)
	if err != nil {
		return nil, err
	}
	oldDate := refuel.Date

	if input.Date != nil {
		refuel.Date = entity.DateOnly(*input.Date)
	}
	if input.Odometer != nil {
		refuel.Odometer = *input.Odometer
	}
	if input.Liters != nil {
		refuel.Liters = *input.Liters
	}
	if input.TotalCost != nil {
		refuel.TotalCost = *input.TotalCost
	}
	if input.Currency != nil {
		refuel.Currency = entity.Currency(strings.ToUpper(strings.TrimSpace(string(*input.Currency))))
	}
	if input.FuelType != nil {
		refuel.FuelType = *input.FuelType
	}
	if input.Station != nil {
		refuel.Station = *input.Station
	}

	if err := validateRefuel(refuel); err != nil {
		return nil, err
	}
	if err := checkTimeline(ctx, uc.refuelRepo, refuel); err != nil {
		return nil, err
	}

	if err := uc.refuelRepo.Update(ctx, refuel); err != nil {
		return nil, fmt.Errorf("failed to update refuel: %w", err)
	}

	uc.refresher.Touch(ctx, refuel.CarID, oldDate, refuel.Date)

	return &UpdateRefuelOutput{
		Refuel: refuel,
	}, nil
}
