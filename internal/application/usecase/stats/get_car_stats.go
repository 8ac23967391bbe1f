package stats

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/trip-logbook/backend/internal/application/adapter"
	"github.com/trip-logbook/backend/internal/application/usecase/access"
	"github.com/trip-logbook/backend/internal/domain/policy"
)

// GetCarStatsInput represents the input for the all-time statistics of a car.
type GetCarStatsInput struct {
	Principal policy.Principal
	CarID     uuid.UUID
}

// GetCarStatsOutput represents the all-time statistics of a car.
type GetCarStatsOutput struct {
	CarID           uuid.UUID
	CarName         string
	TripsCount      int64
	TotalDistanceKm int64
	RefuelsCount    int64
	TotalFuelLiters decimal.Decimal
	TotalFuelCost   decimal.Decimal
	AvgCostPerLiter decimal.Decimal
}

// GetCarStatsUseCase computes car statistics from the ledger at request time.
type GetCarStatsUseCase struct {
	guard      *access.CarGuard
	tripRepo   adapter.TripRepository
	refuelRepo adapter.RefuelRepository
}

// NewGetCarStatsUseCase creates a new GetCarStatsUseCase instance.
func NewGetCarStatsUseCase(
	guard *access.CarGuard,
	tripRepo adapter.TripRepository,
	refuelRepo adapter.RefuelRepository,
) *GetCarStatsUseCase {
	return &GetCarStatsUseCase{
		guard:      guard,
		tripRepo:   tripRepo,
		refuelRepo: refuelRepo,
	}
}

// Execute computes the statistics over the whole history of the car.
func (uc *GetCarStatsUseCase) Execute(ctx context.Context, input GetCarStatsInput) (*GetCarStatsOutput, error) {
	car, err := uc.guard.Load(ctx, input.Principal, policy.ActionView, policy.KindCar, input.CarID)
	if err != nil {
		return nil, err
	}

	trips, err := uc.tripRepo.List(ctx, adapter.TripFilter{Scope: policy.SystemScope(), CarID: &car.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}

	refuels, err := uc.refuelRepo.List(ctx, adapter.RefuelFilter{Scope: policy.SystemScope(), CarID: &car.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to list refuels: %w", err)
	}

	tripSummary := SummarizeTrips(trips)
	refuelSummary := SummarizeRefuels(refuels)

	return &GetCarStatsOutput{
		CarID:           car.ID,
		CarName:         car.Label(),
		TripsCount:      tripSummary.Count,
		TotalDistanceKm: tripSummary.DistanceKm,
		RefuelsCount:    refuelSummary.Count,
		TotalFuelLiters: refuelSummary.Liters,
		TotalFuelCost:   refuelSummary.Cost,
		AvgCostPerLiter: refuelSummary.AvgCostPerLiter(),
	}, nil
}
