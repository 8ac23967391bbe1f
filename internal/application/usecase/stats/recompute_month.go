package stats

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/trip-logbook/backend/internal/application/adapter"
	"github.com/trip-logbook/backend/internal/domain/entity"
	domainerror "github.com/trip-logbook/backend/internal/domain/error"
	"github.com/trip-logbook/backend/internal/domain/policy"
	"github.com/trip-logbook/backend/internal/domain/valueobject"
)

// RecomputeMonthInput represents the input for rebuilding one car-month snapshot.
type RecomputeMonthInput struct {
	CarID uuid.UUID
	Year  int
	Month int
}

// RecomputeMonthOutput represents the output of a recompute.
type RecomputeMonthOutput struct {
	Stat *entity.MonthlyCarStat
	// Skipped is true when the car no longer exists and nothing was written.
	Skipped bool
}

// RecomputeMonthUseCase rebuilds the MonthlyCarStat of one car-month from the ledger.
type RecomputeMonthUseCase struct {
	carRepo    adapter.CarRepository
	tripRepo   adapter.TripRepository
	refuelRepo adapter.RefuelRepository
	statRepo   adapter.MonthlyStatRepository
	clock      adapter.Clock
}

// NewRecomputeMonthUseCase creates a new RecomputeMonthUseCase instance.
func NewRecomputeMonthUseCase(
	carRepo adapter.CarRepository,
	tripRepo adapter.TripRepository,
	refuelRepo adapter.RefuelRepository,
	statRepo adapter.MonthlyStatRepository,
	clock adapter.Clock,
) *RecomputeMonthUseCase {
	return &RecomputeMonthUseCase{
		carRepo:    carRepo,
		tripRepo:   tripRepo,
		refuelRepo: refuelRepo,
		statRepo:   statRepo,
		clock:      clock,
	}
}

// Execute recomputes the snapshot. Every derived field is replaced, so running
// it again over unchanged data writes the same values.
func (uc *RecomputeMonthUseCase) Execute(ctx context.Context, input RecomputeMonthInput) (*RecomputeMonthOutput, error) {
	period, err := valueobject.NewMonthPeriod(input.Year, input.Month)
	if err != nil {
		return nil, domainerror.NewStatsError(domainerror.ErrCodeInvalidPeriod, err.Error(), domainerror.ErrInvalidPeriod)
	}

	car, err := uc.carRepo.FindByID(ctx, input.CarID)
	if err != nil {
		if errors.Is(err, domainerror.ErrCarNotFound) {
			return &RecomputeMonthOutput{Skipped: true}, nil
		}
		return nil, storeUnavailable("failed to find car", err)
	}

	from, to := period.Start(), period.End()
	trips, err := uc.tripRepo.List(ctx, adapter.TripFilter{
		Scope: policy.SystemScope(),
		CarID: &car.ID,
		From:  &from,
		To:    &to,
	})
	if err != nil {
		return nil, storeUnavailable("failed to list trips", err)
	}

	refuels, err := uc.refuelRepo.List(ctx, adapter.RefuelFilter{
		Scope: policy.SystemScope(),
		CarID: &car.ID,
		From:  &from,
		To:    &to,
	})
	if err != nil {
		return nil, storeUnavailable("failed to list refuels", err)
	}

	tripSummary := SummarizeTrips(trips)
	refuelSummary := SummarizeRefuels(refuels)

	stat := entity.NewMonthlyCarStat(car.ID, period.Year, period.Month)
	stat.TripsCount = tripSummary.Count
	stat.TotalDistanceKm = tripSummary.DistanceKm
	stat.RefuelsCount = refuelSummary.Count
	stat.TotalFuelLiters = refuelSummary.Liters
	stat.TotalFuelCost = refuelSummary.Cost
	stat.UpdatedAt = uc.clock.Now().UTC()

	if err := uc.statRepo.Upsert(ctx, stat); err != nil {
		return nil, storeUnavailable("failed to save monthly stat", err)
	}

	return &RecomputeMonthOutput{
		Stat: stat,
	}, nil
}

func storeUnavailable(message string, err error) error {
	return domainerror.NewStatsError(domainerror.ErrCodeStoreUnavailable, message, errors.Join(domainerror.ErrStoreUnavailable, err))
}
