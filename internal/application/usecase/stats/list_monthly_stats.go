package stats

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/trip-logbook/backend/internal/application/adapter"
	"github.com/trip-logbook/backend/internal/application/usecase/access"
	"github.com/trip-logbook/backend/internal/domain/entity"
	"github.com/trip-logbook/backend/internal/domain/policy"
)

// ListMonthlyStatsInput represents the input for reading materialized snapshots.
type ListMonthlyStatsInput struct {
	Principal policy.Principal
	CarID     uuid.UUID
	Year      *int // Optional
}

// ListMonthlyStatsOutput represents the output of reading materialized snapshots.
type ListMonthlyStatsOutput struct {
	Car   *entity.Car
	Stats []*entity.MonthlyCarStat
}

// ListMonthlyStatsUseCase reads the MonthlyCarStat rows of a car.
type ListMonthlyStatsUseCase struct {
	guard    *access.CarGuard
	statRepo adapter.MonthlyStatRepository
}

// NewListMonthlyStatsUseCase creates a new ListMonthlyStatsUseCase instance.
func NewListMonthlyStatsUseCase(guard *access.CarGuard, statRepo adapter.MonthlyStatRepository) *ListMonthlyStatsUseCase {
	return &ListMonthlyStatsUseCase{
		guard:    guard,
		statRepo: statRepo,
	}
}

// Execute lists the snapshots, newest month first.
func (uc *ListMonthlyStatsUseCase) Execute(ctx context.Context, input ListMonthlyStatsInput) (*ListMonthlyStatsOutput, error) {
	car, err := uc.guard.Load(ctx, input.Principal, policy.ActionView, policy.KindCar, input.CarID)
	if err != nil {
		return nil, err
	}

	stats, err := uc.statRepo.ListByCar(ctx, car.ID, input.Year)
	if err != nil {
		return nil, fmt.Errorf("failed to list monthly stats: %w", err)
	}

	return &ListMonthlyStatsOutput{
		Car:   car,
		Stats: stats,
	}, nil
}
