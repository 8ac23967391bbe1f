package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MonthlyCarStat is the materialized activity summary of one car for one month.
// Rows are derived data: they are only ever replaced as a whole.
type MonthlyCarStat struct {
	ID              uuid.UUID
	CarID           uuid.UUID
	Year            int
	Month           int
	TripsCount      int64
	TotalDistanceKm int64
	RefuelsCount    int64
	TotalFuelLiters decimal.Decimal
	TotalFuelCost   decimal.Decimal
	UpdatedAt       time.Time
}

// NewMonthlyCarStat creates an empty summary for the given key.
func NewMonthlyCarStat(carID uuid.UUID, year, month int) *MonthlyCarStat {
	return &MonthlyCarStat{
		ID:              uuid.New(),
		CarID:           carID,
		Year:            year,
		Month:           month,
		TotalFuelLiters: decimal.Zero,
		TotalFuelCost:   decimal.Zero,
		UpdatedAt:       time.Now().UTC(),
	}
}
