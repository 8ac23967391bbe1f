package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Refuel represents a single fuel purchase for a car.
type Refuel struct {
	ID        uuid.UUID
	CarID     uuid.UUID
	CreatedBy uuid.UUID
	Date      time.Time
	Odometer  int64
	Liters    decimal.Decimal
	TotalCost decimal.Decimal
	Currency  Currency
	FuelType  string
	Station   string
	CreatedAt time.Time
}

// NewRefuel creates a new Refuel.
func NewRefuel(carID, createdBy uuid.UUID, date time.Time, odometer int64, liters, totalCost decimal.Decimal, currency Currency) *Refuel {
	return &Refuel{
		ID:        uuid.New(),
		CarID:     carID,
		CreatedBy: createdBy,
		Date:      DateOnly(date),
		Odometer:  odometer,
		Liters:    liters,
		TotalCost: totalCost,
		Currency:  currency,
		CreatedAt: time.Now().UTC(),
	}
}
