package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/trip-logbook/backend/internal/domain/entity"
)

// RefuelModel represents the refuels table in the database.
type RefuelModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CarID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_refuels_car_date,priority:1"`
	CreatedBy uuid.UUID       `gorm:"type:uuid;not null;index"`
	Date      time.Time       `gorm:"type:date;not null;index:idx_refuels_car_date,priority:2"`
	Odometer  int64           `gorm:"not null"`
	Liters    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	TotalCost decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Currency  string          `gorm:"type:varchar(3);not null"`
	FuelType  string          `gorm:"type:varchar(30)"`
	Station   string          `gorm:"type:varchar(80)"`
	CreatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for the RefuelModel.
func (RefuelModel) TableName() string {
	return "refuels"
}

// ToEntity converts a RefuelModel to a domain Refuel entity.
func (m *RefuelModel) ToEntity() *entity.Refuel {
	return &entity.Refuel{
		ID:        m.ID,
		CarID:     m.CarID,
		CreatedBy: m.CreatedBy,
		Date:      m.Date.UTC(),
		Odometer:  m.Odometer,
		Liters:    m.Liters,
		TotalCost: m.TotalCost,
		Currency:  entity.Currency(m.Currency),
		FuelType:  m.FuelType,
		Station:   m.Station,
		CreatedAt: m.CreatedAt,
	}
}

// RefuelFromEntity creates a RefuelModel from a domain Refuel entity.
func RefuelFromEntity(refuel *entity.Refuel) *RefuelModel {
	return &RefuelModel{
		ID:        refuel.ID,
		CarID:     refuel.CarID,
		CreatedBy: refuel.CreatedBy,
		Date:      entity.DateOnly(refuel.Date),
		Odometer:  refuel.Odometer,
		Liters:    refuel.Liters,
		TotalCost: refuel.TotalCost,
		Currency:  string(refuel.Currency),
		FuelType:  refuel.FuelType,
		Station:   refuel.Station,
		CreatedAt: refuel.CreatedAt,
	}
}
