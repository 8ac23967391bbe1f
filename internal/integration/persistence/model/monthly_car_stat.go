package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/trip-logbook/backend/internal/domain/entity"
)

// MonthlyCarStatModel represents the monthly_car_stats table in the database.
// (car_id, year, month) is the upsert key.
type MonthlyCarStatModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CarID           uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_monthly_car_stats_key,priority:1"`
	Year            int             `gorm:"not null;uniqueIndex:idx_monthly_car_stats_key,priority:2"`
	Month           int             `gorm:"not null;uniqueIndex:idx_monthly_car_stats_key,priority:3"`
	TripsCount      int64           `gorm:"not null;default:0"`
	TotalDistanceKm int64           `gorm:"not null;default:0"`
	RefuelsCount    int64           `gorm:"not null;default:0"`
	TotalFuelLiters decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalFuelCost   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	UpdatedAt       time.Time       `gorm:"not null"`
}

// TableName returns the table name for the MonthlyCarStatModel.
func (MonthlyCarStatModel) TableName() string {
	return "monthly_car_stats"
}

// ToEntity converts a MonthlyCarStatModel to a domain MonthlyCarStat entity.
func (m *MonthlyCarStatModel) ToEntity() *entity.MonthlyCarStat {
	return &entity.MonthlyCarStat{
		ID:              m.ID,
		CarID:           m.CarID,
		Year:            m.Year,
		Month:           m.Month,
		TripsCount:      m.TripsCount,
		TotalDistanceKm: m.TotalDistanceKm,
		RefuelsCount:    m.RefuelsCount,
		TotalFuelLiters: m.TotalFuelLiters,
		TotalFuelCost:   m.TotalFuelCost,
		UpdatedAt:       m.UpdatedAt,
	}
}

// MonthlyCarStatFromEntity creates a MonthlyCarStatModel from a domain entity.
func MonthlyCarStatFromEntity(stat *entity.MonthlyCarStat) *MonthlyCarStatModel {
	return &MonthlyCarStatModel{
		ID:              stat.ID,
		CarID:           stat.CarID,
		Year:            stat.Year,
		Month:           stat.Month,
		TripsCount:      stat.TripsCount,
		TotalDistanceKm: stat.TotalDistanceKm,
		RefuelsCount:    stat.RefuelsCount,
		TotalFuelLiters: stat.TotalFuelLiters,
		TotalFuelCost:   stat.TotalFuelCost,
		UpdatedAt:       stat.UpdatedAt,
	}
}

// AllModels returns every model migrated by the service.
func AllModels() []any {
	return []any{
		&UserModel{},
		&UserRoleModel{},
		&RefreshTokenModel{},
		&EmailQueueModel{},
		&TagModel{},
		&CarModel{},
		&TripModel{},
		&RefuelModel{},
		&ExpenseModel{},
		&MonthlyCarStatModel{},
	}
}
