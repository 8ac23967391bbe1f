package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/trip-logbook/backend/internal/domain/entity"
)

// CreateRefuelRequest represents the request body for refuel creation.
// Liters and total_cost accept JSON numbers or numeric strings.
type CreateRefuelRequest struct {
	CarID     string          `json:"car_id" binding:"required,uuid"`
	Date      string          `json:"date" binding:"required"`
	Odometer  int64           `json:"odometer"`
	Liters    decimal.Decimal `json:"liters"`
	TotalCost decimal.Decimal `json:"total_cost"`
	Currency  string          `json:"currency,omitempty"`
	FuelType  string          `json:"fuel_type"`
	Station   string          `json:"station"`
}

// UpdateRefuelRequest represents the request body for refuel update.
type UpdateRefuelRequest struct {
	Date      *string          `json:"date,omitempty"`
	Odometer  *int64           `json:"odometer,omitempty"`
	Liters    *decimal.Decimal `json:"liters,omitempty"`
	TotalCost *decimal.Decimal `json:"total_cost,omitempty"`
	Currency  *string          `json:"currency,omitempty"`
	FuelType  *string          `json:"fuel_type,omitempty"`
	Station   *string          `json:"station,omitempty"`
}

// RefuelResponse represents a single refuel in API responses.
type RefuelResponse struct {
	ID        string    `json:"id"`
	CarID     string    `json:"car_id"`
	CreatedBy string    `json:"created_by"`
	Date      string    `json:"date"`
	Odometer  int64     `json:"odometer"`
	Liters    string    `json:"liters"`
	TotalCost string    `json:"total_cost"`
	Currency  string    `json:"currency"`
	FuelType  string    `json:"fuel_type"`
	Station   string    `json:"station"`
	CreatedAt time.Time `json:"created_at"`
}

// RefuelListResponse represents the response for listing refuels.
type RefuelListResponse struct {
	Refuels []RefuelResponse `json:"refuels"`
}

// ToRefuelResponse converts a domain Refuel entity to a RefuelResponse DTO.
func ToRefuelResponse(r *entity.Refuel) RefuelResponse {
	return RefuelResponse{
		ID:        r.ID.String(),
		CarID:     r.CarID.String(),
		CreatedBy: r.CreatedBy.String(),
		Date:      FormatDate(r.Date),
		Odometer:  r.Odometer,
		Liters:    Money(r.Liters),
		TotalCost: Money(r.TotalCost),
		Currency:  string(r.Currency),
		FuelType:  r.FuelType,
		Station:   r.Station,
		CreatedAt: r.CreatedAt,
	}
}

// ToRefuelListResponse converts refuels to a RefuelListResponse DTO.
func ToRefuelListResponse(refuels []*entity.Refuel) RefuelListResponse {
	out := make([]RefuelResponse, len(refuels))
	for i, r := range refuels {
		out[i] = ToRefuelResponse(r)
	}
	return RefuelListResponse{Refuels: out}
}
