package dto

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/trip-logbook/backend/internal/application/usecase/stats"
	"github.com/trip-logbook/backend/internal/domain/entity"
)

// CarStatsResponse represents the all-time statistics of a car.
type CarStatsResponse struct {
	CarID           string `json:"car_id"`
	CarName         string `json:"car_name"`
	TripsCount      int64  `json:"trips_count"`
	TotalDistanceKm int64  `json:"total_distance_km"`
	RefuelsCount    int64  `json:"refuels_count"`
	TotalFuelLiters string `json:"total_fuel_liters"`
	TotalFuelCost   string `json:"total_fuel_cost"`
	AvgCostPerLiter string `json:"avg_cost_per_liter"`
}

// ToCarStatsResponse converts car statistics to a CarStatsResponse DTO.
func ToCarStatsResponse(out *stats.GetCarStatsOutput) CarStatsResponse {
	return CarStatsResponse{
		CarID:           out.CarID.String(),
		CarName:         out.CarName,
		TripsCount:      out.TripsCount,
		TotalDistanceKm: out.TotalDistanceKm,
		RefuelsCount:    out.RefuelsCount,
		TotalFuelLiters: Money(out.TotalFuelLiters),
		TotalFuelCost:   Money(out.TotalFuelCost),
		AvgCostPerLiter: out.AvgCostPerLiter.StringFixed(3),
	}
}

// MonthlyStatResponse represents one materialized monthly snapshot.
type MonthlyStatResponse struct {
	CarID           string    `json:"car_id"`
	Year            int       `json:"year"`
	Month           int       `json:"month"`
	TripsCount      int64     `json:"trips_count"`
	TotalDistanceKm int64     `json:"total_distance_km"`
	RefuelsCount    int64     `json:"refuels_count"`
	TotalFuelLiters string    `json:"total_fuel_liters"`
	TotalFuelCost   string    `json:"total_fuel_cost"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// MonthlyStatListResponse represents the snapshots of one car.
type MonthlyStatListResponse struct {
	CarID string                `json:"car_id"`
	Stats []MonthlyStatResponse `json:"stats"`
}

// ToMonthlyStatListResponse converts snapshots to a MonthlyStatListResponse DTO.
func ToMonthlyStatListResponse(car *entity.Car, rows []*entity.MonthlyCarStat) MonthlyStatListResponse {
	out := make([]MonthlyStatResponse, len(rows))
	for i, s := range rows {
		out[i] = MonthlyStatResponse{
			CarID:           s.CarID.String(),
			Year:            s.Year,
			Month:           s.Month,
			TripsCount:      s.TripsCount,
			TotalDistanceKm: s.TotalDistanceKm,
			RefuelsCount:    s.RefuelsCount,
			TotalFuelLiters: Money(s.TotalFuelLiters),
			TotalFuelCost:   Money(s.TotalFuelCost),
			UpdatedAt:       s.UpdatedAt,
		}
	}
	return MonthlyStatListResponse{CarID: car.ID.String(), Stats: out}
}

// RecomputeRequest represents the request body for an on-demand recompute.
type RecomputeRequest struct {
	Year  int `json:"year" binding:"required"`
	Month int `json:"month" binding:"required"`
}

// RecomputeResponse acknowledges a queued recompute.
type RecomputeResponse struct {
	CarID  string `json:"car_id"`
	Year   int    `json:"year"`
	Month  int    `json:"month"`
	Status string `json:"status"`
}

// ReportRowResponse is the activity of one car in one currency.
type ReportRowResponse struct {
	CarID           string `json:"car_id"`
	CarLabel        string `json:"car_label"`
	Currency        string `json:"currency"`
	TripsCount      int64  `json:"trips_count"`
	TotalDistanceKm int64  `json:"total_distance_km"`
	RefuelsCount    int64  `json:"refuels_count"`
	TotalFuelLiters string `json:"total_fuel_liters"`
	TotalFuelCost   string `json:"total_fuel_cost"`
}

// ReportTotalsResponse sums a monthly report. The converted cost is emitted
// under total_fuel_cost_<currency>, e.g. total_fuel_cost_eur.
type ReportTotalsResponse struct {
	TripsCount      int64
	TotalDistanceKm int64
	RefuelsCount    int64
	TotalFuelLiters string
	TotalFuelCost   string
	Currency        string
	FXRate          string
}

// CostKey returns the JSON key of the converted total.
func (t ReportTotalsResponse) CostKey() string {
	return "total_fuel_cost_" + strings.ToLower(t.Currency)
}

// MarshalJSON implements json.Marshaler.
func (t ReportTotalsResponse) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"trips_count":       t.TripsCount,
		"total_distance_km": t.TotalDistanceKm,
		"refuels_count":     t.RefuelsCount,
		"total_fuel_liters": t.TotalFuelLiters,
		t.CostKey():         t.TotalFuelCost,
		"fx_rate":           t.FXRate,
	})
}

// MonthlyReportResponse represents the report of one month.
type MonthlyReportResponse struct {
	Year          int                  `json:"year"`
	Month         int                  `json:"month"`
	SelectedCarID *string              `json:"selected_car_id"`
	Cars          []CarResponse        `json:"cars"`
	Rows          []ReportRowResponse  `json:"rows"`
	Totals        ReportTotalsResponse `json:"totals"`
}

// ToMonthlyReportResponse converts a monthly report to its DTO.
func ToMonthlyReportResponse(out *stats.GetMonthlyReportOutput) MonthlyReportResponse {
	rows := make([]ReportRowResponse, len(out.Rows))
	for i, r := range out.Rows {
		rows[i] = ReportRowResponse{
			CarID:           r.CarID.String(),
			CarLabel:        r.CarLabel,
			Currency:        string(r.Currency),
			TripsCount:      r.TripsCount,
			TotalDistanceKm: r.TotalDistanceKm,
			RefuelsCount:    r.RefuelsCount,
			TotalFuelLiters: Money(r.TotalFuelLiters),
			TotalFuelCost:   Money(r.TotalFuelCost),
		}
	}

	response := MonthlyReportResponse{
		Year:  out.Period.Year,
		Month: out.Period.Month,
		Cars:  ToCarListResponse(out.Cars).Cars,
		Rows:  rows,
		Totals: ReportTotalsResponse{
			TripsCount:      out.Totals.TripsCount,
			TotalDistanceKm: out.Totals.TotalDistanceKm,
			RefuelsCount:    out.Totals.RefuelsCount,
			TotalFuelLiters: Money(out.Totals.TotalFuelLiters),
			TotalFuelCost:   Money(out.Totals.TotalFuelCost),
			Currency:        string(out.Totals.Currency),
			FXRate:          out.Totals.FXRate.String(),
		},
	}
	if out.SelectedCar != nil {
		id := out.SelectedCar.ID.String()
		response.SelectedCarID = &id
	}
	return response
}
