package dto

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/trip-logbook/backend/internal/application/usecase/stats"
	"github.com/trip-logbook/backend/internal/domain/entity"
	"github.com/trip-logbook/backend/internal/domain/valueobject"
)

func TestToMonthlyReportResponse(t *testing.T) {
	car := entity.NewCar(uuid.New(), "Skoda", "Octavia", 2019, entity.FuelDiesel, entity.GearboxManual)

	out := &stats.GetMonthlyReportOutput{
		Period:      valueobject.MonthPeriod{Year: 2024, Month: 5},
		Cars:        []*entity.Car{car},
		SelectedCar: car,
		Rows: []stats.ReportRow{{
			CarID:           car.ID,
			CarLabel:        car.Label(),
			Currency:        entity.CurrencyBGN,
			TripsCount:      2,
			TotalDistanceKm: 130,
			RefuelsCount:    1,
			TotalFuelLiters: decimal.RequireFromString("20"),
			TotalFuelCost:   decimal.RequireFromString("60"),
		}},
		Totals: stats.ReportTotals{
			TripsCount:      2,
			TotalDistanceKm: 130,
			RefuelsCount:    1,
			TotalFuelLiters: decimal.RequireFromString("20"),
			TotalFuelCost:   decimal.RequireFromString("30.677819"),
			Currency:        entity.CurrencyEUR,
			FXRate:          decimal.RequireFromString("1.95583"),
		},
	}

	body, err := json.Marshal(ToMonthlyReportResponse(out))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if decoded["selected_car_id"] != car.ID.String() {
		t.Errorf("expected selected_car_id %s, got %v", car.ID, decoded["selected_car_id"])
	}

	rows := decoded["rows"].([]any)
	row := rows[0].(map[string]any)
	if row["car_label"] != "Skoda Octavia (2019)" {
		t.Errorf("expected car label, got %v", row["car_label"])
	}
	if row["total_fuel_cost"] != "60.00" {
		t.Errorf("expected row cost 60.00, got %v", row["total_fuel_cost"])
	}

	totals := decoded["totals"].(map[string]any)
	if totals["total_fuel_cost_eur"] != "30.68" {
		t.Errorf("expected total_fuel_cost_eur 30.68, got %v", totals["total_fuel_cost_eur"])
	}
	if _, ok := totals["total_fuel_cost"]; ok {
		t.Error("expected no unsuffixed total_fuel_cost key")
	}
	if totals["fx_rate"] != "1.95583" {
		t.Errorf("expected fx_rate 1.95583, got %v", totals["fx_rate"])
	}
	if totals["total_fuel_liters"] != "20.00" {
		t.Errorf("expected liters 20.00, got %v", totals["total_fuel_liters"])
	}
}

func TestToMonthlyReportResponseWithoutSelection(t *testing.T) {
	out := &stats.GetMonthlyReportOutput{
		Period: valueobject.MonthPeriod{Year: 2023, Month: 1},
		Totals: stats.ReportTotals{
			TotalFuelLiters: decimal.Zero,
			TotalFuelCost:   decimal.Zero,
			Currency:        entity.CurrencyEUR,
			FXRate:          decimal.RequireFromString("1.95583"),
		},
	}

	body, err := json.Marshal(ToMonthlyReportResponse(out))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, ok := decoded["selected_car_id"]; !ok || v != nil {
		t.Errorf("expected selected_car_id null, got %v", v)
	}
	totals := decoded["totals"].(map[string]any)
	if totals["total_fuel_cost_eur"] != "0.00" {
		t.Errorf("expected 0.00, got %v", totals["total_fuel_cost_eur"])
	}
	if totals["trips_count"] != float64(0) {
		t.Errorf("expected 0 trips, got %v", totals["trips_count"])
	}
}
