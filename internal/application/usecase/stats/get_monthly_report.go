package stats

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/trip-logbook/backend/internal/application/adapter"
	"github.com/trip-logbook/backend/internal/domain/entity"
	domainerror "github.com/trip-logbook/backend/internal/domain/error"
	"github.com/trip-logbook/backend/internal/domain/policy"
	"github.com/trip-logbook/backend/internal/domain/valueobject"
)

// GetMonthlyReportInput represents the input for the monthly report.
type GetMonthlyReportInput struct {
	Principal policy.Principal
	Year      *int       // Optional, defaults to the current year
	Month     *int       // Optional, defaults to the current month
	CarID     *uuid.UUID // Optional, ignored when the car is not visible
	// Location resolves "today" for missing year or month. Defaults to UTC.
	Location *time.Location
}

// ReportRow is the activity of one car in one currency.
type ReportRow struct {
	CarID           uuid.UUID
	CarLabel        string
	Currency        entity.Currency
	TripsCount      int64
	TotalDistanceKm int64
	RefuelsCount    int64
	TotalFuelLiters decimal.Decimal
	TotalFuelCost   decimal.Decimal
}

// ReportTotals sums the report across cars, with costs converted to the base currency.
type ReportTotals struct {
	TripsCount      int64
	TotalDistanceKm int64
	RefuelsCount    int64
	TotalFuelLiters decimal.Decimal
	TotalFuelCost   decimal.Decimal
	Currency        entity.Currency
	FXRate          decimal.Decimal
}

// GetMonthlyReportOutput represents the monthly report.
type GetMonthlyReportOutput struct {
	Period      valueobject.MonthPeriod
	Cars        []*entity.Car
	SelectedCar *entity.Car
	Rows        []ReportRow
	Totals      ReportTotals
}

// GetMonthlyReportUseCase computes the per-car, per-currency report of a month.
type GetMonthlyReportUseCase struct {
	carRepo    adapter.CarRepository
	tripRepo   adapter.TripRepository
	refuelRepo adapter.RefuelRepository
	rate       valueobject.ExchangeRate
	clock      adapter.Clock
}

// NewGetMonthlyReportUseCase creates a new GetMonthlyReportUseCase instance.
func NewGetMonthlyReportUseCase(
	carRepo adapter.CarRepository,
	tripRepo adapter.TripRepository,
	refuelRepo adapter.RefuelRepository,
	rate valueobject.ExchangeRate,
	clock adapter.Clock,
) *GetMonthlyReportUseCase {
	return &GetMonthlyReportUseCase{
		carRepo:    carRepo,
		tripRepo:   tripRepo,
		refuelRepo: refuelRepo,
		rate:       rate,
		clock:      clock,
	}
}

type currencyKey struct {
	carID    uuid.UUID
	currency entity.Currency
}

// Execute builds the report. A month without activity yields no rows and
// zero totals.
func (uc *GetMonthlyReportUseCase) Execute(ctx context.Context, input GetMonthlyReportInput) (*GetMonthlyReportOutput, error) {
	period, err := uc.resolvePeriod(input)
	if err != nil {
		return nil, err
	}

	scope := policy.ScopeFor(input.Principal)
	cars, err := uc.carRepo.List(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("failed to list cars: %w", err)
	}

	output := &GetMonthlyReportOutput{
		Period: period,
		Cars:   cars,
		Rows:   []ReportRow{},
		Totals: ReportTotals{
			TotalFuelLiters: decimal.Zero,
			TotalFuelCost:   decimal.Zero,
			Currency:        uc.rate.Base,
			FXRate:          uc.rate.Rate,
		},
	}

	selected := cars
	if input.CarID != nil {
		for _, car := range cars {
			if car.ID == *input.CarID {
				output.SelectedCar = car
				selected = []*entity.Car{car}
				break
			}
		}
	}
	if len(selected) == 0 {
		return output, nil
	}

	carIDs := make([]uuid.UUID, len(selected))
	for i, car := range selected {
		carIDs[i] = car.ID
	}

	from, to := period.Start(), period.End()
	var trips []*entity.Trip
	var refuels []*entity.Refuel

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		trips, err = uc.tripRepo.List(gctx, adapter.TripFilter{Scope: scope, CarIDs: carIDs, From: &from, To: &to})
		if err != nil {
			return fmt.Errorf("failed to list trips: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		refuels, err = uc.refuelRepo.List(gctx, adapter.RefuelFilter{Scope: scope, CarIDs: carIDs, From: &from, To: &to})
		if err != nil {
			return fmt.Errorf("failed to list refuels: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	tripsByCar := make(map[uuid.UUID][]*entity.Trip)
	for _, t := range trips {
		tripsByCar[t.CarID] = append(tripsByCar[t.CarID], t)
	}
	refuelsByKey := make(map[currencyKey]*RefuelSummary)
	currenciesByCar := make(map[uuid.UUID][]entity.Currency)
	for _, r := range refuels {
		key := currencyKey{carID: r.CarID, currency: r.Currency}
		summary, ok := refuelsByKey[key]
		if !ok {
			summary = &RefuelSummary{Liters: decimal.Zero, Cost: decimal.Zero}
			refuelsByKey[key] = summary
			currenciesByCar[r.CarID] = append(currenciesByCar[r.CarID], r.Currency)
		}
		summary.add(r)
	}

	for _, car := range selected {
		tripSummary := SummarizeTrips(tripsByCar[car.ID])
		currencies := currenciesByCar[car.ID]
		if len(currencies) == 0 {
			if tripSummary.Count == 0 {
				continue
			}
			output.Rows = append(output.Rows, ReportRow{
				CarID:           car.ID,
				CarLabel:        car.Label(),
				Currency:        entity.NoCurrency,
				TripsCount:      tripSummary.Count,
				TotalDistanceKm: tripSummary.DistanceKm,
				TotalFuelLiters: decimal.Zero,
				TotalFuelCost:   decimal.Zero,
			})
			continue
		}

		for _, currency := range currencies {
			summary := refuelsByKey[currencyKey{carID: car.ID, currency: currency}]
			output.Rows = append(output.Rows, ReportRow{
				CarID:           car.ID,
				CarLabel:        car.Label(),
				Currency:        currency,
				TripsCount:      tripSummary.Count,
				TotalDistanceKm: tripSummary.DistanceKm,
				RefuelsCount:    summary.Count,
				TotalFuelLiters: summary.Liters,
				TotalFuelCost:   summary.Cost,
			})
			output.Totals.TotalFuelCost = output.Totals.TotalFuelCost.Add(uc.rate.ToBase(summary.Cost, currency))
		}
	}

	sortRows(output.Rows)

	tripTotals := SummarizeTrips(trips)
	refuelTotals := SummarizeRefuels(refuels)
	output.Totals.TripsCount = tripTotals.Count
	output.Totals.TotalDistanceKm = tripTotals.DistanceKm
	output.Totals.RefuelsCount = refuelTotals.Count
	output.Totals.TotalFuelLiters = refuelTotals.Liters

	return output, nil
}

func (uc *GetMonthlyReportUseCase) resolvePeriod(input GetMonthlyReportInput) (valueobject.MonthPeriod, error) {
	loc := input.Location
	if loc == nil {
		loc = time.UTC
	}
	today := uc.clock.Now().In(loc)

	year, month := today.Year(), int(today.Month())
	if input.Year != nil {
		year = *input.Year
	}
	if input.Month != nil {
		month = *input.Month
	}

	period, err := valueobject.NewMonthPeriod(year, month)
	if err != nil {
		return valueobject.MonthPeriod{}, domainerror.NewStatsError(domainerror.ErrCodeInvalidPeriod, err.Error(), domainerror.ErrInvalidPeriod)
	}
	return period, nil
}

// sortRows orders rows by car label, then car id, then currency.
func sortRows(rows []ReportRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].CarLabel != rows[j].CarLabel {
			return rows[i].CarLabel < rows[j].CarLabel
		}
		if rows[i].CarID != rows[j].CarID {
			return rows[i].CarID.String() < rows[j].CarID.String()
		}
		return rows[i].Currency < rows[j].Currency
	})
}
