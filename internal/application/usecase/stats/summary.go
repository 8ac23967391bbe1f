// Package stats contains the monthly aggregation and live statistics use cases.
package stats

import (
	"github.com/shopspring/decimal"

	"github.com/trip-logbook/backend/internal/domain/entity"
)

// avgCostPrecision is the number of decimal places of cost-per-liter averages.
const avgCostPrecision = 3

// TripSummary aggregates a set of trips.
type TripSummary struct {
	Count      int64
	DistanceKm int64
}

// RefuelSummary aggregates a set of refuels.
type RefuelSummary struct {
	Count  int64
	Liters decimal.Decimal
	Cost   decimal.Decimal
}

// SummarizeTrips counts trips and sums their distance. Each trip contributes
// its floored distance, so both aggregation paths agree.
func SummarizeTrips(trips []*entity.Trip) TripSummary {
	var s TripSummary
	for _, t := range trips {
		s.Count++
		s.DistanceKm += t.DistanceKm()
	}
	return s
}

// SummarizeRefuels counts refuels and sums liters and cost. Sums are zero, never nil.
func SummarizeRefuels(refuels []*entity.Refuel) RefuelSummary {
	s := RefuelSummary{Liters: decimal.Zero, Cost: decimal.Zero}
	for _, r := range refuels {
		s.add(r)
	}
	return s
}

func (s *RefuelSummary) add(r *entity.Refuel) {
	s.Count++
	s.Liters = s.Liters.Add(r.Liters)
	s.Cost = s.Cost.Add(r.TotalCost)
}

// AvgCostPerLiter returns cost divided by liters rounded half away from zero
// to three decimal places, or zero when no fuel was bought.
func (s RefuelSummary) AvgCostPerLiter() decimal.Decimal {
	if s.Liters.IsZero() {
		return decimal.Zero
	}
	return s.Cost.DivRound(s.Liters, avgCostPrecision)
}
