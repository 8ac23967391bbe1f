// Package valueobject contains domain value objects for the Trip Logbook system.
package valueobject

import (
	"fmt"
	"time"
)

const (
	minYear = 1
	maxYear = 9999
)

// MonthPeriod is one calendar month. Its window is the half-open date range
// [first day of the month, first day of the next month).
type MonthPeriod struct {
	Year  int
	Month int
}

// NewMonthPeriod validates year and month and returns the period.
func NewMonthPeriod(year, month int) (MonthPeriod, error) {
	if month < 1 || month > 12 {
		return MonthPeriod{}, fmt.Errorf("month must be between 1 and 12, got %d", month)
	}
	if year < minYear || year > maxYear {
		return MonthPeriod{}, fmt.Errorf("year must be between %d and %d, got %d", minYear, maxYear, year)
	}
	return MonthPeriod{Year: year, Month: month}, nil
}

// MonthPeriodOf returns the period containing t in t's location.
func MonthPeriodOf(t time.Time) MonthPeriod {
	return MonthPeriod{Year: t.Year(), Month: int(t.Month())}
}

// Start returns the first day of the month at midnight UTC.
func (p MonthPeriod) Start() time.Time {
	return time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
}

// End returns the first day of the following month at midnight UTC (exclusive bound).
func (p MonthPeriod) End() time.Time {
	return p.Start().AddDate(0, 1, 0)
}

// Contains reports whether the calendar date of t falls inside the period.
func (p MonthPeriod) Contains(t time.Time) bool {
	return t.Year() == p.Year && int(t.Month()) == p.Month
}

// String formats the period as YYYY-MM.
func (p MonthPeriod) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// DateRange is an inclusive range of calendar dates.
type DateRange struct {
	From time.Time
	To   time.Time
}

// LastDays returns the range of n days ending on (and including) the date of today.
func LastDays(today time.Time, n int) DateRange {
	to := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	return DateRange{From: to.AddDate(0, 0, -(n - 1)), To: to}
}

// EndExclusive returns the day after To.
func (r DateRange) EndExclusive() time.Time {
	return r.To.AddDate(0, 0, 1)
}

// FilterWindow returns the [from, to) date window selected by an optional year
// and month. A month without a year is rejected. Nil bounds mean unbounded.
func FilterWindow(year, month *int) (from, to *time.Time, err error) {
	switch {
	case year == nil && month == nil:
		return nil, nil, nil
	case year == nil:
		return nil, nil, fmt.Errorf("month filter requires a year")
	case month == nil:
		if *year < minYear || *year > maxYear {
			return nil, nil, fmt.Errorf("year must be between %d and %d, got %d", minYear, maxYear, *year)
		}
		start := time.Date(*year, time.January, 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(1, 0, 0)
		return &start, &end, nil
	default:
		p, err := NewMonthPeriod(*year, *month)
		if err != nil {
			return nil, nil, err
		}
		start, end := p.Start(), p.End()
		return &start, &end, nil
	}
}
