package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date as midnight UTC.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate renders a calendar date.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Money renders a decimal with two places.
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
