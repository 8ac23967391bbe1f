package entity

import "github.com/shopspring/decimal"

// AmountPlaces is the number of decimal places stored for liters and money.
const AmountPlaces = 2

// MaxAmount is the largest liters or money value a decimal(10,2) column holds.
var MaxAmount = decimal.RequireFromString("99999999.99")

// HasAmountPrecision reports whether v has no more than AmountPlaces decimals.
func HasAmountPrecision(v decimal.Decimal) bool {
	return v.Equal(v.Round(AmountPlaces))
}
