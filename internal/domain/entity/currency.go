package entity

// Currency is an ISO 4217 code used for refuel costs.
type Currency string

const (
	CurrencyBGN Currency = "BGN"
	CurrencyEUR Currency = "EUR"
)

// NoCurrency is the placeholder used in reports for rows without refuels.
const NoCurrency Currency = "-"

// IsSupported reports whether refuels may be recorded in this currency.
func (c Currency) IsSupported() bool {
	return c == CurrencyBGN || c == CurrencyEUR
}
