package valueobject

import (
	"github.com/shopspring/decimal"

	"github.com/trip-logbook/backend/internal/domain/entity"
)

// ExchangeRate converts amounts into a single reporting currency.
// One unit of Base is worth Rate units of Quote.
type ExchangeRate struct {
	Base  entity.Currency
	Quote entity.Currency
	Rate  decimal.Decimal
}

// DefaultExchangeRate returns the fixed EUR/BGN rate.
func DefaultExchangeRate() ExchangeRate {
	return ExchangeRate{
		Base:  entity.CurrencyEUR,
		Quote: entity.CurrencyBGN,
		Rate:  decimal.RequireFromString("1.95583"),
	}
}

// ToBase converts amount expressed in currency into the base currency.
// Amounts in unknown currencies are returned unchanged.
func (r ExchangeRate) ToBase(amount decimal.Decimal, currency entity.Currency) decimal.Decimal {
	switch currency {
	case r.Base:
		return amount
	case r.Quote:
		if r.Rate.IsZero() {
			return amount
		}
		return amount.Div(r.Rate)
	default:
		return amount
	}
}
