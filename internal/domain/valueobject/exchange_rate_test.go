package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/trip-logbook/backend/internal/domain/entity"
)

func TestExchangeRate_ToBase(t *testing.T) {
	rate := DefaultExchangeRate()

	tests := []struct {
		name     string
		amount   string
		currency entity.Currency
		expected decimal.Decimal
	}{
		{name: "base passes through", amount: "10.00", currency: entity.CurrencyEUR, expected: decimal.RequireFromString("10.00")},
		{name: "quote is divided by rate", amount: "60.00", currency: entity.CurrencyBGN, expected: decimal.RequireFromString("60.00").Div(rate.Rate)},
		{name: "unknown currency passes through", amount: "7.50", currency: entity.Currency("USD"), expected: decimal.RequireFromString("7.50")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rate.ToBase(decimal.RequireFromString(tt.amount), tt.currency)
			if !got.Equal(tt.expected) {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestExchangeRate_ToBaseRoundsToCents(t *testing.T) {
	got := DefaultExchangeRate().ToBase(decimal.RequireFromString("1.95583"), entity.CurrencyBGN)
	if got.StringFixed(2) != "1.00" {
		t.Errorf("expected 1.00, got %s", got.StringFixed(2))
	}
}
