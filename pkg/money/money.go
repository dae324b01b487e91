// Package money holds the rounding rules shared by the decision engines.
package money

import "github.com/shopspring/decimal"

const (
	// CurrencyPlaces is the precision used for reported monetary amounts.
	CurrencyPlaces = 2
	// RatePlaces is the precision used when reporting a discount rate.
	RatePlaces = 4
	// RatioPlaces is the precision used when reporting fill rates.
	RatioPlaces = 2
)

// Cents rounds an amount to two decimal places, half away from zero.
// Amounts are never negative here, so this matches half-up currency rounding.
func Cents(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(CurrencyPlaces)
}

// DisplayRate rounds a rate to four decimal places for reporting only.
func DisplayRate(rate decimal.Decimal) decimal.Decimal {
	return rate.Round(RatePlaces)
}

// FromRate converts a configured fractional rate into a decimal.
func FromRate(rate float64) decimal.Decimal {
	return decimal.NewFromFloat(rate)
}

// LineTotal returns quantity × unit price.
func LineTotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// Ratio returns numerator/denominator rounded to two places as a float.
// A zero denominator yields 1.
func Ratio(numerator, denominator int64) float64 {
	if denominator == 0 {
		return 1
	}
	return decimal.NewFromInt(numerator).
		Div(decimal.NewFromInt(denominator)).
		Round(RatioPlaces).
		InexactFloat64()
}
