// Package types provides common type utilities shared by the domain layer.
package types

import (
	"github.com/shopspring/decimal"
)

// Amounts are carried as float64 throughout the order model (full floating
// precision, matching the persisted shapes). Rounding happens only at
// display time; decimal.Decimal does that rounding exactly.

// Round2 rounds a monetary amount to two decimal places for display.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// FormatAmount renders an amount with exactly two decimals, e.g. "210.00".
func FormatAmount(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// Clamp returns v, or 0 when v is negative. Item quantities, rates and
// computed totals are never negative.
func Clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
