// Package money holds the monetary helpers shared by the asset models and the
// report formatters. Amounts are shopspring decimals; display goes through
// go-money so every report renders USD the same way.
package money

import (
	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency is the single reporting currency.
const Currency = gomoney.USD

var (
	monthsPerYear = decimal.NewFromInt(12)
	cents         = decimal.NewFromInt(100)
)

// Monthly converts an annual amount or rate to its monthly equivalent
func Monthly(annual decimal.Decimal) decimal.Decimal {
	return annual.Div(monthsPerYear)
}

// Annual converts a monthly amount or rate to annual
func Annual(monthly decimal.Decimal) decimal.Decimal {
	return monthly.Mul(monthsPerYear)
}

// Round rounds an amount to cents
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ClampZero returns d, or zero when d is negative.
func ClampZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Format renders an amount as USD with thousands separators, e.g. "$1,234.56".
func Format(d decimal.Decimal) string {
	return gomoney.New(d.Mul(cents).Round(0).IntPart(), Currency).Display()
}

// FormatFloat is Format for float64 inputs (chart axes, statistics).
func FormatFloat(f float64) string {
	return Format(decimal.NewFromFloat(f))
}

// FormatRate renders a fractional rate as a percentage with two decimals.
func FormatRate(rate decimal.Decimal) string {
	return rate.Mul(cents).StringFixed(2) + "%"
}
