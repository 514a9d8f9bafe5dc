// Package money converts prices stored in minor currency units for display.
package money

import "github.com/shopspring/decimal"

// MinorUnits is the number of minor units per major unit (fen per yuan).
const MinorUnits = 2

// FromMinor converts an amount in minor units to a decimal major amount.
func FromMinor(amount int64) decimal.Decimal {
	return decimal.New(amount, -MinorUnits)
}

// Format renders amount (minor units) with symbol, dropping trailing zeros:
// 80000 -> "¥800", 80050 -> "¥800.5".
func Format(amount int64, symbol string) string {
	return symbol + FromMinor(amount).String()
}
