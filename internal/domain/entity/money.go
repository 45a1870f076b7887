package entity

import "github.com/shopspring/decimal"

func init() {
	// Amounts are rendered as JSON numbers, matching what the dashboard expects.
	decimal.MarshalJSONWithoutQuotes = true
}

// ClampZero returns d, or zero when d is negative
func ClampZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
