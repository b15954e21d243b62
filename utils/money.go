package utils

import "github.com/shopspring/decimal"

// Round2 rounds to 2 decimal places, half away from zero.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Money formats an amount with exactly two decimals, e.g. "1008.00".
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// HalfRate formats half of a GST rate, the CGST or SGST share, e.g. "6.0".
func HalfRate(rate decimal.Decimal) string {
	return rate.Div(decimal.NewFromInt(2)).StringFixed(1)
}
