package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
	"Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

var indianUnits = []struct {
	value int64
	name  string
}{
	{10000000, "Crore"},
	{100000, "Lakh"},
	{1000, "Thousand"},
	{100, "Hundred"},
}

// NumberToWords spells n using the Indian grouping (lakh, crore), e.g.
// 1512 -> "One Thousand Five Hundred and Twelve".
func NumberToWords(n int64) string {
	if n <= 0 {
		return ""
	}
	var parts []string
	for _, u := range indianUnits {
		if n >= u.value {
			parts = append(parts, NumberToWords(n/u.value)+" "+u.name)
			n %= u.value
		}
	}
	if n > 0 {
		if len(parts) > 0 {
			parts = append(parts, "and")
		}
		parts = append(parts, belowHundred(n))
	}
	return strings.Join(parts, " ")
}

func belowHundred(n int64) string {
	if n < 20 {
		return ones[n]
	}
	if n%10 == 0 {
		return tens[n/10]
	}
	return tens[n/10] + "-" + ones[n%10]
}

// AmountInWords renders a rupee amount for printing, e.g.
// "Rupees Seventy-Five and Fifty Paise Only".
func AmountInWords(amount decimal.Decimal) string {
	amount = amount.Abs().Round(2)
	rupees := amount.Truncate(0)
	paise := amount.Sub(rupees).Mul(decimal.NewFromInt(100)).IntPart()
	r := rupees.IntPart()

	switch {
	case r == 0 && paise == 0:
		return "Zero Rupees Only"
	case r == 0:
		return NumberToWords(paise) + " Paise Only"
	case paise == 0:
		return "Rupees " + NumberToWords(r) + " Only"
	}
	return "Rupees " + NumberToWords(r) + " and " + NumberToWords(paise) + " Paise Only"
}
