package utils

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestAmountInWords(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"0", "Zero Rupees Only"},
		{"1512", "Rupees One Thousand Five Hundred and Twelve Only"},
		{"75.50", "Rupees Seventy-Five and Fifty Paise Only"},
		{"0.05", "Five Paise Only"},
		{"100000", "Rupees One Lakh Only"},
		{"12345678", "Rupees One Crore Twenty-Three Lakh Forty-Five Thousand Six Hundred and Seventy-Eight Only"},
		{"40.999", "Rupees Forty-One Only"},
	}
	for _, tt := range tests {
		got := AmountInWords(decimal.RequireFromString(tt.amount))
		if got != tt.want {
			t.Errorf("AmountInWords(%s) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestMoneyFormatting(t *testing.T) {
	if got := Money(decimal.RequireFromString("1008")); got != "1008.00" {
		t.Errorf("Money = %q", got)
	}
	if got := HalfRate(decimal.NewFromInt(5)); got != "2.5" {
		t.Errorf("HalfRate(5) = %q", got)
	}
	if got := Round2(decimal.RequireFromString("3.145")); !got.Equal(decimal.RequireFromString("3.15")) {
		t.Errorf("Round2 = %s", got)
	}
}
