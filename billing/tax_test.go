package billing

import (
	"testing"

	"gst-billing/models"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestComputeTax_Scenarios(t *testing.T) {
	tests := []struct {
		name    string
		in      TaxInput
		taxable string
		cgst    string
		sgst    string
		igst    string
		total   string
	}{
		{
			name:    "intrastate splits into cgst and sgst",
			in:      TaxInput{BaseAmount: d("1000"), DiscountPercent: d("10"), GSTRate: d("12"), SellerStateCode: "24", BuyerStateCode: "24"},
			taxable: "900", cgst: "54", sgst: "54", igst: "0", total: "1008",
		},
		{
			name:    "interstate charges igst",
			in:      TaxInput{BaseAmount: d("1000"), DiscountPercent: d("10"), GSTRate: d("12"), SellerStateCode: "24", BuyerStateCode: "27"},
			taxable: "900", cgst: "0", sgst: "0", igst: "108", total: "1008",
		},
		{
			name:    "empty buyer state is local",
			in:      TaxInput{BaseAmount: d("200"), DiscountPercent: d("0"), GSTRate: d("5"), SellerStateCode: "24"},
			taxable: "200", cgst: "5", sgst: "5", igst: "0", total: "210",
		},
		{
			name:    "zero rate",
			in:      TaxInput{BaseAmount: d("99.99"), DiscountPercent: d("0"), GSTRate: d("0"), SellerStateCode: "24", BuyerStateCode: "29"},
			taxable: "99.99", cgst: "0", sgst: "0", igst: "0", total: "99.99",
		},
		{
			name:    "full discount",
			in:      TaxInput{BaseAmount: d("500"), DiscountPercent: d("100"), GSTRate: d("18"), SellerStateCode: "24", BuyerStateCode: "24"},
			taxable: "0", cgst: "0", sgst: "0", igst: "0", total: "0",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTax(tt.in)
			check := func(field string, got decimal.Decimal, want string) {
				if !got.Equal(d(want)) {
					t.Errorf("%s = %s, want %s", field, got, want)
				}
			}
			check("taxable", got.TaxableValue, tt.taxable)
			check("cgst", got.CGST, tt.cgst)
			check("sgst", got.SGST, tt.sgst)
			check("igst", got.IGST, tt.igst)
			check("total", got.Total(), tt.total)
		})
	}
}

func TestComputeTax_SplitProperties(t *testing.T) {
	bases := []string{"0", "1", "17.35", "1000", "123456.78"}
	discounts := []string{"0", "2.5", "10", "33", "100"}
	rates := []string{"0", "5", "12", "18", "28"}

	for _, b := range bases {
		for _, disc := range discounts {
			for _, r := range rates {
				local := ComputeTax(TaxInput{BaseAmount: d(b), DiscountPercent: d(disc), GSTRate: d(r), SellerStateCode: "24", BuyerStateCode: "24"})
				half := d(r).Mul(local.TaxableValue).Div(d("200"))
				if !local.CGST.Equal(half) || !local.SGST.Equal(half) || !local.IGST.IsZero() {
					t.Errorf("intrastate base=%s disc=%s rate=%s: cgst=%s sgst=%s igst=%s, want %s/%s/0",
						b, disc, r, local.CGST, local.SGST, local.IGST, half, half)
				}

				inter := ComputeTax(TaxInput{BaseAmount: d(b), DiscountPercent: d(disc), GSTRate: d(r), SellerStateCode: "24", BuyerStateCode: "09"})
				full := d(r).Mul(inter.TaxableValue).Div(d("100"))
				if !inter.IGST.Equal(full) || !inter.CGST.IsZero() || !inter.SGST.IsZero() {
					t.Errorf("interstate base=%s disc=%s rate=%s: igst=%s cgst=%s sgst=%s, want %s/0/0",
						b, disc, r, inter.IGST, inter.CGST, inter.SGST, full)
				}

				if !local.Total().Equal(inter.Total()) {
					t.Errorf("base=%s disc=%s rate=%s: totals differ by jurisdiction: %s vs %s", b, disc, r, local.Total(), inter.Total())
				}
			}
		}
	}
}

func TestStateCode(t *testing.T) {
	tests := []struct {
		gstin string
		want  string
	}{
		{"24AADPO7411Q1ZE", "24"},
		{" 27abcde1234f1z5 ", "27"},
		{"", ""},
		{"2", ""},
	}
	for _, tt := range tests {
		if got := StateCode(tt.gstin); got != tt.want {
			t.Errorf("StateCode(%q) = %q, want %q", tt.gstin, got, tt.want)
		}
	}
}

func TestSellerAndBuyerStateCode(t *testing.T) {
	profile := models.CompanyProfile{GSTIN: "29AAAAA0000A1Z5"}
	if got := SellerStateCode(profile); got != "29" {
		t.Errorf("SellerStateCode = %q, want 29", got)
	}
	if got := SellerStateCode(models.CompanyProfile{}); got != DefaultStateCode {
		t.Errorf("SellerStateCode(no gstin) = %q, want %q", got, DefaultStateCode)
	}
	if got := BuyerStateCode(nil, profile); got != "29" {
		t.Errorf("BuyerStateCode(nil) = %q, want seller state 29", got)
	}
	if got := BuyerStateCode(&models.Party{Name: "Cash"}, profile); got != "29" {
		t.Errorf("BuyerStateCode(no gstin) = %q, want seller state 29", got)
	}
	if got := BuyerStateCode(&models.Party{GSTIN: "07BBBBB1111B1Z1"}, profile); got != "07" {
		t.Errorf("BuyerStateCode = %q, want 07", got)
	}
}
