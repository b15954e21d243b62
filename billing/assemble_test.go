package billing

import (
	"testing"

	"gst-billing/models"
)

func TestAssemble_RoundsOnlyGrandTotal(t *testing.T) {
	lines := []models.InvoiceItem{
		{TaxableValue: d("900"), CGSTAmount: d("54"), SGSTAmount: d("54"), IGSTAmount: d("0"), TotalAmount: d("1008.00")},
		{TaxableValue: d("479.52"), CGSTAmount: d("11.99"), SGSTAmount: d("11.99"), IGSTAmount: d("0"), TotalAmount: d("503.50")},
	}
	got := Assemble(lines)

	if !got.Grand.Equal(d("1511.50")) {
		t.Errorf("grand = %s, want 1511.50", got.Grand)
	}
	if !got.RoundOff.Equal(d("0.50")) {
		t.Errorf("round off = %s, want 0.50", got.RoundOff)
	}
	if !got.Payable().Equal(d("1512")) {
		t.Errorf("payable = %s, want 1512", got.Payable())
	}
	if !got.Taxable.Equal(d("1379.52")) || !got.CGST.Equal(d("65.99")) {
		t.Errorf("taxable=%s cgst=%s", got.Taxable, got.CGST)
	}
}

func TestRoundOff(t *testing.T) {
	tests := []struct {
		grand string
		want  string
	}{
		{"100", "0"},
		{"100.49", "-0.49"},
		{"100.5", "0.5"},
		{"100.51", "0.49"},
		{"-10.5", "-0.5"},
	}
	for _, tt := range tests {
		got := RoundOff(d(tt.grand))
		if !got.Equal(d(tt.want)) {
			t.Errorf("RoundOff(%s) = %s, want %s", tt.grand, got, tt.want)
		}
		if sum := d(tt.grand).Add(got); !sum.Equal(sum.Round(0)) {
			t.Errorf("grand+roundoff = %s is not whole", sum)
		}
	}
}

func TestInvoiceNumber(t *testing.T) {
	tests := []struct {
		kind models.InvoiceType
		seq  int64
		want string
	}{
		{models.InvoiceWholesale, NumberOffset, "TI -65"},
		{models.InvoiceRetail, 70, "RET -70"},
		{"", 1, "TI -1"},
	}
	for _, tt := range tests {
		if got := InvoiceNumber(tt.kind, tt.seq); got != tt.want {
			t.Errorf("InvoiceNumber(%q, %d) = %q, want %q", tt.kind, tt.seq, got, tt.want)
		}
	}
}

func TestHSNSummary(t *testing.T) {
	lines := []models.InvoiceItem{
		{HSN: "3004", GSTRate: d("12"), TaxableValue: d("100"), CGSTAmount: d("6"), SGSTAmount: d("6"), IGSTAmount: d("0")},
		{HSN: "3306", GSTRate: d("18"), TaxableValue: d("50"), CGSTAmount: d("4.5"), SGSTAmount: d("4.5"), IGSTAmount: d("0")},
		{HSN: "3004", GSTRate: d("12"), TaxableValue: d("200"), CGSTAmount: d("12"), SGSTAmount: d("12"), IGSTAmount: d("0")},
		{HSN: "3004", GSTRate: d("5"), TaxableValue: d("40"), CGSTAmount: d("1"), SGSTAmount: d("1"), IGSTAmount: d("0")},
	}
	rows := HSNSummary(lines)
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if rows[0].HSN != "3004" || !rows[0].Rate.Equal(d("12")) || !rows[0].Taxable.Equal(d("300")) || !rows[0].Tax().Equal(d("36")) {
		t.Errorf("row 0 = %+v", rows[0])
	}
	if rows[1].HSN != "3306" || rows[2].HSN != "3004" || !rows[2].Rate.Equal(d("5")) {
		t.Errorf("order = %s/%s, want 3306 then 3004@5", rows[1].HSN, rows[2].HSN)
	}
}
