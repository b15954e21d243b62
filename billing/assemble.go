package billing

import (
	"fmt"

	"gst-billing/models"

	"github.com/shopspring/decimal"
)

// NumberOffset is added to the invoice count to form the first number.
const NumberOffset = 65

// Totals holds the invoice-level sums. Grand is unrounded; RoundOff brings
// it to the nearest whole rupee.
type Totals struct {
	Taxable  decimal.Decimal
	CGST     decimal.Decimal
	SGST     decimal.Decimal
	IGST     decimal.Decimal
	Grand    decimal.Decimal
	RoundOff decimal.Decimal
}

// Payable is the rounded grand total.
func (t Totals) Payable() decimal.Decimal {
	return t.Grand.Add(t.RoundOff)
}

// Assemble sums line amounts. Rounding happens only here, at the grand
// total, half away from zero.
func Assemble(lines []models.InvoiceItem) Totals {
	t := Totals{
		Taxable: decimal.Zero,
		CGST:    decimal.Zero,
		SGST:    decimal.Zero,
		IGST:    decimal.Zero,
		Grand:   decimal.Zero,
	}
	for _, line := range lines {
		t.Taxable = t.Taxable.Add(line.TaxableValue)
		t.CGST = t.CGST.Add(line.CGSTAmount)
		t.SGST = t.SGST.Add(line.SGSTAmount)
		t.IGST = t.IGST.Add(line.IGSTAmount)
		t.Grand = t.Grand.Add(line.TotalAmount)
	}
	t.RoundOff = RoundOff(t.Grand)
	return t
}

// RoundOff is the adjustment that rounds grand to a whole unit.
func RoundOff(grand decimal.Decimal) decimal.Decimal {
	return grand.Round(0).Sub(grand)
}

// InvoicePrefix is "RET" for retail invoices and "TI" otherwise.
func InvoicePrefix(kind models.InvoiceType) string {
	if kind == models.InvoiceRetail {
		return "RET"
	}
	return "TI"
}

// InvoiceNumber formats a sequence value, e.g. "TI -65".
func InvoiceNumber(kind models.InvoiceType, seq int64) string {
	return fmt.Sprintf("%s -%d", InvoicePrefix(kind), seq)
}

// HSNRow is one row of the HSN-wise tax summary.
type HSNRow struct {
	HSN     string
	Rate    decimal.Decimal
	Taxable decimal.Decimal
	CGST    decimal.Decimal
	SGST    decimal.Decimal
	IGST    decimal.Decimal
}

// Tax is the row's total tax.
func (r HSNRow) Tax() decimal.Decimal {
	return r.CGST.Add(r.SGST).Add(r.IGST)
}

// HSNSummary groups lines by HSN code and rate, in order of first appearance.
func HSNSummary(lines []models.InvoiceItem) []HSNRow {
	var rows []HSNRow
	index := make(map[string]int)
	for _, line := range lines {
		key := line.HSN + "|" + line.GSTRate.String()
		i, ok := index[key]
		if !ok {
			i = len(rows)
			index[key] = i
			rows = append(rows, HSNRow{
				HSN:     line.HSN,
				Rate:    line.GSTRate,
				Taxable: decimal.Zero,
				CGST:    decimal.Zero,
				SGST:    decimal.Zero,
				IGST:    decimal.Zero,
			})
		}
		rows[i].Taxable = rows[i].Taxable.Add(line.TaxableValue)
		rows[i].CGST = rows[i].CGST.Add(line.CGSTAmount)
		rows[i].SGST = rows[i].SGST.Add(line.SGSTAmount)
		rows[i].IGST = rows[i].IGST.Add(line.IGSTAmount)
	}
	return rows
}
