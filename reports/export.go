package reports

import (
	"context"
	"fmt"
	"io"
	"time"

	"gst-billing/database"

	"github.com/xuri/excelize/v2"
)

const salesSheet = "Sheet1"

var salesHeadings = []any{
	"Invoice No", "Date", "Type", "Status", "Party", "GSTIN", "State Code",
	"Taxable", "CGST", "SGST", "IGST", "Grand Total", "Round Off", "Payable",
}

// ExportSales writes a sales register for invoices dated in [from, to) as
// xlsx. A zero bound is open.
func (s *Service) ExportSales(ctx context.Context, w io.Writer, from, to time.Time) (int, error) {
	q := database.Query{Order: "date, id"}
	switch {
	case !from.IsZero() && !to.IsZero():
		q.Where, q.Args = "date >= ? AND date < ?", []any{from, to}
	case !from.IsZero():
		q.Where, q.Args = "date >= ?", []any{from}
	case !to.IsZero():
		q.Where, q.Args = "date < ?", []any{to}
	}

	invoices, err := s.store.Invoices.Query(ctx, q)
	if err != nil {
		return 0, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetRow(salesSheet, "A1", &salesHeadings); err != nil {
		return 0, err
	}
	for i, inv := range invoices {
		row := []any{
			inv.InvoiceNo,
			inv.Date.Format("2006-01-02"),
			string(inv.InvoiceType),
			string(inv.Status),
			inv.PartyName,
			inv.PartyGSTIN,
			inv.PartyStateCode,
			inv.TotalTaxable.InexactFloat64(),
			inv.TotalCGST.InexactFloat64(),
			inv.TotalSGST.InexactFloat64(),
			inv.TotalIGST.InexactFloat64(),
			inv.GrandTotal.InexactFloat64(),
			inv.RoundOff.InexactFloat64(),
			inv.Payable().InexactFloat64(),
		}
		if err := f.SetSheetRow(salesSheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return 0, err
		}
	}

	if err := f.Write(w); err != nil {
		return 0, err
	}
	return len(invoices), nil
}
