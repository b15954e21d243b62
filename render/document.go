package render

import (
	"strings"

	"gst-billing/billing"
	"gst-billing/models"
	"gst-billing/utils"
)

// Document is the print-ready view of an invoice. Every amount is already
// formatted; the template does no arithmetic.
type Document struct {
	Seller       models.CompanyProfile
	DLNumbers    string
	Phones       []string
	Terms        []string
	InvoiceNo    string
	Date         string
	Party        string
	PartyAddress string
	PartyGSTIN   string
	StateCode    string
	GRNo         string
	VehicleNo    string
	Transport    string
	Rows         []Row
	HSN          []HSNRow
	Totals       Totals
	AmountWords  string
	TaxWords     string
}

type Row struct {
	SN           int
	Name         string
	Batch        string
	Expiry       string
	HSN          string
	OldMRP       string
	MRP          string
	Quantity     int
	FreeQuantity int
	Rate         string
	GrossValue   string
	DiscountPct  string
	DiscountAmt  string
	Taxable      string
	Interstate   bool
	HalfRate     string
	SGST         string
	CGST         string
	IGSTRate     string
	IGST         string
	Total        string
}

type HSNRow struct {
	HSN      string
	Taxable  string
	HalfRate string
	SGST     string
	CGST     string
	IGSTRate string
	IGST     string
}

type Totals struct {
	Taxable  string
	SGST     string
	CGST     string
	IGST     string
	Tax      string
	Grand    string
	RoundOff string
	Payable  string
}

// NewDocument prepares an invoice for rendering. Totals are read from the
// invoice record, never recomputed.
func NewDocument(inv *models.Invoice, profile models.CompanyProfile) Document {
	doc := Document{
		Seller:       profile,
		DLNumbers:    dlNumbers(profile),
		Phones:       splitList(profile.Phone, ","),
		Terms:        splitList(profile.Terms, "\n"),
		InvoiceNo:    inv.InvoiceNo,
		Date:         inv.Date.Format("02 Jan 2006"),
		Party:        inv.PartyName,
		PartyAddress: inv.PartyAddress,
		PartyGSTIN:   inv.PartyGSTIN,
		StateCode:    inv.PartyStateCode,
		GRNo:         inv.GRNo,
		VehicleNo:    inv.VehicleNo,
		Transport:    inv.Transport,
	}
	if doc.Party == "" {
		doc.Party = billing.CashSaleParty
	}
	if doc.StateCode == "" {
		doc.StateCode = billing.SellerStateCode(profile)
	}

	for i, item := range inv.Items {
		interstate := !item.IGSTAmount.IsZero()
		row := Row{
			SN:           i + 1,
			Name:         item.Name,
			Batch:        item.Batch,
			Expiry:       item.Expiry,
			HSN:          item.HSN,
			OldMRP:       utils.Money(item.OldMRP),
			MRP:          utils.Money(item.MRP),
			Quantity:     item.Quantity,
			FreeQuantity: item.FreeQuantity,
			Rate:         utils.Money(item.SaleRate),
			GrossValue:   utils.Money(item.GrossValue()),
			DiscountPct:  utils.Money(item.DiscountPercent),
			DiscountAmt:  utils.Money(item.DiscountAmount()),
			Taxable:      utils.Money(item.TaxableValue),
			Interstate:   interstate,
			Total:        utils.Money(item.TotalAmount),
		}
		if interstate {
			row.IGSTRate = item.GSTRate.StringFixed(1)
			row.IGST = utils.Money(item.IGSTAmount)
		} else {
			row.HalfRate = utils.HalfRate(item.GSTRate)
			row.SGST = utils.Money(item.SGSTAmount)
			row.CGST = utils.Money(item.CGSTAmount)
		}
		doc.Rows = append(doc.Rows, row)
	}

	for _, h := range billing.HSNSummary(inv.Items) {
		doc.HSN = append(doc.HSN, HSNRow{
			HSN:      h.HSN,
			Taxable:  utils.Money(h.Taxable),
			HalfRate: utils.HalfRate(h.Rate),
			SGST:     utils.Money(h.SGST),
			CGST:     utils.Money(h.CGST),
			IGSTRate: h.Rate.StringFixed(1),
			IGST:     utils.Money(h.IGST),
		})
	}

	tax := inv.TotalCGST.Add(inv.TotalSGST).Add(inv.TotalIGST)
	doc.Totals = Totals{
		Taxable:  utils.Money(inv.TotalTaxable),
		SGST:     utils.Money(inv.TotalSGST),
		CGST:     utils.Money(inv.TotalCGST),
		IGST:     utils.Money(inv.TotalIGST),
		Tax:      utils.Money(tax),
		Grand:    utils.Money(inv.GrandTotal),
		RoundOff: utils.Money(inv.RoundOff),
		Payable:  utils.Money(inv.Payable()),
	}
	doc.AmountWords = utils.AmountInWords(inv.Payable())
	doc.TaxWords = utils.AmountInWords(tax)
	return doc
}

func dlNumbers(p models.CompanyProfile) string {
	var parts []string
	for _, dl := range []string{p.DLNo1, p.DLNo2, p.DLNo3, p.DLNo4} {
		if dl = strings.TrimSpace(dl); dl != "" {
			parts = append(parts, "("+dl+")")
		}
	}
	return strings.Join(parts, " ")
}

func splitList(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// HasIGST reports whether any row is interstate.
func (d Document) HasIGST() bool {
	for _, r := range d.Rows {
		if r.Interstate {
			return true
		}
	}
	return false
}
