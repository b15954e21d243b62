package render

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"gst-billing/billing"
	"gst-billing/models"

	"github.com/shopspring/decimal"
)

func sampleInvoice(t *testing.T, partyGSTIN string) (*models.Invoice, models.CompanyProfile) {
	t.Helper()
	profile := models.DefaultProfile()
	profile.UseDefaultGST = false

	cart := billing.NewCart(profile)
	cart.SetParty(&models.Party{ID: 3, Name: "City Chemist", GSTIN: partyGSTIN, Address: "Relief Road"})
	product := models.Product{
		ID: 1, Name: "Azithral 500", Batch: "AZ1", Expiry: "2027-06", HSN: "3004",
		GSTRate: decimal.NewFromInt(12), MRP: decimal.NewFromInt(1200), OldMRP: decimal.NewFromInt(1100),
		SaleRate: decimal.NewFromInt(1000),
	}
	if _, err := cart.AddLine(product); err != nil {
		t.Fatalf("AddLine: %v", err)
	}
	disc := decimal.NewFromInt(10)
	if _, err := cart.UpdateLine(0, billing.LineEdit{DiscountPercent: &disc}); err != nil {
		t.Fatalf("UpdateLine: %v", err)
	}
	inv, err := cart.Build(billing.Header{
		InvoiceNo: "TI -65",
		Date:      time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC),
		GRNo:      "GR-9",
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return inv, profile
}

func TestNewDocument(t *testing.T) {
	inv, profile := sampleInvoice(t, "24ABCDE1234F1Z5")
	doc := NewDocument(inv, profile)

	if doc.Date != "18 Oct 2026" || doc.StateCode != "24" {
		t.Errorf("date=%q state=%q", doc.Date, doc.StateCode)
	}
	if len(doc.Phones) != 2 || len(doc.Terms) != 2 {
		t.Errorf("phones=%v terms=%v", doc.Phones, doc.Terms)
	}
	if doc.DLNumbers != "(GJ-ADC-AA/1946) (GJ-ADC-AA/4967) (GJ-ADC-AA/1953) (GJ-ADC-AA/4856)" {
		t.Errorf("dl = %q", doc.DLNumbers)
	}
	row := doc.Rows[0]
	if row.GrossValue != "1000.00" || row.DiscountAmt != "100.00" || row.HalfRate != "6.0" || row.SGST != "54.00" || row.IGST != "" {
		t.Errorf("row = %+v", row)
	}
	if doc.Totals.Payable != "1008.00" || doc.AmountWords != "Rupees One Thousand and Eight Only" {
		t.Errorf("payable=%q words=%q", doc.Totals.Payable, doc.AmountWords)
	}
	if doc.TaxWords != "Rupees One Hundred and Eight Only" {
		t.Errorf("tax words = %q", doc.TaxWords)
	}
	if doc.HasIGST() {
		t.Error("intrastate invoice reports IGST")
	}
}

func TestNewDocument_Interstate(t *testing.T) {
	inv, profile := sampleInvoice(t, "27ABCDE1234F1Z5")
	doc := NewDocument(inv, profile)
	row := doc.Rows[0]
	if !row.Interstate || row.IGSTRate != "12.0" || row.IGST != "108.00" || row.SGST != "" {
		t.Errorf("row = %+v", row)
	}
	if !doc.HasIGST() || doc.StateCode != "27" {
		t.Errorf("HasIGST=%v state=%q", doc.HasIGST(), doc.StateCode)
	}
}

func TestRenderer_HTML(t *testing.T) {
	r, err := New(Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	inv, profile := sampleInvoice(t, "27ABCDE1234F1Z5")
	inv.PartyName = "A&B <Pharma>"

	var buf bytes.Buffer
	if err := r.HTML(&buf, inv, profile); err != nil {
		t.Fatalf("HTML: %v", err)
	}
	html := buf.String()
	for _, want := range []string{
		"INVOICE NO. TI -65",
		"GOPI DISTRIBUTOR",
		"Azithral 500",
		"1100.00",
		"GR No. GR-9",
		"A&amp;B &lt;Pharma&gt;",
		"Rupees One Thousand and Eight Only",
		"<th>IGST %</th>",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("HTML missing %q", want)
		}
	}
}

func TestRenderer_PDF(t *testing.T) {
	chrome := os.Getenv("CHROME_PATH")
	if chrome == "" {
		t.Skip("CHROME_PATH not set")
	}
	r, err := New(Options{ChromePath: chrome, Timeout: time.Minute})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	inv, profile := sampleInvoice(t, "24ABCDE1234F1Z5")
	pdf, err := r.PDF(context.Background(), inv, profile)
	if err != nil {
		t.Fatalf("PDF: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Errorf("output does not look like a PDF: %q", pdf[:8])
	}
}
