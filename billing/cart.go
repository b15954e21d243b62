package billing

import (
	"time"

	"gst-billing/models"

	"github.com/shopspring/decimal"
)

// LineEdit carries the editable fields of a line. Nil fields are left as is.
type LineEdit struct {
	Quantity        *int
	FreeQuantity    *int
	DiscountPercent *decimal.Decimal
	SaleRate        *decimal.Decimal
	Batch           *string
	MRP             *decimal.Decimal
}

// Header is the non-line data of an invoice under construction.
type Header struct {
	InvoiceNo string
	Date      time.Time
	Type      models.InvoiceType
	Status    models.InvoiceStatus
	GRNo      string
	VehicleNo string
	Transport string
}

// Cart is an invoice being assembled. Every mutation re-prices the lines it
// touches, so Lines always reflects the current party and profile.
// A Cart is not safe for concurrent use.
type Cart struct {
	profile models.CompanyProfile
	party   *models.Party
	lines   []models.InvoiceItem
}

func NewCart(profile models.CompanyProfile) *Cart {
	return &Cart{profile: profile}
}

// Lines returns a copy of the current lines in insertion order.
func (c *Cart) Lines() []models.InvoiceItem {
	out := make([]models.InvoiceItem, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Len() int { return len(c.lines) }

func (c *Cart) Party() *models.Party { return c.party }

func (c *Cart) Profile() models.CompanyProfile { return c.profile }

func (c *Cart) sellerState() string { return SellerStateCode(c.profile) }

func (c *Cart) buyerState() string { return BuyerStateCode(c.party, c.profile) }

// AddLine appends a product at quantity 1. A product can appear only once.
// The GST rate is fixed now from the current profile policy.
func (c *Cart) AddLine(product models.Product) (models.InvoiceItem, error) {
	return c.addLine(product, ApplicableGSTRate(product, c.profile))
}

// AddLineAtRate appends a product with a rate captured earlier, when the
// line was first added under a possibly different profile policy. The
// rate must be either the product's own rate or the profile default rate.
func (c *Cart) AddLineAtRate(product models.Product, rate decimal.Decimal) (models.InvoiceItem, error) {
	if !rate.Equal(product.GSTRate) && !rate.Equal(c.profile.DefaultGSTRate) {
		return models.InvoiceItem{}, &LineError{
			Err:       ErrInvalidLine,
			Index:     len(c.lines),
			ProductID: product.ID,
			Details:   "gst rate " + rate.String() + " is neither the product rate nor the default rate",
		}
	}
	return c.addLine(product, rate)
}

func (c *Cart) addLine(product models.Product, rate decimal.Decimal) (models.InvoiceItem, error) {
	for i, line := range c.lines {
		if line.ProductID == product.ID {
			return models.InvoiceItem{}, &LineError{Err: ErrDuplicateLine, Index: i, ProductID: product.ID}
		}
	}
	line := NewLineItem(product, rate)
	line = PriceLine(line, c.sellerState(), c.buyerState())
	c.lines = append(c.lines, line)
	return line, nil
}

// UpdateLine applies an edit to the line at index and re-prices it.
func (c *Cart) UpdateLine(index int, edit LineEdit) (models.InvoiceItem, error) {
	if index < 0 || index >= len(c.lines) {
		return models.InvoiceItem{}, &LineError{Err: ErrLineNotFound, Index: index}
	}
	line := c.lines[index]
	if err := checkEdit(edit); err != "" {
		return models.InvoiceItem{}, &LineError{Err: ErrInvalidLine, Index: index, ProductID: line.ProductID, Details: err}
	}
	if edit.Quantity != nil {
		line.Quantity = *edit.Quantity
	}
	if edit.FreeQuantity != nil {
		line.FreeQuantity = *edit.FreeQuantity
	}
	if edit.DiscountPercent != nil {
		line.DiscountPercent = *edit.DiscountPercent
	}
	if edit.SaleRate != nil {
		line.SaleRate = *edit.SaleRate
	}
	if edit.Batch != nil {
		line.Batch = *edit.Batch
	}
	if edit.MRP != nil {
		line.MRP = *edit.MRP
	}
	line = PriceLine(line, c.sellerState(), c.buyerState())
	c.lines[index] = line
	return line, nil
}

func checkEdit(edit LineEdit) string {
	switch {
	case edit.Quantity != nil && *edit.Quantity < 0:
		return "quantity must not be negative"
	case edit.FreeQuantity != nil && *edit.FreeQuantity < 0:
		return "free quantity must not be negative"
	case edit.DiscountPercent != nil && (edit.DiscountPercent.IsNegative() || edit.DiscountPercent.GreaterThan(hundred)):
		return "discount must be between 0 and 100"
	case edit.SaleRate != nil && edit.SaleRate.IsNegative():
		return "sale rate must not be negative"
	case edit.MRP != nil && edit.MRP.IsNegative():
		return "mrp must not be negative"
	}
	return ""
}

// RemoveLine deletes the line at index, keeping the order of the rest.
func (c *Cart) RemoveLine(index int) error {
	if index < 0 || index >= len(c.lines) {
		return &LineError{Err: ErrLineNotFound, Index: index}
	}
	c.lines = append(c.lines[:index], c.lines[index+1:]...)
	return nil
}

// SetParty selects the buyer and re-prices every line, since the tax
// jurisdiction may have changed. nil clears the party.
func (c *Cart) SetParty(party *models.Party) {
	if party != nil {
		p := *party
		party = &p
	}
	c.party = party
	c.Recompute()
}

// SetProfile swaps the seller profile and re-prices every line. Rates of
// existing lines are kept.
func (c *Cart) SetProfile(profile models.CompanyProfile) {
	c.profile = profile
	c.Recompute()
}

// Recompute re-prices all lines. Calling it twice is the same as once.
func (c *Cart) Recompute() {
	seller, buyer := c.sellerState(), c.buyerState()
	for i := range c.lines {
		c.lines[i] = PriceLine(c.lines[i], seller, buyer)
	}
}

// Totals aggregates the current lines.
func (c *Cart) Totals() Totals {
	return Assemble(c.lines)
}

// CashSaleParty is the party name recorded on sales without a party.
const CashSaleParty = "Cash Sale"

// Build validates the cart and produces an invoice record ready for the
// ledger. The cart itself is left untouched.
func (c *Cart) Build(h Header) (*models.Invoice, error) {
	if h.Type == "" {
		h.Type = models.InvoiceWholesale
	}
	if h.Status == "" {
		h.Status = models.StatusPaid
	}
	if h.Type == models.InvoiceWholesale && c.party == nil {
		return nil, ErrMissingParty
	}
	if len(c.lines) == 0 {
		return nil, ErrEmptyInvoice
	}

	totals := c.Totals()
	invoice := &models.Invoice{
		InvoiceNo:      h.InvoiceNo,
		Date:           h.Date,
		InvoiceType:    h.Type,
		Status:         h.Status,
		PartyStateCode: c.buyerState(),
		GRNo:           h.GRNo,
		VehicleNo:      h.VehicleNo,
		Transport:      h.Transport,
		Items:          c.Lines(),
		TotalTaxable:   totals.Taxable,
		TotalCGST:      totals.CGST,
		TotalSGST:      totals.SGST,
		TotalIGST:      totals.IGST,
		GrandTotal:     totals.Grand,
		RoundOff:       totals.RoundOff,
	}
	if c.party == nil {
		invoice.PartyName = CashSaleParty
	} else {
		id := c.party.ID
		invoice.PartyID = &id
		invoice.PartyName = c.party.Name
		invoice.PartyGSTIN = c.party.GSTIN
		invoice.PartyAddress = c.party.Address
	}
	return invoice, nil
}
