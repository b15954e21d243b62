package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type InvoiceType string

const (
	InvoiceWholesale InvoiceType = "WHOLESALE"
	InvoiceRetail    InvoiceType = "RETAIL"
)

type InvoiceStatus string

const (
	StatusPaid      InvoiceStatus = "PAID"
	StatusPending   InvoiceStatus = "PENDING"
	StatusCancelled InvoiceStatus = "CANCELLED"
)

// Invoice is written once by the ledger and never updated. The party fields
// are a snapshot taken at billing time.
type Invoice struct {
	ID          uint          `json:"id" gorm:"primaryKey"`
	Reference   string        `json:"reference" gorm:"size:36;uniqueIndex"`
	InvoiceNo   string        `json:"invoice_no" gorm:"size:32;uniqueIndex"`
	Date        time.Time     `json:"date" gorm:"index"`
	InvoiceType InvoiceType   `json:"invoice_type" gorm:"size:16;not null"`
	Status      InvoiceStatus `json:"status" gorm:"size:16;not null"`

	// Party snapshot
	PartyID        *uint  `json:"party_id" gorm:"index"`
	PartyName      string `json:"party_name"`
	PartyGSTIN     string `json:"party_gstin"`
	PartyAddress   string `json:"party_address"`
	PartyStateCode string `json:"party_state_code" gorm:"size:2"`

	// Transport
	GRNo      string `json:"gr_no"`
	VehicleNo string `json:"vehicle_no"`
	Transport string `json:"transport"`

	Items []InvoiceItem `json:"items" gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`

	// Computed amounts are stored unrounded; the scale must hold what
	// decimal division produces.
	TotalTaxable decimal.Decimal `json:"total_taxable" gorm:"type:numeric(30,16)"`
	TotalCGST    decimal.Decimal `json:"total_cgst" gorm:"type:numeric(30,16)"`
	TotalSGST    decimal.Decimal `json:"total_sgst" gorm:"type:numeric(30,16)"`
	TotalIGST    decimal.Decimal `json:"total_igst" gorm:"type:numeric(30,16)"`
	GrandTotal   decimal.Decimal `json:"grand_total" gorm:"type:numeric(30,16)"`
	RoundOff     decimal.Decimal `json:"round_off" gorm:"type:numeric(30,16)"`

	CreatedAt time.Time `json:"created_at"`
}

func (invoice *Invoice) BeforeCreate(tx *gorm.DB) (err error) {
	if invoice.Reference == "" {
		invoice.Reference = uuid.NewString()
	}
	return
}

// Payable is the rounded amount charged to the buyer.
func (invoice *Invoice) Payable() decimal.Decimal {
	return invoice.GrandTotal.Add(invoice.RoundOff)
}

// InvoiceItem is a priced line copied from a product. It carries everything
// a renderer needs for the per-jurisdiction tax table.
type InvoiceItem struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	InvoiceID uint `json:"-" gorm:"index"`
	ProductID uint `json:"product_id" gorm:"not null;index"` // no FK: products may be deleted later

	Name         string          `json:"name"`
	Batch        string          `json:"batch"`
	Expiry       string          `json:"expiry"`
	HSN          string          `json:"hsn"`
	Manufacturer string          `json:"manufacturer"`
	GSTRate      decimal.Decimal `json:"gst_rate" gorm:"type:numeric(9,4)"`
	MRP          decimal.Decimal `json:"mrp" gorm:"type:numeric(18,6)"`
	OldMRP       decimal.Decimal `json:"old_mrp" gorm:"type:numeric(18,6)"`
	SaleRate     decimal.Decimal `json:"sale_rate" gorm:"type:numeric(18,6)"`

	Quantity        int             `json:"quantity"`
	FreeQuantity    int             `json:"free_quantity"`
	DiscountPercent decimal.Decimal `json:"discount_percent" gorm:"type:numeric(30,16)"`

	TaxableValue decimal.Decimal `json:"taxable_value" gorm:"type:numeric(30,16)"`
	CGSTAmount   decimal.Decimal `json:"cgst_amount" gorm:"type:numeric(30,16)"`
	SGSTAmount   decimal.Decimal `json:"sgst_amount" gorm:"type:numeric(30,16)"`
	IGSTAmount   decimal.Decimal `json:"igst_amount" gorm:"type:numeric(30,16)"`
	TotalAmount  decimal.Decimal `json:"total_amount" gorm:"type:numeric(30,16)"`
}

// GrossValue is sale rate times billed quantity, before discount.
func (item InvoiceItem) GrossValue() decimal.Decimal {
	return item.SaleRate.Mul(decimal.NewFromInt(int64(item.Quantity)))
}

// DiscountAmount is the part of GrossValue removed by the line discount.
func (item InvoiceItem) DiscountAmount() decimal.Decimal {
	return item.GrossValue().Sub(item.TaxableValue)
}

// StockUnits is the number of units leaving stock, free units included.
func (item InvoiceItem) StockUnits() int {
	return item.Quantity + item.FreeQuantity
}
