package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Stock is only changed by a manual edit or by
// committing an invoice through the ledger.
type Product struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	Name         string          `json:"name" gorm:"not null;index"`
	Batch        string          `json:"batch" gorm:"index"`
	Expiry       string          `json:"expiry"`
	HSN          string          `json:"hsn" gorm:"index"`
	GSTRate      decimal.Decimal `json:"gst_rate" gorm:"type:numeric(9,4)"`
	MRP          decimal.Decimal `json:"mrp" gorm:"type:numeric(18,6)"`
	OldMRP       decimal.Decimal `json:"old_mrp" gorm:"type:numeric(18,6)"`
	PurchaseRate decimal.Decimal `json:"purchase_rate" gorm:"type:numeric(18,6)"`
	SaleRate     decimal.Decimal `json:"sale_rate" gorm:"type:numeric(18,6)"`
	Stock        int             `json:"stock"`
	Manufacturer string          `json:"manufacturer"`
	Category     string          `json:"category" gorm:"index"`
	Barcode      string          `json:"barcode" gorm:"index"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// PreviousMRP is the MRP printed as "old MRP" on invoices.
func (p Product) PreviousMRP() decimal.Decimal {
	if p.OldMRP.IsZero() {
		return p.MRP
	}
	return p.OldMRP
}
