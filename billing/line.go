package billing

import (
	"gst-billing/models"

	"github.com/shopspring/decimal"
)

// ApplicableGSTRate picks the rate a new line is billed at. When the
// profile enforces a default rate it wins over the product's own rate,
// and a default of 0 stays 0.
func ApplicableGSTRate(product models.Product, profile models.CompanyProfile) decimal.Decimal {
	if profile.UseDefaultGST {
		return profile.DefaultGSTRate
	}
	return product.GSTRate
}

// NewLineItem snapshots a product into an unpriced line with quantity 1.
func NewLineItem(product models.Product, gstRate decimal.Decimal) models.InvoiceItem {
	return models.InvoiceItem{
		ProductID:       product.ID,
		Name:            product.Name,
		Batch:           product.Batch,
		Expiry:          product.Expiry,
		HSN:             product.HSN,
		Manufacturer:    product.Manufacturer,
		GSTRate:         gstRate,
		MRP:             product.MRP,
		OldMRP:          product.PreviousMRP(),
		SaleRate:        product.SaleRate,
		Quantity:        1,
		FreeQuantity:    0,
		DiscountPercent: decimal.Zero,
		TaxableValue:    decimal.Zero,
		CGSTAmount:      decimal.Zero,
		SGSTAmount:      decimal.Zero,
		IGSTAmount:      decimal.Zero,
		TotalAmount:     decimal.Zero,
	}
}

// PriceLine recomputes the derived amounts of a line from its editable
// fields. Free units are never charged.
func PriceLine(item models.InvoiceItem, sellerState, buyerState string) models.InvoiceItem {
	split := ComputeTax(TaxInput{
		BaseAmount:      item.GrossValue(),
		DiscountPercent: item.DiscountPercent,
		GSTRate:         item.GSTRate,
		SellerStateCode: sellerState,
		BuyerStateCode:  buyerState,
	})
	item.TaxableValue = split.TaxableValue
	item.CGSTAmount = split.CGST
	item.SGSTAmount = split.SGST
	item.IGSTAmount = split.IGST
	item.TotalAmount = split.Total()
	return item
}
