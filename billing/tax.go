package billing

import (
	"gst-billing/models"

	"github.com/shopspring/decimal"
)

// DefaultStateCode is used when the seller profile carries no GSTIN.
const DefaultStateCode = "24"

var (
	hundred = decimal.NewFromInt(100)
	two     = decimal.NewFromInt(2)
)

// TaxInput is the pricing data of one line. BaseAmount is rate times
// billed quantity. An empty BuyerStateCode means the sale stays inside
// the seller's state.
type TaxInput struct {
	BaseAmount      decimal.Decimal
	DiscountPercent decimal.Decimal
	GSTRate         decimal.Decimal
	SellerStateCode string
	BuyerStateCode  string
}

// TaxSplit is the result of ComputeTax. Exactly one of {CGST+SGST, IGST}
// is non-zero for a positive rate.
type TaxSplit struct {
	TaxableValue decimal.Decimal
	CGST         decimal.Decimal
	SGST         decimal.Decimal
	IGST         decimal.Decimal
}

// Tax is the sum of the three components.
func (s TaxSplit) Tax() decimal.Decimal {
	return s.CGST.Add(s.SGST).Add(s.IGST)
}

// Total is taxable value plus tax.
func (s TaxSplit) Total() decimal.Decimal {
	return s.TaxableValue.Add(s.Tax())
}

// ComputeTax applies the discount and splits GST by jurisdiction: an
// intrastate sale pays half the rate as CGST and half as SGST, an
// interstate sale pays the whole rate as IGST. No rounding is applied.
func ComputeTax(in TaxInput) TaxSplit {
	discount := in.BaseAmount.Mul(in.DiscountPercent).Div(hundred)
	taxable := in.BaseAmount.Sub(discount)
	tax := taxable.Mul(in.GSTRate).Div(hundred)

	buyer := in.BuyerStateCode
	if buyer == "" {
		buyer = in.SellerStateCode
	}
	if buyer != in.SellerStateCode {
		return TaxSplit{TaxableValue: taxable, CGST: decimal.Zero, SGST: decimal.Zero, IGST: tax}
	}
	half := tax.Div(two)
	return TaxSplit{TaxableValue: taxable, CGST: half, SGST: half, IGST: decimal.Zero}
}

// StateCode returns the two-character state prefix of a GSTIN.
func StateCode(gstin string) string {
	return models.GSTINStateCode(gstin)
}

// SellerStateCode is the seller's state, falling back to DefaultStateCode.
func SellerStateCode(profile models.CompanyProfile) string {
	if code := StateCode(profile.GSTIN); code != "" {
		return code
	}
	return DefaultStateCode
}

// BuyerStateCode is the party's state. A missing party or a party without
// GSTIN is treated as local to the seller.
func BuyerStateCode(party *models.Party, profile models.CompanyProfile) string {
	if party != nil {
		if code := party.StateCode(); code != "" {
			return code
		}
	}
	return SellerStateCode(profile)
}
