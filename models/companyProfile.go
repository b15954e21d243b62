package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// ProfileID is the fixed primary key of the seller profile row.
const ProfileID uint = 1

// CompanyProfile is the seller identity. Only UseDefaultGST and
// DefaultGSTRate take part in tax computation; the rest is printed.
type CompanyProfile struct {
	ID             uint              `json:"id" gorm:"primaryKey"`
	CompanyName    string            `json:"company_name" gorm:"not null"`
	AddressLine1   string            `json:"address_line1"`
	AddressLine2   string            `json:"address_line2"`
	GSTIN          string            `json:"gstin" gorm:"size:15"`
	DLNo1          string            `json:"dl_no1"`
	DLNo2          string            `json:"dl_no2"`
	DLNo3          string            `json:"dl_no3"`
	DLNo4          string            `json:"dl_no4"`
	Phone          string            `json:"phone"`
	Email          string            `json:"email"`
	Terms          string            `json:"terms"`
	UseDefaultGST  bool              `json:"use_default_gst"`
	DefaultGSTRate decimal.Decimal   `json:"default_gst_rate" gorm:"type:numeric(9,4)"`
	Preferences    datatypes.JSONMap `json:"preferences"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

func (CompanyProfile) TableName() string {
	return "settings"
}

// DefaultProfile is the profile written on first start.
func DefaultProfile() CompanyProfile {
	return CompanyProfile{
		ID:             ProfileID,
		CompanyName:    "GOPI DISTRIBUTOR",
		AddressLine1:   "74/20/4, Navyug Colony",
		AddressLine2:   "Bhulabhai Park Crossroad, Ahmedabad-22",
		GSTIN:          "24AADPO7411Q1ZE",
		DLNo1:          "GJ-ADC-AA/1946",
		DLNo2:          "GJ-ADC-AA/4967",
		DLNo3:          "GJ-ADC-AA/1953",
		DLNo4:          "GJ-ADC-AA/4856",
		Phone:          "07925383834, 8460143984",
		Email:          "info@gopidistributor.com",
		Terms:          "Bill No. is must while returning EXP. Products\nE.&.O.E.",
		UseDefaultGST:  true,
		DefaultGSTRate: decimal.NewFromInt(5),
		Preferences: datatypes.JSONMap{
			"theme":            "blue",
			"platform":         "windows",
			"dark_mode":        "system",
			"invoice_template": "authentic",
		},
	}
}
