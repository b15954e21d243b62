package controllers

import (
	"gst-billing/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type SettingsInput struct {
	CompanyName    string            `json:"company_name" validate:"required"`
	AddressLine1   string            `json:"address_line1"`
	AddressLine2   string            `json:"address_line2"`
	GSTIN          string            `json:"gstin" normalize:"upper" validate:"omitempty,len=15,alphanum"`
	DLNo1          string            `json:"dl_no1"`
	DLNo2          string            `json:"dl_no2"`
	DLNo3          string            `json:"dl_no3"`
	DLNo4          string            `json:"dl_no4"`
	Phone          string            `json:"phone"`
	Email          string            `json:"email" validate:"omitempty,email"`
	Terms          string            `json:"terms"`
	UseDefaultGST  bool              `json:"use_default_gst"`
	DefaultGSTRate decimal.Decimal   `json:"default_gst_rate"`
	Preferences    datatypes.JSONMap `json:"preferences"`
}

func (h *Handler) GetSettings(c *fiber.Ctx) error {
	profile, err := h.Store.Settings.Profile(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(profile)
}

// UpdateSettings replaces the seller profile. Open carts pick it up on
// their next preview; committed invoices are not re-priced.
func (h *Handler) UpdateSettings(c *fiber.Ctx) error {
	var in SettingsInput
	if err := bind(c, &in); err != nil {
		return err
	}
	if err := checkRates(&in.DefaultGSTRate); err != nil {
		return err
	}

	profile := models.CompanyProfile{
		CompanyName:    in.CompanyName,
		AddressLine1:   in.AddressLine1,
		AddressLine2:   in.AddressLine2,
		GSTIN:          in.GSTIN,
		DLNo1:          in.DLNo1,
		DLNo2:          in.DLNo2,
		DLNo3:          in.DLNo3,
		DLNo4:          in.DLNo4,
		Phone:          in.Phone,
		Email:          in.Email,
		Terms:          in.Terms,
		UseDefaultGST:  in.UseDefaultGST,
		DefaultGSTRate: in.DefaultGSTRate,
		Preferences:    in.Preferences,
	}
	if err := h.Store.Settings.SaveProfile(c.UserContext(), &profile); err != nil {
		return err
	}
	return c.JSON(profile)
}
