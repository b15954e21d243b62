package controllers

import (
	"gst-billing/database"
	"gst-billing/importer"
	"gst-billing/models"
	"gst-billing/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type PartyInput struct {
	Name               string           `json:"name" validate:"required"`
	GSTIN              string           `json:"gstin" normalize:"upper" validate:"omitempty,len=15,alphanum"`
	Address            string           `json:"address"`
	Phone              string           `json:"phone"`
	Email              string           `json:"email" validate:"omitempty,email"`
	DLNo1              string           `json:"dl_no1"`
	DLNo2              string           `json:"dl_no2"`
	Type               models.PartyType `json:"type" validate:"omitempty,oneof=WHOLESALE RETAIL"`
	CreditLimit        decimal.Decimal  `json:"credit_limit" normalize:"round2"`
	OutstandingBalance decimal.Decimal  `json:"outstanding_balance" normalize:"round2"`
	Notes              string           `json:"notes"`
	IsFavorite         bool             `json:"is_favorite"`
}

type PartyPatch struct {
	Name               *string           `json:"name" validate:"omitempty,min=1"`
	GSTIN              *string           `json:"gstin" normalize:"upper" validate:"omitempty,len=15,alphanum"`
	Address            *string           `json:"address"`
	Phone              *string           `json:"phone"`
	Email              *string           `json:"email" validate:"omitempty,email"`
	DLNo1              *string           `json:"dl_no1"`
	DLNo2              *string           `json:"dl_no2"`
	Type               *models.PartyType `json:"type" validate:"omitempty,oneof=WHOLESALE RETAIL"`
	CreditLimit        *decimal.Decimal  `json:"credit_limit" normalize:"round2"`
	OutstandingBalance *decimal.Decimal  `json:"outstanding_balance" normalize:"round2"`
	Notes              *string           `json:"notes"`
	IsFavorite         *bool             `json:"is_favorite"`
}

func (h *Handler) CreateParty(c *fiber.Ctx) error {
	var in PartyInput
	if err := bind(c, &in); err != nil {
		return err
	}
	if in.Type == "" {
		in.Type = models.PartyWholesale
	}

	party := models.Party{
		Name:               in.Name,
		GSTIN:              in.GSTIN,
		Address:            in.Address,
		Phone:              importer.NormalizePhone(in.Phone),
		Email:              in.Email,
		DLNo1:              in.DLNo1,
		DLNo2:              in.DLNo2,
		Type:               in.Type,
		CreditLimit:        in.CreditLimit,
		OutstandingBalance: in.OutstandingBalance,
		Notes:              in.Notes,
		IsFavorite:         in.IsFavorite,
	}
	if err := h.Store.Parties.Add(c.UserContext(), &party); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(party)
}

// UpdateParty changes the stored party only. Invoices already issued keep
// the name, GSTIN and address they were billed with.
func (h *Handler) UpdateParty(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var in PartyPatch
	if err := bind(c, &in); err != nil {
		return err
	}
	if in.Phone != nil {
		phone := importer.NormalizePhone(*in.Phone)
		in.Phone = &phone
	}

	fields := utils.UpdatesFromPtrDTO(&in, nil)
	if len(fields) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no fields to update")
	}
	ctx := c.UserContext()
	if err := h.Store.Parties.Update(ctx, id, fields); err != nil {
		return err
	}
	party, err := h.Store.Parties.Get(ctx, id)
	if err != nil {
		return err
	}
	return c.JSON(party)
}

func (h *Handler) GetParty(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	party, err := h.Store.Parties.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(party)
}

func (h *Handler) GetParties(c *fiber.Ctx) error {
	q := database.PartySearch(c.Query("q"))
	q.Limit, q.Offset = page(c, q.Limit, 1000)
	parties, err := h.Store.Parties.Query(c.UserContext(), q)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"parties": parties,
		"message": "success",
	})
}

func (h *Handler) DeleteParty(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := h.Store.Parties.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) ImportParties(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "missing file")
	}
	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	res, err := h.Importer.Parties(c.UserContext(), f)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}
