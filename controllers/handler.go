// Package controllers holds the fiber handlers of the billing API.
package controllers

import (
	"strconv"

	"gst-billing/database"
	"gst-billing/importer"
	"gst-billing/ledger"
	"gst-billing/middlewares"
	"gst-billing/render"
	"gst-billing/reports"
	"gst-billing/utils"

	"github.com/gofiber/fiber/v2"
)

// Handler carries the services the routes call into. Renderer may be nil,
// in which case document routes answer 503.
type Handler struct {
	Store                *database.Store
	Ledger               *ledger.Ledger
	Renderer             *render.Renderer
	Reports              *reports.Service
	Importer             *importer.Importer
	Auth                 *middlewares.Auth
	OperatorPasswordHash string
}

func idParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

// page reads ?limit=&offset=, capping limit at max.
func page(c *fiber.Ctx, def, max int) (limit, offset int) {
	limit = c.QueryInt("limit", def)
	if limit <= 0 || limit > max {
		limit = def
	}
	offset = c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// bind parses the body, cleans it with utils.NormalizeDTO and then validates
// it, so that tags like len=15 see the trimmed value.
func bind(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	utils.NormalizeDTO(dst)
	return middlewares.ValidateStruct(dst)
}
