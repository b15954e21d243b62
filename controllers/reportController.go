package controllers

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (h *Handler) Dashboard(c *fiber.Ctx) error {
	d, err := h.Reports.Dashboard(c.UserContext(), time.Now())
	if err != nil {
		return err
	}
	return c.JSON(d)
}

// SalesRegister downloads invoices dated from ?from= up to and including
// ?to= (YYYY-MM-DD) as a spreadsheet.
func (h *Handler) SalesRegister(c *fiber.Ctx) error {
	var from, to time.Time
	var err error
	if s := c.Query("from"); s != "" {
		if from, err = time.ParseInLocation(dateLayout, s, time.Local); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "from must be YYYY-MM-DD")
		}
	}
	if s := c.Query("to"); s != "" {
		if to, err = time.ParseInLocation(dateLayout, s, time.Local); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "to must be YYYY-MM-DD")
		}
		to = to.AddDate(0, 0, 1)
	}

	var buf bytes.Buffer
	if _, err := h.Reports.ExportSales(c.UserContext(), &buf, from, to); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, xlsxMIME)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="sales-%s.xlsx"`, time.Now().Format("20060102")))
	return c.Send(buf.Bytes())
}
