package controllers

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gst-billing/database"
	"gst-billing/logger"
	"gst-billing/models"
	"gst-billing/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/valyala/fasthttp"
)

type ProductInput struct {
	Name         string          `json:"name" validate:"required"`
	Batch        string          `json:"batch" normalize:"upper"`
	Expiry       string          `json:"expiry"`
	HSN          string          `json:"hsn"`
	GSTRate      decimal.Decimal `json:"gst_rate"`
	MRP          decimal.Decimal `json:"mrp" normalize:"round2"`
	OldMRP       decimal.Decimal `json:"old_mrp" normalize:"round2"`
	PurchaseRate decimal.Decimal `json:"purchase_rate" normalize:"round2"`
	SaleRate     decimal.Decimal `json:"sale_rate" normalize:"round2"`
	Stock        int             `json:"stock"`
	Manufacturer string          `json:"manufacturer"`
	Category     string          `json:"category"`
	Barcode      string          `json:"barcode"`
}

// ProductPatch is a partial product update; absent fields are untouched.
type ProductPatch struct {
	Name         *string          `json:"name" validate:"omitempty,min=1"`
	Batch        *string          `json:"batch" normalize:"upper"`
	Expiry       *string          `json:"expiry"`
	HSN          *string          `json:"hsn"`
	GSTRate      *decimal.Decimal `json:"gst_rate"`
	MRP          *decimal.Decimal `json:"mrp" normalize:"round2"`
	OldMRP       *decimal.Decimal `json:"old_mrp" normalize:"round2"`
	PurchaseRate *decimal.Decimal `json:"purchase_rate" normalize:"round2"`
	SaleRate     *decimal.Decimal `json:"sale_rate" normalize:"round2"`
	Stock        *int             `json:"stock"`
	Manufacturer *string          `json:"manufacturer"`
	Category     *string          `json:"category"`
	Barcode      *string          `json:"barcode"`
}

func checkRates(values ...*decimal.Decimal) error {
	for _, v := range values {
		if v != nil && v.IsNegative() {
			return fiber.NewError(fiber.StatusUnprocessableEntity, "rates and prices must not be negative")
		}
	}
	return nil
}

func (h *Handler) CreateProduct(c *fiber.Ctx) error {
	var in ProductInput
	if err := bind(c, &in); err != nil {
		return err
	}
	if err := checkRates(&in.GSTRate, &in.MRP, &in.OldMRP, &in.PurchaseRate, &in.SaleRate); err != nil {
		return err
	}

	product := models.Product{
		Name:         in.Name,
		Batch:        in.Batch,
		Expiry:       in.Expiry,
		HSN:          in.HSN,
		GSTRate:      in.GSTRate,
		MRP:          in.MRP,
		OldMRP:       in.OldMRP,
		PurchaseRate: in.PurchaseRate,
		SaleRate:     in.SaleRate,
		Stock:        in.Stock,
		Manufacturer: in.Manufacturer,
		Category:     in.Category,
		Barcode:      in.Barcode,
	}
	if err := h.Store.Products.Add(c.UserContext(), &product); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

func (h *Handler) UpdateProduct(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var in ProductPatch
	if err := bind(c, &in); err != nil {
		return err
	}
	if err := checkRates(in.GSTRate, in.MRP, in.OldMRP, in.PurchaseRate, in.SaleRate); err != nil {
		return err
	}

	fields := utils.UpdatesFromPtrDTO(&in, nil)
	if len(fields) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no fields to update")
	}
	ctx := c.UserContext()
	if err := h.Store.Products.Update(ctx, id, fields); err != nil {
		return err
	}
	product, err := h.Store.Products.Get(ctx, id)
	if err != nil {
		return err
	}
	return c.JSON(product)
}

func (h *Handler) GetProduct(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	product, err := h.Store.Products.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(product)
}

// GetProducts lists the catalog, or searches it with ?q= and ?mode=fast|accurate.
func (h *Handler) GetProducts(c *fiber.Ctx) error {
	q := database.ProductSearch(c.Query("q"), c.Query("mode", database.SearchFast))
	q.Limit, q.Offset = page(c, q.Limit, 1000)
	products, err := h.Store.Products.Query(c.UserContext(), q)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"products": products,
		"message":  "success",
	})
}

// DeleteProduct removes a catalog entry. Past invoices keep their snapshot.
func (h *Handler) DeleteProduct(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := h.Store.Products.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) ImportProducts(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "missing file")
	}
	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	res, err := h.Importer.Products(c.UserContext(), f)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

const streamHeartbeat = 15 * time.Second

// StreamProducts pushes the product list as server-sent events: once on
// connect and again after every committed change to the catalog, invoice
// commits included.
func (h *Handler) StreamProducts(c *fiber.Ctx) error {
	q := database.ProductSearch(c.Query("q"), c.Query("mode", database.SearchFast))

	// The stream outlives the handler, so it cannot use the request context.
	ctx, cancel := context.WithCancel(context.Background())
	updates, err := h.Store.Products.Watch(ctx, q)
	if err != nil {
		cancel()
		return err
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	log := logger.WithComponent("stream")
	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()
		ticker := time.NewTicker(streamHeartbeat)
		defer ticker.Stop()
		for {
			select {
			case rows, ok := <-updates:
				if !ok {
					return
				}
				data, err := json.Marshal(rows)
				if err != nil {
					log.Error().Err(err).Msg("encode products")
					return
				}
				fmt.Fprintf(w, "event: products\ndata: %s\n\n", data)
			case <-ticker.C:
				fmt.Fprint(w, ": ping\n\n")
			}
			if err := w.Flush(); err != nil {
				// client went away
				return
			}
		}
	}))
	return nil
}
