package controllers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gst-billing/billing"
	"gst-billing/database"
	"gst-billing/models"
	"gst-billing/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// InvoiceLineInput is one cart line. GSTRate echoes the rate the line was
// priced at when the product was added, so a later settings change does
// not re-rate it; without it the current profile policy applies.
type InvoiceLineInput struct {
	ProductID       uint             `json:"product_id" validate:"required"`
	GSTRate         *decimal.Decimal `json:"gst_rate"`
	Quantity        *int             `json:"quantity"`
	FreeQuantity    *int             `json:"free_quantity"`
	DiscountPercent *decimal.Decimal `json:"discount_percent"`
	SaleRate        *decimal.Decimal `json:"sale_rate"`
	Batch           *string          `json:"batch"`
	MRP             *decimal.Decimal `json:"mrp"`
}

func (in InvoiceLineInput) edit() (billing.LineEdit, bool) {
	e := billing.LineEdit{
		Quantity:        in.Quantity,
		FreeQuantity:    in.FreeQuantity,
		DiscountPercent: in.DiscountPercent,
		SaleRate:        in.SaleRate,
		Batch:           in.Batch,
		MRP:             in.MRP,
	}
	changed := e.Quantity != nil || e.FreeQuantity != nil || e.DiscountPercent != nil ||
		e.SaleRate != nil || e.Batch != nil || e.MRP != nil
	return e, changed
}

// InvoiceInput is a whole cart as sent by the billing screen. Lines are
// replayed onto a fresh cart in order, so the server prices everything.
type InvoiceInput struct {
	InvoiceType models.InvoiceType   `json:"invoice_type" validate:"omitempty,oneof=WHOLESALE RETAIL"`
	Status      models.InvoiceStatus `json:"status" validate:"omitempty,oneof=PAID PENDING CANCELLED"`
	PartyID     *uint                `json:"party_id"`
	Date        string               `json:"date"`
	GRNo        string               `json:"gr_no"`
	VehicleNo   string               `json:"vehicle_no" normalize:"upper"`
	Transport   string               `json:"transport"`
	Items       []InvoiceLineInput   `json:"items" validate:"dive"`
}

func (h *Handler) buildInvoice(ctx context.Context, in InvoiceInput) (*models.Invoice, error) {
	profile, err := h.Store.Settings.Profile(ctx)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	cart := billing.NewCart(*profile)

	if in.PartyID != nil {
		party, err := h.Store.Parties.Get(ctx, *in.PartyID)
		if errors.Is(err, database.ErrNotFound) {
			return nil, fiber.NewError(fiber.StatusUnprocessableEntity, fmt.Sprintf("party %d not found", *in.PartyID))
		}
		if err != nil {
			return nil, err
		}
		cart.SetParty(party)
	}

	for i, item := range in.Items {
		product, err := h.Store.Products.Get(ctx, item.ProductID)
		if errors.Is(err, database.ErrNotFound) {
			return nil, fiber.NewError(fiber.StatusUnprocessableEntity, fmt.Sprintf("line %d: product %d not found", i, item.ProductID))
		}
		if err != nil {
			return nil, err
		}
		if item.GSTRate != nil {
			_, err = cart.AddLineAtRate(*product, *item.GSTRate)
		} else {
			_, err = cart.AddLine(*product)
		}
		if err != nil {
			return nil, err
		}
		if edit, ok := item.edit(); ok {
			if _, err := cart.UpdateLine(cart.Len()-1, edit); err != nil {
				return nil, err
			}
		}
	}

	header := billing.Header{
		Type:      in.InvoiceType,
		Status:    in.Status,
		GRNo:      in.GRNo,
		VehicleNo: in.VehicleNo,
		Transport: in.Transport,
	}
	if in.Date != "" {
		d, err := time.ParseInLocation(dateLayout, in.Date, time.Local)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "date must be YYYY-MM-DD")
		}
		header.Date = d
	}
	return cart.Build(header)
}

func invoiceView(inv *models.Invoice) fiber.Map {
	return fiber.Map{
		"invoice":         inv,
		"payable":         inv.Payable(),
		"amount_in_words": utils.AmountInWords(inv.Payable()),
		"hsn_summary":     billing.HSNSummary(inv.Items),
	}
}

// PreviewInvoice prices a cart and shows the number it would receive,
// without writing anything.
func (h *Handler) PreviewInvoice(c *fiber.Ctx) error {
	var in InvoiceInput
	if err := bind(c, &in); err != nil {
		return err
	}
	ctx := c.UserContext()
	inv, err := h.buildInvoice(ctx, in)
	if err != nil {
		return err
	}
	if inv.InvoiceNo, err = h.Ledger.PeekNumber(ctx, inv.InvoiceType); err != nil {
		return err
	}
	if inv.Date.IsZero() {
		inv.Date = time.Now()
	}
	return c.JSON(invoiceView(inv))
}

// CreateInvoice prices the cart and commits it with its stock movements.
func (h *Handler) CreateInvoice(c *fiber.Ctx) error {
	var in InvoiceInput
	if err := bind(c, &in); err != nil {
		return err
	}
	ctx := c.UserContext()
	inv, err := h.buildInvoice(ctx, in)
	if err != nil {
		return err
	}
	saved, err := h.Ledger.Commit(ctx, inv)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(invoiceView(saved))
}

func (h *Handler) GetInvoices(c *fiber.Ctx) error {
	q := database.Query{Order: "date DESC, id DESC"}
	var where []string
	if s := strings.ToUpper(c.Query("status")); s != "" {
		where = append(where, "status = ?")
		q.Args = append(q.Args, s)
	}
	if t := strings.ToUpper(c.Query("type")); t != "" {
		where = append(where, "invoice_type = ?")
		q.Args = append(q.Args, t)
	}
	if p := c.QueryInt("party_id", 0); p > 0 {
		where = append(where, "party_id = ?")
		q.Args = append(q.Args, p)
	}
	q.Where = strings.Join(where, " AND ")
	q.Limit, q.Offset = page(c, 50, 500)

	invoices, err := h.Store.Invoices.Query(c.UserContext(), q)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"invoices": invoices,
		"message":  "success",
	})
}

func (h *Handler) loadInvoice(c *fiber.Ctx) (*models.Invoice, error) {
	id, err := idParam(c)
	if err != nil {
		return nil, err
	}
	return h.Store.Invoices.Get(c.UserContext(), id)
}

func (h *Handler) GetInvoice(c *fiber.Ctx) error {
	inv, err := h.loadInvoice(c)
	if err != nil {
		return err
	}
	return c.JSON(invoiceView(inv))
}

func (h *Handler) documentSources(c *fiber.Ctx) (*models.Invoice, *models.CompanyProfile, error) {
	if h.Renderer == nil {
		return nil, nil, fiber.NewError(fiber.StatusServiceUnavailable, "document rendering not configured")
	}
	inv, err := h.loadInvoice(c)
	if err != nil {
		return nil, nil, err
	}
	profile, err := h.Store.Settings.Profile(c.UserContext())
	if err != nil {
		return nil, nil, err
	}
	return inv, profile, nil
}

// InvoiceHTML renders the printable page with the current seller profile.
func (h *Handler) InvoiceHTML(c *fiber.Ctx) error {
	inv, profile, err := h.documentSources(c)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := h.Renderer.HTML(&buf, inv, *profile); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}

func (h *Handler) InvoicePDF(c *fiber.Ctx) error {
	inv, profile, err := h.documentSources(c)
	if err != nil {
		return err
	}
	pdf, err := h.Renderer.PDF(c.UserContext(), inv, *profile)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s.pdf"`, strings.ReplaceAll(inv.InvoiceNo, " ", "")))
	return c.Send(pdf)
}
