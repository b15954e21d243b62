// Package reports aggregates stored invoices and stock for the dashboard
// and for spreadsheet exports.
package reports

import (
	"context"
	"strings"
	"time"

	"gst-billing/database"
	"gst-billing/models"

	"github.com/shopspring/decimal"
)

type Options struct {
	LowStockThreshold  int
	ExpiryWindowMonths int
}

type Service struct {
	store *database.Store
	opts  Options
}

func New(store *database.Store, opts Options) *Service {
	return &Service{store: store, opts: opts}
}

type MonthlySales struct {
	Name  string          `json:"name"`
	Year  int             `json:"year"`
	Month int             `json:"month"`
	Sales decimal.Decimal `json:"sales"`
}

type Dashboard struct {
	TotalSales        decimal.Decimal `json:"total_sales"`
	TotalInvoices     int64           `json:"total_invoices"`
	LowStockItems     int64           `json:"low_stock_items"`
	ExpiringSoonItems int             `json:"expiring_soon_items"`
	Monthly           []MonthlySales  `json:"monthly"`
}

type saleRow struct {
	Date       time.Time
	GrandTotal decimal.Decimal
}

// Dashboard summarizes the business as of now. Cancelled invoices are
// counted but excluded from sales figures.
func (s *Service) Dashboard(ctx context.Context, now time.Time) (*Dashboard, error) {
	db := s.store.DB().WithContext(ctx)

	var sales []saleRow
	if err := db.Model(&models.Invoice{}).
		Select("date", "grand_total").
		Where("status <> ?", models.StatusCancelled).
		Find(&sales).Error; err != nil {
		return nil, err
	}

	out := &Dashboard{TotalSales: decimal.Zero}
	var err error
	if out.TotalInvoices, err = s.store.Invoices.Count(ctx, database.Query{}); err != nil {
		return nil, err
	}
	if out.LowStockItems, err = s.store.Products.Count(ctx, database.Query{
		Where: "stock < ?", Args: []any{s.opts.LowStockThreshold},
	}); err != nil {
		return nil, err
	}

	var expiries []string
	if err := db.Model(&models.Product{}).Where("expiry <> ''").Pluck("expiry", &expiries).Error; err != nil {
		return nil, err
	}
	limit := now.AddDate(0, s.opts.ExpiryWindowMonths, 0)
	for _, raw := range expiries {
		if exp, ok := ParseExpiry(raw, now.Location()); ok && exp.After(now) && exp.Before(limit) {
			out.ExpiringSoonItems++
		}
	}

	out.Monthly = lastMonths(now, 6)
	for _, sale := range sales {
		out.TotalSales = out.TotalSales.Add(sale.GrandTotal)
		d := sale.Date.In(now.Location())
		for i := range out.Monthly {
			if out.Monthly[i].Year == d.Year() && out.Monthly[i].Month == int(d.Month()) {
				out.Monthly[i].Sales = out.Monthly[i].Sales.Add(sale.GrandTotal)
				break
			}
		}
	}
	return out, nil
}

func lastMonths(now time.Time, n int) []MonthlySales {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	out := make([]MonthlySales, n)
	for i := 0; i < n; i++ {
		m := first.AddDate(0, i-(n-1), 0)
		out[i] = MonthlySales{
			Name:  m.Month().String()[:3],
			Year:  m.Year(),
			Month: int(m.Month()),
			Sales: decimal.Zero,
		}
	}
	return out
}

var expiryLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"02-01-2006",
	"2006-01",
	"01/2006",
	"01/06",
	"01-06",
}

// ParseExpiry reads the expiry formats found on pharmacy stock sheets.
// Month-only dates mean the start of that month.
func ParseExpiry(raw string, loc *time.Location) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range expiryLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
