// Package importer loads products and parties from spreadsheets exported by
// other billing tools, matching columns by a list of common header names.
package importer

import (
	"context"
	"errors"
	"io"
	"strings"

	"gst-billing/database"
	"gst-billing/logger"
	"gst-billing/models"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/ttacon/libphonenumber"
)

var ErrEmptySheet = errors.New("spreadsheet has no data rows")

// ChunkSize is the number of rows written per insert statement.
const ChunkSize = 1000

const (
	defaultBatch  = "N/A"
	defaultExpiry = "2026-01-01"
	defaultHSN    = "3004"
	defaultName   = "Item"
	unknownParty  = "Unknown"
	phoneRegion   = "IN"
)

var defaultGSTRate = decimal.NewFromInt(12)

type Result struct {
	Rows     int `json:"rows"`
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

type Importer struct {
	store *database.Store
	log   zerolog.Logger
}

func New(store *database.Store) *Importer {
	return &Importer{store: store, log: logger.WithComponent("importer")}
}

// Products imports every data row as a new product. The whole file is one
// transaction: either every row is stored or none is.
func (im *Importer) Products(ctx context.Context, r io.Reader) (Result, error) {
	rows, err := ReadRows(r)
	if err != nil {
		return Result{}, err
	}
	products := make([]models.Product, len(rows))
	for i, row := range rows {
		products[i] = ProductFromRow(row)
	}
	if err := im.insert(ctx, len(products), func(tx *database.Store, lo, hi int) error {
		return tx.Products.AddBatch(ctx, products[lo:hi], ChunkSize)
	}); err != nil {
		return Result{}, err
	}
	return Result{Rows: len(rows), Imported: len(products)}, nil
}

// Parties imports every named row as a wholesale party. Rows without a
// name are skipped.
func (im *Importer) Parties(ctx context.Context, r io.Reader) (Result, error) {
	rows, err := ReadRows(r)
	if err != nil {
		return Result{}, err
	}
	parties := make([]models.Party, 0, len(rows))
	for _, row := range rows {
		if p, ok := PartyFromRow(row); ok {
			parties = append(parties, p)
		}
	}
	if err := im.insert(ctx, len(parties), func(tx *database.Store, lo, hi int) error {
		return tx.Parties.AddBatch(ctx, parties[lo:hi], ChunkSize)
	}); err != nil {
		return Result{}, err
	}
	return Result{Rows: len(rows), Imported: len(parties), Skipped: len(rows) - len(parties)}, nil
}

func (im *Importer) insert(ctx context.Context, total int, write func(tx *database.Store, lo, hi int) error) error {
	if total == 0 {
		return nil
	}
	return im.store.Transaction(ctx, func(tx *database.Store) error {
		for lo := 0; lo < total; lo += ChunkSize {
			hi := min(lo+ChunkSize, total)
			if err := write(tx, lo, hi); err != nil {
				return err
			}
			im.log.Debug().Int("processed", hi).Int("total", total).Msg("import progress")
		}
		return nil
	})
}

// ProductFromRow maps a spreadsheet row onto a product, filling defaults
// for missing cells.
func ProductFromRow(row Row) models.Product {
	mrp := row.Number(decimal.Zero, "MRP", "M.R.P.", "Max Retail Price", "Retail Price")
	return models.Product{
		Name:         row.Text(defaultName, "Item Name", "Description", "Product", "Medicine", "Particulars", "Name"),
		Batch:        row.Text(defaultBatch, "Batch", "B.No", "Lot No", "Batch No"),
		Expiry:       row.Date(defaultExpiry, "Expiry", "Exp", "Exp Date", "Validity"),
		HSN:          row.Text(defaultHSN, "HSN", "HSN Code", "SAC"),
		GSTRate:      row.Number(defaultGSTRate, "GST", "GST%", "Tax%", "IGST"),
		MRP:          mrp,
		OldMRP:       row.Number(mrp, "Old MRP", "Previous MRP"),
		PurchaseRate: row.Number(decimal.Zero, "Purchase Rate", "P.Rate", "Cost Price", "P.Price"),
		SaleRate:     row.Number(decimal.Zero, "Sale Rate", "Rate", "Billing Rate", "S.Rate", "Selling Rate"),
		Stock:        int(row.Number(decimal.Zero, "Stock", "Qty", "Quantity", "Balance", "In Stock").IntPart()),
		Manufacturer: row.Value("Manufacturer", "Mfg", "Company", "Brand"),
		Category:     row.Value("Category", "Type", "Group"),
		Barcode:      row.Value("Barcode", "EAN", "UPC"),
	}
}

// PartyFromRow maps a spreadsheet row onto a wholesale party. ok is false
// for rows without a usable name.
func PartyFromRow(row Row) (models.Party, bool) {
	name := row.Text(unknownParty, "Name", "Party Name", "Customer", "Client")
	if strings.EqualFold(name, unknownParty) {
		return models.Party{}, false
	}
	return models.Party{
		Name:               name,
		GSTIN:              strings.ToUpper(row.Value("GSTIN", "GST", "GST No")),
		Address:            row.Value("Address", "Addr", "City"),
		Phone:              NormalizePhone(row.Value("Phone", "Mobile", "Contact", "Tel")),
		Email:              row.Value("Email", "Mail"),
		DLNo1:              row.Value("DL No 1", "DL1", "Drug Lic 1", "20B"),
		DLNo2:              row.Value("DL No 2", "DL2", "Drug Lic 2", "21B"),
		Type:               models.PartyWholesale,
		CreditLimit:        row.Number(decimal.Zero, "Credit Limit", "Limit"),
		OutstandingBalance: row.Number(decimal.Zero, "Balance", "Outstanding", "Due"),
	}, true
}

// NormalizePhone formats a single Indian phone number as E.164. Anything
// that does not parse, such as a comma separated list, is kept verbatim.
func NormalizePhone(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.ContainsAny(raw, ",;/") {
		return raw
	}
	num, err := libphonenumber.Parse(raw, phoneRegion)
	if err != nil {
		return raw
	}
	return libphonenumber.Format(num, libphonenumber.E164)
}
