// Package ledger commits invoices and the stock movements they cause as a
// single database transaction.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gst-billing/billing"
	"gst-billing/database"
	"gst-billing/logger"
	"gst-billing/models"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// StockPolicy decides what happens when a line needs more units than a
// product holds. Stock is never clamped to zero.
type StockPolicy string

const (
	AllowNegative      StockPolicy = "allow-negative"
	RejectInsufficient StockPolicy = "reject-insufficient"
)

// Numbering selects how invoice numbers are assigned.
type Numbering string

const (
	// NumberByCount uses the number of stored invoices plus billing.NumberOffset.
	NumberByCount Numbering = "count"
	// NumberBySequence uses a persisted per-prefix counter.
	NumberBySequence Numbering = "sequence"
)

type Options struct {
	StockPolicy StockPolicy
	Numbering   Numbering
}

func ParseStockPolicy(s string) (StockPolicy, error) {
	switch p := StockPolicy(s); p {
	case AllowNegative, RejectInsufficient:
		return p, nil
	case "":
		return AllowNegative, nil
	}
	return "", fmt.Errorf("%w: stock policy %q", ErrInvalidPolicy, s)
}

func ParseNumbering(s string) (Numbering, error) {
	switch n := Numbering(s); n {
	case NumberByCount, NumberBySequence:
		return n, nil
	case "":
		return NumberByCount, nil
	}
	return "", fmt.Errorf("%w: numbering %q", ErrInvalidPolicy, s)
}

type Ledger struct {
	store *database.Store
	opts  Options
	log   zerolog.Logger
}

func New(store *database.Store, opts Options) *Ledger {
	if opts.StockPolicy == "" {
		opts.StockPolicy = AllowNegative
	}
	if opts.Numbering == "" {
		opts.Numbering = NumberByCount
	}
	return &Ledger{store: store, opts: opts, log: logger.WithComponent("ledger")}
}

// Commit persists the invoice and decrements stock for every line in one
// transaction. Inside it, in order: the invoice number is assigned (unless
// preset), the invoice and its lines are inserted, and each line's product
// is re-read under lock, checked against the stock policy, and updated with
// the line's batch and MRP. Any failure rolls back all of it and is
// returned as a *CommitError. The argument is never modified; the stored
// record is returned.
func (l *Ledger) Commit(ctx context.Context, invoice *models.Invoice) (*models.Invoice, error) {
	rec := *invoice
	rec.ID = 0
	rec.Items = make([]models.InvoiceItem, len(invoice.Items))
	for i, item := range invoice.Items {
		item.ID = 0
		item.InvoiceID = 0
		rec.Items[i] = item
	}
	if rec.Date.IsZero() {
		rec.Date = time.Now()
	}

	err := l.store.Transaction(ctx, func(tx *database.Store) error {
		if rec.InvoiceNo == "" {
			no, err := l.nextNumber(ctx, tx, rec.InvoiceType)
			if err != nil {
				return fmt.Errorf("assign invoice number: %w", err)
			}
			rec.InvoiceNo = no
		}
		if err := tx.Invoices.Add(ctx, &rec); err != nil {
			return fmt.Errorf("insert invoice: %w", err)
		}
		for _, item := range rec.Items {
			if err := l.deduct(ctx, tx, item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		l.log.Error().Err(err).Str("invoice_no", rec.InvoiceNo).Int("lines", len(rec.Items)).Msg("invoice commit rolled back")
		return nil, &CommitError{InvoiceNo: rec.InvoiceNo, Err: err}
	}

	l.log.Info().
		Str("invoice_no", rec.InvoiceNo).
		Str("type", string(rec.InvoiceType)).
		Int("lines", len(rec.Items)).
		Str("grand_total", rec.GrandTotal.StringFixed(2)).
		Msg("invoice committed")
	return &rec, nil
}

func (l *Ledger) deduct(ctx context.Context, tx *database.Store, item models.InvoiceItem) error {
	product, err := tx.Products.GetForUpdate(ctx, item.ProductID)
	if errors.Is(err, database.ErrNotFound) {
		return &MissingProductError{ProductID: item.ProductID, Name: item.Name}
	}
	if err != nil {
		return fmt.Errorf("load product %d: %w", item.ProductID, err)
	}

	units := item.StockUnits()
	if l.opts.StockPolicy == RejectInsufficient && product.Stock < units {
		return &StockError{ProductID: product.ID, Name: product.Name, Available: product.Stock, Requested: units}
	}

	err = tx.Products.Update(ctx, product.ID, map[string]any{
		"stock": gorm.Expr("stock - ?", units),
		"batch": item.Batch,
		"mrp":   item.MRP,
	})
	if errors.Is(err, database.ErrNotFound) {
		return &MissingProductError{ProductID: item.ProductID, Name: item.Name}
	}
	if err != nil {
		return fmt.Errorf("update stock of product %d: %w", item.ProductID, err)
	}
	return nil
}

// PeekNumber returns the number the next invoice of kind would receive,
// without reserving it.
func (l *Ledger) PeekNumber(ctx context.Context, kind models.InvoiceType) (string, error) {
	var no string
	err := l.store.Transaction(ctx, func(tx *database.Store) error {
		var err error
		no, err = l.nextNumber(ctx, tx, kind)
		if err != nil {
			return err
		}
		// discard any counter row created while peeking
		return errPeek
	})
	if err != nil && !errors.Is(err, errPeek) {
		return "", err
	}
	return no, nil
}

var errPeek = errors.New("peek")

func (l *Ledger) nextNumber(ctx context.Context, tx *database.Store, kind models.InvoiceType) (string, error) {
	count, err := tx.Invoices.Count(ctx, database.Query{})
	if err != nil {
		return "", err
	}
	seq := count + billing.NumberOffset
	if l.opts.Numbering == NumberBySequence {
		seq, err = tx.NextSequence(ctx, billing.InvoicePrefix(kind), seq)
		if err != nil {
			return "", err
		}
	}
	return billing.InvoiceNumber(kind, seq), nil
}
