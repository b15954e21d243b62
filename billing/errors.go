package billing

import (
	"errors"
	"fmt"
)

// Sentinel errors for invoice assembly.
var (
	ErrDuplicateLine = errors.New("product already added to invoice")
	ErrMissingParty  = errors.New("wholesale invoice requires a party")
	ErrEmptyInvoice  = errors.New("invoice has no line items")
	ErrLineNotFound  = errors.New("invoice line not found")
	ErrInvalidLine   = errors.New("invalid invoice line")
)

// LineError reports a rejected cart operation on a single line.
type LineError struct {
	Err       error
	Index     int
	ProductID uint
	Details   string
}

func (e *LineError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("line %d (product %d): %v: %s", e.Index, e.ProductID, e.Err, e.Details)
	}
	return fmt.Sprintf("line %d (product %d): %v", e.Index, e.ProductID, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}
