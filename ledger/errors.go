package ledger

import (
	"errors"
	"fmt"
)

var (
	// ErrCommitFailed wraps every failure of Commit. Nothing was persisted.
	ErrCommitFailed = errors.New("invoice commit failed")

	// ErrProductNotFound is returned when a line references a product that
	// no longer exists at commit time.
	ErrProductNotFound = errors.New("product no longer exists")

	// ErrInsufficientStock is returned under RejectInsufficient when a line
	// needs more units than the product holds.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrInvalidPolicy is returned for an unknown stock policy or numbering scheme.
	ErrInvalidPolicy = errors.New("invalid ledger policy")
)

// CommitError reports a rolled back commit. It matches both ErrCommitFailed
// and the underlying cause.
type CommitError struct {
	InvoiceNo string
	Err       error
}

func (e *CommitError) Error() string {
	if e.InvoiceNo != "" {
		return fmt.Sprintf("ledger: commit of invoice %q failed: %v", e.InvoiceNo, e.Err)
	}
	return fmt.Sprintf("ledger: commit failed: %v", e.Err)
}

func (e *CommitError) Unwrap() []error {
	return []error{ErrCommitFailed, e.Err}
}

// MissingProductError names the line whose product did not resolve.
type MissingProductError struct {
	ProductID uint
	Name      string
}

func (e *MissingProductError) Error() string {
	return fmt.Sprintf("product %d (%s) no longer exists", e.ProductID, e.Name)
}

func (e *MissingProductError) Unwrap() error {
	return ErrProductNotFound
}

// StockError reports a line rejected by the stock policy.
type StockError struct {
	ProductID uint
	Name      string
	Available int
	Requested int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("product %d (%s): %d units requested, %d in stock", e.ProductID, e.Name, e.Requested, e.Available)
}

func (e *StockError) Unwrap() error {
	return ErrInsufficientStock
}
