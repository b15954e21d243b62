package models

// InvoiceSequence holds the next number for one invoice prefix when the
// ledger runs with sequence numbering.
type InvoiceSequence struct {
	Prefix    string `json:"prefix" gorm:"primaryKey;size:8"`
	NextValue int64  `json:"next_value"`
}
