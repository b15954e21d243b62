package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type PartyType string

const (
	PartyWholesale PartyType = "WHOLESALE"
	PartyRetail    PartyType = "RETAIL"
)

// Party is a customer. The first two characters of the GSTIN carry the
// registered state code.
type Party struct {
	ID                 uint            `json:"id" gorm:"primaryKey"`
	Name               string          `json:"name" gorm:"not null;index"`
	GSTIN              string          `json:"gstin" gorm:"size:15;index"`
	Address            string          `json:"address"`
	Phone              string          `json:"phone" gorm:"index"`
	Email              string          `json:"email"`
	DLNo1              string          `json:"dl_no1"`
	DLNo2              string          `json:"dl_no2"`
	Type               PartyType       `json:"type" gorm:"size:16;index"`
	CreditLimit        decimal.Decimal `json:"credit_limit" gorm:"type:numeric(18,6)"`
	OutstandingBalance decimal.Decimal `json:"outstanding_balance" gorm:"type:numeric(18,6)"`
	Notes              string          `json:"notes"`
	IsFavorite         bool            `json:"is_favorite" gorm:"index"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// StateCode is the registered state of the party, "" without a GSTIN.
func (p Party) StateCode() string {
	return GSTINStateCode(p.GSTIN)
}

// GSTINStateCode returns the two-character state prefix of a GSTIN, or ""
// when the GSTIN is too short to carry one.
func GSTINStateCode(gstin string) string {
	g := strings.TrimSpace(gstin)
	if len(g) < 2 {
		return ""
	}
	return strings.ToUpper(g[:2])
}
