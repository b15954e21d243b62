package models

import "time"

// IdempotencyKey stores the first successful response for a given request hash.
type IdempotencyKey struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	Key            string     `json:"key" gorm:"column:idempotency_key;size:128;uniqueIndex"` // header value
	RequestHash    string     `json:"request_hash" gorm:"size:64"`                            // sha256 of method|path|body|operator
	Method         string     `json:"method" gorm:"size:10"`
	Path           string     `json:"path" gorm:"size:255"`
	Operator       string     `json:"operator" gorm:"size:128"`
	Holder         string     `json:"-" gorm:"size:36"` // request that inserted the row
	ResponseStatus int        `json:"response_status"`  // 0 => not completed yet
	ResponseBody   []byte     `json:"-"`
	CreatedAt      time.Time  `json:"created_at"`
	CompletedAt    *time.Time `json:"completed_at"`
}
