package database

import (
	"context"
	"errors"

	"gst-billing/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NextSequence reserves the next value of the counter for prefix. A missing
// counter starts at seed. Must be called inside Transaction so the
// reservation rolls back with the rest of the work.
func (s *Store) NextSequence(ctx context.Context, prefix string, seed int64) (int64, error) {
	db := s.db.WithContext(ctx)
	q := db
	if supportsRowLocks(db) {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var seq models.InvoiceSequence
	err := q.Where("prefix = ?", prefix).First(&seq).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		seq = models.InvoiceSequence{Prefix: prefix, NextValue: seed + 1}
		if err := db.Create(&seq).Error; err != nil {
			return 0, err
		}
		return seed, nil
	case err != nil:
		return 0, err
	}

	value := seq.NextValue
	if err := db.Model(&models.InvoiceSequence{}).Where("prefix = ?", prefix).
		Update("next_value", gorm.Expr("next_value + 1")).Error; err != nil {
		return 0, err
	}
	return value, nil
}
