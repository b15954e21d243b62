package middlewares

import (
	"bytes"
	"strings"
	"testing"

	"gst-billing/database/dbtest"
	"gst-billing/models"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

func TestClaimKey_SecondClaimKeepsTransactionUsable(t *testing.T) {
	db := dbtest.Open(t)
	first := models.IdempotencyKey{Key: "inv-1", RequestHash: "h", Method: "POST", Path: "/api/invoices", Holder: "a"}
	second := first
	second.Holder = "b"

	err := db.Transaction(func(tx *gorm.DB) error {
		got, created, err := claimKey(tx, first)
		if err != nil || !created || got.Holder != "a" {
			t.Fatalf("first claim = %+v, %v, %v", got, created, err)
		}
		got, created, err = claimKey(tx, second)
		if err != nil {
			t.Fatalf("second claim: %v", err)
		}
		if created || got.Holder != "a" {
			t.Errorf("second claim created=%v holder=%q, want false/a", created, got.Holder)
		}
		var n int64
		return tx.Model(&models.IdempotencyKey{}).Where("idempotency_key = ?", "inv-1").Count(&n).Error
	})
	if err != nil {
		t.Fatalf("transaction: %v", err)
	}
}

func TestReleaseKey(t *testing.T) {
	db := dbtest.Open(t)
	claim := models.IdempotencyKey{Key: "inv-2", RequestHash: "h", Holder: "a"}
	if _, _, err := claimKey(db, claim); err != nil {
		t.Fatalf("claimKey: %v", err)
	}

	var buf bytes.Buffer
	log := zerolog.New(&buf)
	other := claim
	other.Holder = "b"
	releaseKey(db, other, log)
	if count(t, db, "inv-2") != 1 {
		t.Fatalf("another request released the claim")
	}
	releaseKey(db, claim, log)
	if count(t, db, "inv-2") != 0 {
		t.Errorf("claim still present after release")
	}
	if buf.Len() != 0 {
		t.Errorf("unexpected log output: %s", buf.String())
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("DB: %v", err)
	}
	_ = sqlDB.Close()
	releaseKey(db, claim, log)
	if !strings.Contains(buf.String(), "releasing idempotency key failed") {
		t.Errorf("delete error was not logged: %q", buf.String())
	}
}

func count(t *testing.T, db *gorm.DB, key string) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&models.IdempotencyKey{}).Where("idempotency_key = ?", key).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}
