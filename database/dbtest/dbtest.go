// Package dbtest opens throwaway sqlite stores for tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"gst-billing/config"
	"gst-billing/database"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Open returns a migrated sqlite handle in a temp directory.
func Open(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "billing.db") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := database.Open(config.Database{Driver: "sqlite", DSN: dsn}, zerolog.Nop())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// NewStore returns a store over Open with the default profile seeded.
func NewStore(t *testing.T) *database.Store {
	t.Helper()
	store := database.NewStore(Open(t))
	if _, err := store.Settings.EnsureProfile(context.Background()); err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	return store
}
