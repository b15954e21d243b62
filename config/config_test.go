package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("PORT", "")
	t.Setenv("STOCK_POLICY", "")
	t.Setenv("INVOICE_NUMBERING", "")
	t.Setenv("BODY_LIMIT_BYTES", "")
	t.Setenv("BODY_LIMIT_MB", "2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.Driver != "postgres" || cfg.Port != "8080" {
		t.Errorf("driver=%q port=%q, want postgres/8080", cfg.Database.Driver, cfg.Port)
	}
	if cfg.StockPolicy != "allow-negative" || cfg.InvoiceNumbering != "count" {
		t.Errorf("policy=%q numbering=%q", cfg.StockPolicy, cfg.InvoiceNumbering)
	}
	if cfg.BodyLimitBytes != 2*1024*1024 {
		t.Errorf("body limit = %d, want 2MB", cfg.BodyLimitBytes)
	}
	if cfg.RateLimitWindow != time.Minute {
		t.Errorf("rate window = %v, want 1m", cfg.RateLimitWindow)
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown driver", "DB_DRIVER", "oracle"},
		{"unknown stock policy", "STOCK_POLICY", "clamp"},
		{"unknown numbering", "INVOICE_NUMBERING", "random"},
		{"non numeric port", "PORT", "http"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			if _, err := Load(); err == nil {
				t.Errorf("Load accepted %s=%s", tt.key, tt.val)
			}
		})
	}
}

func TestLoad_SqliteNeedsDSN(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DATABASE_DSN", "")
	if _, err := Load(); err == nil {
		t.Fatal("Load accepted sqlite without DATABASE_DSN")
	}
}

func TestConnString(t *testing.T) {
	pg := Database{Driver: "postgres", Host: "db", User: "u", Password: "p", Name: "billing", TimeZone: "Asia/Kolkata"}
	if got := pg.ConnString(); !strings.Contains(got, "host=db") || !strings.Contains(got, "port=5432") {
		t.Errorf("postgres dsn = %q", got)
	}
	my := Database{Driver: "mysql", Host: "db", User: "u", Password: "p", Name: "billing"}
	if got := my.ConnString(); !strings.HasPrefix(got, "u:p@tcp(db:3306)/billing?") {
		t.Errorf("mysql dsn = %q", got)
	}
	explicit := Database{Driver: "sqlite", DSN: "file.db"}
	if got := explicit.ConnString(); got != "file.db" {
		t.Errorf("explicit dsn = %q", got)
	}
}
