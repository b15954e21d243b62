package importer

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"gst-billing/database"
	"gst-billing/database/dbtest"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		r := row
		if err := f.SetSheetRow("Sheet1", cell, &r); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return &buf
}

func TestProducts_MatchesSynonymsAndDefaults(t *testing.T) {
	ctx := context.Background()
	store := dbtest.NewStore(t)
	buf := workbook(t, [][]any{
		{"Medicine", "B.No", "Exp Date", "HSN Code", "GST %", "M.R.P.", "S.Rate", "Qty", "Mfg"},
		{"Azithral 500", "AZ01", 46023, "30049099", 5, "₹1,250.00", 980.5, 40, "Alembic"},
		{"Dolo 650", "", "12/27", "", "", 30, 24, "7.0", ""},
		{"", "", "", "", "", "", "", "", ""},
	})

	res, err := New(store).Products(ctx, buf)
	if err != nil {
		t.Fatalf("Products: %v", err)
	}
	if res.Rows != 2 || res.Imported != 2 {
		t.Fatalf("result = %+v, want 2 rows imported", res)
	}

	rows, err := store.Products.Query(ctx, database.Query{Order: "id"})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	a, d := rows[0], rows[1]
	if a.Name != "Azithral 500" || a.Batch != "AZ01" || a.Expiry != "2026-01-01" || a.HSN != "30049099" {
		t.Errorf("first product = %+v", a)
	}
	if !a.MRP.Equal(decimal.NewFromInt(1250)) || !a.OldMRP.Equal(a.MRP) || !a.GSTRate.Equal(decimal.NewFromInt(5)) {
		t.Errorf("mrp=%s old=%s gst=%s", a.MRP, a.OldMRP, a.GSTRate)
	}
	if !a.SaleRate.Equal(decimal.RequireFromString("980.5")) || a.Stock != 40 || a.Manufacturer != "Alembic" {
		t.Errorf("rate=%s stock=%d mfg=%q", a.SaleRate, a.Stock, a.Manufacturer)
	}
	if d.Batch != "N/A" || d.Expiry != "12/27" || d.HSN != "3004" || !d.GSTRate.Equal(decimal.NewFromInt(12)) || d.Stock != 7 {
		t.Errorf("defaults = %+v", d)
	}
}

func TestParties_SkipsUnnamedRows(t *testing.T) {
	ctx := context.Background()
	store := dbtest.NewStore(t)
	buf := workbook(t, [][]any{
		{"Party Name", "GST No", "City", "Mobile", "20B", "Outstanding"},
		{"City Chemist", "24abcde1234f1z5", "Ahmedabad", "+91 98765 43210", "DL-1", "1500.50"},
		{"", "27ABCDE1234F1Z5", "Pune", "", "", ""},
		{"Unknown", "", "", "", "", ""},
	})

	res, err := New(store).Parties(ctx, buf)
	if err != nil {
		t.Fatalf("Parties: %v", err)
	}
	if res.Rows != 3 || res.Imported != 1 || res.Skipped != 2 {
		t.Fatalf("result = %+v", res)
	}
	parties, err := store.Parties.Query(ctx, database.Query{})
	if err != nil || len(parties) != 1 {
		t.Fatalf("parties = %v, %v", parties, err)
	}
	p := parties[0]
	if p.GSTIN != "24ABCDE1234F1Z5" || p.Address != "Ahmedabad" || p.Phone != "+919876543210" || p.DLNo1 != "DL-1" {
		t.Errorf("party = %+v", p)
	}
	if p.Type != "WHOLESALE" || !p.OutstandingBalance.Equal(decimal.RequireFromString("1500.5")) {
		t.Errorf("type=%q balance=%s", p.Type, p.OutstandingBalance)
	}
}

func TestReadRows_Empty(t *testing.T) {
	buf := workbook(t, [][]any{{"Name", "GSTIN"}})
	if _, err := ReadRows(buf); !errors.Is(err, ErrEmptySheet) {
		t.Errorf("ReadRows = %v, want ErrEmptySheet", err)
	}
	if _, err := ReadRows(bytes.NewReader([]byte("not a workbook"))); err == nil {
		t.Error("ReadRows accepted garbage")
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"+91 98765 43210", "+919876543210"},
		{"07925383834, 8460143984", "07925383834, 8460143984"},
		{"n/a", "n/a"},
	}
	for _, tt := range tests {
		if got := NormalizePhone(tt.in); got != tt.want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
