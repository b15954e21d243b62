package database_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"gst-billing/database"
	"gst-billing/database/dbtest"
	"gst-billing/models"

	"github.com/shopspring/decimal"
)

func product(name string, stock int) models.Product {
	return models.Product{
		Name:     name,
		Batch:    "B-" + name,
		HSN:      "3004",
		GSTRate:  decimal.NewFromInt(12),
		MRP:      decimal.NewFromInt(100),
		SaleRate: decimal.RequireFromString("80.5"),
		Stock:    stock,
	}
}

func TestCollection_CRUD(t *testing.T) {
	ctx := context.Background()
	store := dbtest.NewStore(t)

	p := product("Azithral", 10)
	if err := store.Products.Add(ctx, &p); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if p.ID == 0 {
		t.Fatal("Add did not assign an id")
	}

	got, err := store.Products.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "Azithral" || !got.SaleRate.Equal(decimal.RequireFromString("80.5")) {
		t.Errorf("Get = %+v", got)
	}

	if err := store.Products.Update(ctx, p.ID, map[string]any{"stock": 4}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ = store.Products.Get(ctx, p.ID)
	if got.Stock != 4 {
		t.Errorf("stock = %d, want 4", got.Stock)
	}

	if err := store.Products.Delete(ctx, p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Products.Get(ctx, p.ID); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("Get after delete = %v, want ErrNotFound", err)
	}
	if err := store.Products.Update(ctx, p.ID, map[string]any{"stock": 1}); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("Update missing = %v, want ErrNotFound", err)
	}
	if err := store.Products.Delete(ctx, p.ID); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("Delete missing = %v, want ErrNotFound", err)
	}
}

func TestCollection_QueryAndSearch(t *testing.T) {
	ctx := context.Background()
	store := dbtest.NewStore(t)

	batch := []models.Product{product("Crocin", 5), product("Calpol", 60), product("Dolo 650", 0)}
	batch[2].Barcode = "8901234"
	if err := store.Products.AddBatch(ctx, batch, 2); err != nil {
		t.Fatalf("AddBatch: %v", err)
	}

	n, err := store.Products.Count(ctx, database.Query{Where: "stock < ?", Args: []any{50}})
	if err != nil || n != 2 {
		t.Errorf("Count(stock<50) = %d, %v; want 2", n, err)
	}

	tests := []struct {
		name  string
		query database.Query
		want  []string
	}{
		{"empty term lists by name", database.ProductSearch("", database.SearchFast), []string{"Calpol", "Crocin", "Dolo 650"}},
		{"fast matches substring", database.ProductSearch("ol", database.SearchFast), []string{"Calpol", "Dolo 650"}},
		{"fast matches batch", database.ProductSearch("b-croc", database.SearchFast), []string{"Crocin"}},
		{"accurate matches prefix", database.ProductSearch("c", database.SearchAccurate), []string{"Calpol", "Crocin"}},
		{"accurate matches barcode", database.ProductSearch("8901234", database.SearchAccurate), []string{"Dolo 650"}},
		{"limit and offset", database.Query{Order: "name", Limit: 1, Offset: 1}, []string{"Crocin"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := store.Products.Query(ctx, tt.query)
			if err != nil {
				t.Fatalf("Query: %v", err)
			}
			var names []string
			for _, r := range rows {
				names = append(names, r.Name)
			}
			if len(names) != len(tt.want) {
				t.Fatalf("names = %v, want %v", names, tt.want)
			}
			for i := range names {
				if names[i] != tt.want[i] {
					t.Errorf("names = %v, want %v", names, tt.want)
					break
				}
			}
		})
	}
}

func TestStore_TransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	store := dbtest.NewStore(t)
	boom := errors.New("boom")

	err := store.Transaction(ctx, func(tx *database.Store) error {
		p := product("Ghost", 1)
		if err := tx.Products.Add(ctx, &p); err != nil {
			return err
		}
		party := models.Party{Name: "Ghost Party"}
		if err := tx.Parties.Add(ctx, &party); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Transaction error = %v, want boom", err)
	}

	for name, count := range map[string]func() (int64, error){
		"products": func() (int64, error) { return store.Products.Count(ctx, database.Query{}) },
		"parties":  func() (int64, error) { return store.Parties.Count(ctx, database.Query{}) },
	} {
		n, err := count()
		if err != nil || n != 0 {
			t.Errorf("%s count = %d, %v; want 0", name, n, err)
		}
	}
}

func TestStore_InvoicePreloadsItemsInOrder(t *testing.T) {
	ctx := context.Background()
	store := dbtest.NewStore(t)

	inv := models.Invoice{
		InvoiceNo:   "TI -65",
		Date:        time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		InvoiceType: models.InvoiceRetail,
		Status:      models.StatusPaid,
		Items: []models.InvoiceItem{
			{ProductID: 1, Name: "first", Quantity: 1},
			{ProductID: 2, Name: "second", Quantity: 2},
		},
	}
	if err := store.Invoices.Add(ctx, &inv); err != nil {
		t.Fatalf("Add invoice: %v", err)
	}
	if inv.Reference == "" {
		t.Error("invoice reference not generated")
	}

	got, err := store.Invoices.Get(ctx, inv.ID)
	if err != nil {
		t.Fatalf("Get invoice: %v", err)
	}
	if len(got.Items) != 2 || got.Items[0].Name != "first" || got.Items[1].Name != "second" {
		t.Errorf("items = %+v", got.Items)
	}
}

func TestSettings_Profile(t *testing.T) {
	ctx := context.Background()
	store := database.NewStore(dbtest.Open(t))

	if _, err := store.Settings.Profile(ctx); !errors.Is(err, database.ErrNotFound) {
		t.Fatalf("Profile before seed = %v, want ErrNotFound", err)
	}
	seeded, err := store.Settings.EnsureProfile(ctx)
	if err != nil || !seeded {
		t.Fatalf("EnsureProfile = %v, %v; want true", seeded, err)
	}
	seeded, err = store.Settings.EnsureProfile(ctx)
	if err != nil || seeded {
		t.Fatalf("second EnsureProfile = %v, %v; want false", seeded, err)
	}

	profile, err := store.Settings.Profile(ctx)
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if profile.CompanyName != "GOPI DISTRIBUTOR" || !profile.UseDefaultGST || !profile.DefaultGSTRate.Equal(decimal.NewFromInt(5)) {
		t.Errorf("seeded profile = %+v", profile)
	}
	if profile.Preferences["theme"] != "blue" {
		t.Errorf("preferences = %v", profile.Preferences)
	}

	profile.CompanyName = "New Name"
	profile.ID = 42
	if err := store.Settings.SaveProfile(ctx, profile); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}
	n, _ := store.Settings.Count(ctx, database.Query{})
	reloaded, _ := store.Settings.Profile(ctx)
	if n != 1 || reloaded.CompanyName != "New Name" {
		t.Errorf("rows=%d name=%q, want a single row named New Name", n, reloaded.CompanyName)
	}
}

func TestStore_NextSequence(t *testing.T) {
	ctx := context.Background()
	store := dbtest.NewStore(t)

	var got []int64
	for i := 0; i < 3; i++ {
		err := store.Transaction(ctx, func(tx *database.Store) error {
			v, err := tx.NextSequence(ctx, "TI", 65)
			got = append(got, v)
			return err
		})
		if err != nil {
			t.Fatalf("NextSequence: %v", err)
		}
	}
	if got[0] != 65 || got[1] != 66 || got[2] != 67 {
		t.Errorf("sequence = %v, want [65 66 67]", got)
	}

	// a rolled back reservation is reused
	_ = store.Transaction(ctx, func(tx *database.Store) error {
		_, _ = tx.NextSequence(ctx, "TI", 65)
		return errors.New("abort")
	})
	_ = store.Transaction(ctx, func(tx *database.Store) error {
		v, err := tx.NextSequence(ctx, "TI", 65)
		if v != 68 {
			t.Errorf("after rollback = %d, want 68", v)
		}
		return err
	})
}
