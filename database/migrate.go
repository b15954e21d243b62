package database

import (
	"fmt"

	"gst-billing/models"

	"gorm.io/gorm"
)

// Migrate applies idempotent schema migrations: AutoMigrate for every
// table, then postgres-only CHECK constraints.
func Migrate(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.AutoMigrate(
			&models.Product{},
			&models.Party{},
			&models.CompanyProfile{},
			&models.Invoice{},
			&models.InvoiceItem{},
			&models.InvoiceSequence{},
			&models.IdempotencyKey{},
		); err != nil {
			return fmt.Errorf("automigrate failed: %w", err)
		}

		if tx.Dialector.Name() != "postgres" {
			return nil
		}

		// stock is deliberately left unconstrained: it may go negative
		checks := []struct{ table, name, expr string }{
			{"invoice_items", "chk_invoice_items_quantity_nonneg", "quantity >= 0 AND free_quantity >= 0"},
			{"invoice_items", "chk_invoice_items_discount_range", "discount_percent >= 0 AND discount_percent <= 100"},
			{"products", "chk_products_sale_rate_nonneg", "sale_rate >= 0"},
		}
		for _, c := range checks {
			stmt := fmt.Sprintf(`DO $$
BEGIN
	IF NOT EXISTS (
		SELECT 1 FROM pg_constraint
		WHERE conrelid = '%[1]s'::regclass
		  AND conname  = '%[2]s'
	) THEN
		ALTER TABLE %[1]s ADD CONSTRAINT %[2]s CHECK (%[3]s);
	END IF;
END $$;`, c.table, c.name, c.expr)
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("check constraint %s failed: %w", c.name, err)
			}
		}
		return nil
	})
}
