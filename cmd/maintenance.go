package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"gst-billing/controllers"
	"gst-billing/database"
	"gst-billing/importer"
	"gst-billing/logger"
	"gst-billing/reports"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database tables",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.Open(cfg.Database, logger.WithComponent("database"))
		if err != nil {
			return err
		}
		if err := database.Migrate(db); err != nil {
			return err
		}
		log := logger.WithComponent("migrate")
		log.Info().Str("driver", cfg.Database.Driver).Msg("schema up to date")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write the default seller profile if none exists",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// openStore seeds as part of opening
		_, closeDB, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		closeDB()
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import [products|parties] [file.xlsx]",
	Short: "Import products or parties from the first sheet of a workbook",
	Example: `  gst-billing import products stock.xlsx
  gst-billing import parties customers.xlsx`,
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"products", "parties"},
	RunE:      runImport,
}

var exportCmd = &cobra.Command{
	Use:     "export sales [out.xlsx]",
	Short:   "Write the sales register to a workbook",
	Example: `  gst-billing export sales october.xlsx --from 2026-10-01 --to 2026-10-31`,
	Args:    cobra.ExactArgs(2),
	RunE:    runExport,
}

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password [password]",
	Short: "Print the bcrypt hash for OPERATOR_PASSWORD_HASH",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := controllers.HashPassword(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd, seedCmd, importCmd, exportCmd, hashPasswordCmd)

	exportCmd.Flags().String("from", "", "first invoice date, YYYY-MM-DD")
	exportCmd.Flags().String("to", "", "last invoice date, YYYY-MM-DD")
}

func runImport(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("import")
	kind, path := args[0], args[1]

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Minute)
	defer cancel()
	store, closeDB, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	im := importer.New(store)
	var res importer.Result
	switch kind {
	case "products":
		res, err = im.Products(ctx, f)
	case "parties":
		res, err = im.Parties(ctx, f)
	default:
		return fmt.Errorf("unknown import kind %q (want products or parties)", kind)
	}
	if err != nil {
		return err
	}

	log.Info().
		Str("file", path).
		Str("kind", kind).
		Int("rows", res.Rows).
		Int("imported", res.Imported).
		Int("skipped", res.Skipped).
		Msg("import finished")
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("export")
	if args[0] != "sales" {
		return fmt.Errorf("unknown export %q (want sales)", args[0])
	}
	out := args[1]

	var from, to time.Time
	if s, _ := cmd.Flags().GetString("from"); s != "" {
		t, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --from: %w", err)
		}
		from = t
	}
	if s, _ := cmd.Flags().GetString("to"); s != "" {
		t, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --to: %w", err)
		}
		to = t.AddDate(0, 0, 1)
	}

	store, closeDB, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer closeDB()

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	n, err := reports.New(store, reports.Options{}).ExportSales(cmd.Context(), f, from, to)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	log.Info().Str("file", out).Int("invoices", n).Msg("sales register written")
	return nil
}
