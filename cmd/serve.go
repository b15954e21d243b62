package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gst-billing/controllers"
	"gst-billing/importer"
	"gst-billing/ledger"
	"gst-billing/logger"
	"gst-billing/middlewares"
	"gst-billing/render"
	"gst-billing/reports"
	"gst-billing/routes"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the billing API server",
	Long: `Run the HTTP API used by the billing desk.

Required environment variables:
  JWT_SECRET_KEY (or JWT_SECRET) - signing key for operator tokens
  OPERATOR_PASSWORD_HASH         - bcrypt hash, see "gst-billing hash-password"

Optional environment variables:
  STOCK_POLICY       - allow-negative (default) or reject-insufficient
  INVOICE_NUMBERING  - count (default) or sequence
  CHROME_PATH        - browser used for PDF invoices`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("serve")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	policy, err := ledger.ParseStockPolicy(cfg.StockPolicy)
	if err != nil {
		return err
	}
	numbering, err := ledger.ParseNumbering(cfg.InvoiceNumbering)
	if err != nil {
		return err
	}
	auth, err := middlewares.NewAuth(cfg.JWTSecret)
	if err != nil {
		return err
	}
	if cfg.OperatorPasswordHash == "" {
		log.Warn().Msg("OPERATOR_PASSWORD_HASH is not set; login is disabled")
	}
	renderer, err := render.New(render.Options{ChromePath: cfg.ChromePath, Timeout: cfg.PDFTimeout})
	if err != nil {
		return err
	}

	store, closeDB, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	h := &controllers.Handler{
		Store:    store,
		Ledger:   ledger.New(store, ledger.Options{StockPolicy: policy, Numbering: numbering}),
		Renderer: renderer,
		Reports: reports.New(store, reports.Options{
			LowStockThreshold:  cfg.LowStockThreshold,
			ExpiryWindowMonths: cfg.ExpiryWindowMonths,
		}),
		Importer:             importer.New(store),
		Auth:                 auth,
		OperatorPasswordHash: cfg.OperatorPasswordHash,
	}
	app := routes.NewApp(cfg, h)

	errc := make(chan error, 1)
	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("driver", cfg.Database.Driver).
			Str("stock_policy", string(policy)).
			Str("numbering", string(numbering)).
			Msg("API server starting")
		errc <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}
