// Package cmd is the gst-billing command line: the API server plus the
// maintenance commands run against the same database.
package cmd

import (
	"context"
	"fmt"
	"os"

	"gst-billing/config"
	"gst-billing/database"
	"gst-billing/logger"

	"github.com/spf13/cobra"
)

var version = "1.0.0"

// cfg is loaded before any subcommand runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "gst-billing",
	Short: "GST invoicing and stock ledger for a pharmaceutical distributor",
	Long: `gst-billing prices GST invoices, commits them together with their stock
movements, and serves the billing desk over HTTP.

Configuration is read from the environment and an optional .env file.
See "gst-billing serve --help" for the main entry point.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		return logger.Setup(cfg.GetLoggerConfig())
	},
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// openStore connects, migrates and makes sure the seller profile exists.
func openStore(ctx context.Context) (*database.Store, func(), error) {
	db, err := database.Open(cfg.Database, logger.WithComponent("database"))
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	closeDB := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if err := database.Migrate(db); err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	store := database.NewStore(db)
	if _, err := store.Settings.EnsureProfile(ctx); err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("seed profile: %w", err)
	}
	return store, closeDB, nil
}
