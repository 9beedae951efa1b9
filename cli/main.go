package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/inventory-cli/internal/config"
	"github.com/rogerio-castellano/inventory-cli/internal/db"
	"github.com/rogerio-castellano/inventory-cli/internal/inventory"
	"github.com/rogerio-castellano/inventory-cli/internal/logging"
	"github.com/rogerio-castellano/inventory-cli/internal/session"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "❌ Could not load configuration:", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Output)
	if err != nil {
		fmt.Fprintln(os.Stderr, "❌ Could not set up logging:", err)
		os.Exit(1)
	}
	logger = logger.With(zap.String("run_id", uuid.NewString()))

	if err := run(cfg, logger); err != nil {
		logger.Error("inventory stopped", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}

func run(cfg *config.Config, logger *zap.Logger) error {
	store, err := db.Open(cfg.Store)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()
	logger.Info("store ready", zap.String("driver", cfg.Store.Driver))

	svc := inventory.NewService(store.Products, logger, cfg.Import.ConflictMode)
	if _, err := svc.Seed(cfg.Import.File, cfg.Import.ResetOnStart); err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	return session.New(os.Stdin, os.Stdout, store.Products, svc, session.Options{
		BackupPath: cfg.Backup.File,
		SwapFields: cfg.Add.SwapFields,
		Log:        logger,
	}).Run()
}
