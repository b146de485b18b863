package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/JonMunkholm/shopkeep/internal/config"
	"github.com/JonMunkholm/shopkeep/internal/console"
	"github.com/JonMunkholm/shopkeep/internal/core"
	"github.com/JonMunkholm/shopkeep/internal/logging"
)

func main() {
	// Load .env file if it exists; variables already set in the environment win
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"catalog", cfg.Store.CatalogPath,
		"accounts", cfg.Store.AccountsPath,
		"order_log", cfg.Store.OrderLogPath,
		"order_log_enabled", cfg.Store.OrderLogEnabled,
	)

	app, err := core.NewApp(cfg)
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}

	ctx := app.Context(context.Background())
	if err := console.New(app, os.Stdin, os.Stdout).Run(ctx); err != nil {
		logging.FromContext(ctx).Error("console stopped", "error", err)
	}

	slog.Info("shutdown complete")
}
