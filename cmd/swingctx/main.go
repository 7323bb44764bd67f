package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"swingctx/internal/app"
	"swingctx/internal/config"
	"swingctx/internal/infrastructure"
	"swingctx/pkg/contracts"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.WithRunID(context.Background(), infrastructure.NewRunID())

	telemetry, err := infrastructure.InitializeTelemetry(cfg.Telemetry, os.Stderr, logger)
	if err != nil {
		logger.WarnContext(ctx, "Failed to initialize telemetry, continuing without it",
			slog.String("error", err.Error()))
	}

	logger.DebugContext(ctx, "Starting swingctx",
		slog.String("version", contracts.GetVersionString()),
		slog.Any("build", contracts.GetVersionInfo()))

	code := app.Run(ctx, os.Args[1:], app.Env{
		Stdout:    os.Stdout,
		Logger:    logger,
		Config:    cfg,
		Telemetry: telemetry,
	})

	if telemetry != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.WarnContext(ctx, "Telemetry shutdown failed", slog.String("error", err.Error()))
		}
	}

	return code
}
