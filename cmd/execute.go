package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/ganderhq/gander/internal/app"
	"github.com/ganderhq/gander/internal/config"
	"github.com/ganderhq/gander/internal/log"
)

// Execute is the main entry point for the gander CLI.
//
// Following the pattern of kubectl and hugo, all application logic lives
// in the cmd package, leaving main.go as a minimal entry point.
func Execute() error {
	slog.SetDefault(initLogger())
	return rootCmd.Execute()
}

// initLogger initializes the structured logger.
//
// Log level is controlled by the DEBUG environment variable:
//   - DEBUG set (any value): debug level logging
//   - DEBUG not set: info level logging
//
// Logs go to stderr; stdout is reserved for command output.
func initLogger() log.Logger {
	cfg := log.Config{Level: slog.LevelInfo}
	if os.Getenv("DEBUG") != "" {
		cfg.Level = slog.LevelDebug
	}
	return log.New(cfg)
}

// setupApp loads configuration and initializes the application.
// The caller is responsible for calling Close on the returned App.
func setupApp(ctx context.Context) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	a, err := app.Setup(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize application: %w", err)
	}
	return a, nil
}
