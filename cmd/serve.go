package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ganderhq/gander/api"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the HTTP server exposing the REST API.

Endpoints:
  POST /api/vectorize   ingest a document
  POST /api/chat        answer a question from the stored documents
  GET  /health          liveness probe
  GET  /ready           readiness probe`,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runServe()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", api.DefaultAddr, "address to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	a, err := setupApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	server := api.NewServer(a.DBPool, a.Ingestor, a.Answerer, slog.Default())

	if err := server.Run(ctx, serveAddr); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	slog.Info("HTTP server shut down gracefully")
	return nil
}
