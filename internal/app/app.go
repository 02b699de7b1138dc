// Package app provides application initialization and dependency
// wiring.
//
// App is the container that orchestrates all components: it initializes
// Genkit, the database pool, the document store, and the ingestion and
// query pipelines.
package app

import (
	"log/slog"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ganderhq/gander/internal/config"
	"github.com/ganderhq/gander/internal/conversation"
	"github.com/ganderhq/gander/internal/fetch"
	"github.com/ganderhq/gander/internal/rag"
	"github.com/ganderhq/gander/internal/store"
)

// App is the core application container.
type App struct {
	// Configuration
	Config *config.Config

	// Core services
	Genkit   *genkit.Genkit
	Embedder ai.Embedder
	DBPool   *pgxpool.Pool
	Store    *store.Store

	// Pipelines
	Ingestor *rag.Ingestor
	Answerer *rag.Answerer

	// Supporting services
	Conversations *conversation.Store
	Fetcher       *fetch.Fetcher

	// Lifecycle management
	dbCleanup   func()
	otelCleanup func()
}

// Close gracefully shuts down all resources.
func (a *App) Close() error {
	slog.Info("shutting down application")

	if a.dbCleanup != nil {
		a.dbCleanup()
		slog.Info("database pool closed")
	}

	if a.otelCleanup != nil {
		a.otelCleanup()
	}

	return nil
}
