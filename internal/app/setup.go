package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/core/api"
	"github.com/firebase/genkit/go/core/tracing"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/compat_oai/openai"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"github.com/firebase/genkit/go/plugins/ollama"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"google.golang.org/genai"

	"github.com/ganderhq/gander/db"
	"github.com/ganderhq/gander/internal/config"
	"github.com/ganderhq/gander/internal/conversation"
	"github.com/ganderhq/gander/internal/fetch"
	"github.com/ganderhq/gander/internal/rag"
	"github.com/ganderhq/gander/internal/store"
)

// Setup creates and initializes the application.
// Returns an App with embedded cleanup — call Close() to release.
func Setup(ctx context.Context, cfg *config.Config) (_ *App, retErr error) {
	a := &App{Config: cfg}

	// On error, clean up everything already initialized
	defer func() {
		if retErr != nil {
			if err := a.Close(); err != nil {
				slog.Warn("cleanup during setup failure", "error", err)
			}
		}
	}()

	a.otelCleanup = provideOtelShutdown(ctx, cfg)

	pool, dbCleanup, err := provideDBPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a.dbCleanup = dbCleanup
	a.DBPool = pool

	g, err := provideGenkit(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a.Genkit = g

	embedderClient := provideEmbedder(g, cfg)
	if embedderClient == nil {
		return nil, fmt.Errorf("embedder %q not found for provider %q", cfg.EmbedderModel, cfg.Provider)
	}
	a.Embedder = embedderClient

	a.Store = store.New(pool, slog.Default())
	a.Conversations = conversation.NewStore(pool, slog.Default())
	a.Fetcher = fetch.New(nil, slog.Default())

	embedder := rag.NewEmbedder(embedderClient, rag.VectorDimension, slog.Default(),
		rag.WithRequestOptions(provideEmbedOptions(cfg)))
	a.Ingestor = rag.NewIngestor(a.Store, embedder, nil, slog.Default())

	retriever := rag.NewRetriever(a.Store, rag.VectorDimension, slog.Default())
	generator := rag.NewGenkitGenerator(g, cfg.ModelName, cfg.Temperature)

	answerer, err := rag.NewAnswerer(rag.AnswererConfig{
		Embedder:  embedder,
		Retriever: retriever,
		Generator: generator,
		Logger:    slog.Default(),
	})
	if err != nil {
		return nil, fmt.Errorf("creating answerer: %w", err)
	}
	a.Answerer = answerer

	return a, nil
}

// provideEmbedOptions builds the embed request options for the
// configured provider. gemini-embedding-001 emits 3072-dimensional
// vectors unless truncation is requested, so the gemini path asks for
// rag.VectorDimension explicitly. Ollama and OpenAI embedders have no
// equivalent request knob here; their configured embedder model must
// natively produce rag.VectorDimension-length vectors (e.g.
// nomic-embed-text for Ollama).
func provideEmbedOptions(cfg *config.Config) any {
	switch cfg.Provider {
	case config.ProviderOllama, config.ProviderOpenAI:
		return nil
	default: // gemini
		dim := int32(rag.VectorDimension)
		return &genai.EmbedContentConfig{OutputDimensionality: &dim}
	}
}

// provideOtelShutdown sets up OTLP trace export before Genkit
// initialization, so Genkit's TracerProvider is ready when plugins
// register spans.
func provideOtelShutdown(ctx context.Context, cfg *config.Config) func() {
	tc := cfg.Tracing
	if !tc.Enabled {
		return func() {}
	}

	endpoint := tc.Endpoint
	if endpoint == "" {
		endpoint = "localhost:4318"
	}

	// OTEL env vars are picked up by Genkit's TracerProvider.
	// SAFETY: os.Setenv is not concurrent-safe, but Setup runs exactly
	// once during startup before any goroutines are spawned.
	if tc.ServiceName != "" {
		_ = os.Setenv("OTEL_SERVICE_NAME", tc.ServiceName)
	}
	if tc.Environment != "" {
		_ = os.Setenv("OTEL_RESOURCE_ATTRIBUTES", "deployment.environment="+tc.Environment)
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(), // local collector, no TLS
	)
	if err != nil {
		slog.Warn("creating trace exporter, tracing disabled", "error", err)
		return func() {}
	}

	processor := sdktrace.NewBatchSpanProcessor(exporter)
	tracing.TracerProvider().RegisterSpanProcessor(processor)

	slog.Debug("tracing enabled",
		"endpoint", endpoint,
		"service", tc.ServiceName,
		"environment", tc.Environment,
	)

	shutdown := tracing.TracerProvider().Shutdown

	//nolint:contextcheck // Independent context: shutdown runs during teardown when parent is canceled
	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			slog.Warn("shutting down tracer provider", "error", err)
		}
	}
}

// provideDBPool runs migrations and creates a PostgreSQL connection pool.
func provideDBPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, func(), error) {
	if err := db.Migrate(cfg.PostgresURL()); err != nil {
		return nil, nil, fmt.Errorf("running migrations: %w", err)
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.PostgresConnectionString())
	if err != nil {
		return nil, nil, fmt.Errorf("parsing connection config: %w", err)
	}

	poolCfg.MaxConns = 10
	poolCfg.MinConns = 2
	poolCfg.MaxConnLifetime = 30 * time.Minute
	poolCfg.MaxConnIdleTime = 5 * time.Minute
	poolCfg.HealthCheckPeriod = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("creating connection pool: %w", err)
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("pinging database: %w", err)
	}

	cleanup := func() {
		pool.Close()
	}

	return pool, cleanup, nil
}

// provideGenkit creates a Genkit instance for the selected provider.
// Gemini is the default. Ollama has no model auto-discovery, so its
// chat model and embedder are registered here explicitly.
func provideGenkit(ctx context.Context, cfg *config.Config) (*genkit.Genkit, error) {
	provider := cfg.Provider
	if provider == "" {
		provider = config.ProviderGemini
	}

	var g *genkit.Genkit

	switch provider {
	case config.ProviderOllama:
		ollamaPlugin := &ollama.Ollama{ServerAddress: cfg.OllamaHost}
		g = genkit.Init(ctx, genkit.WithPlugins(ollamaPlugin))
		if g == nil {
			return nil, errors.New("initializing genkit with ollama provider")
		}
		// Ollama requires explicit model registration (no auto-discovery)
		ollamaPlugin.DefineModel(g, ollama.ModelDefinition{
			Name: cfg.ModelName,
			Type: "chat",
		}, nil)
		ollamaPlugin.DefineEmbedder(g, cfg.OllamaHost, cfg.EmbedderModel, nil)
		slog.Info("initialized Genkit with ollama provider",
			"model", cfg.ModelName, "host", cfg.OllamaHost)

	case config.ProviderOpenAI:
		g = genkit.Init(ctx, genkit.WithPlugins(&openai.OpenAI{}))
		if g == nil {
			return nil, errors.New("initializing genkit with openai provider")
		}
		slog.Info("initialized Genkit with openai provider", "model", cfg.ModelName)

	default: // gemini
		g = genkit.Init(ctx, genkit.WithPlugins(&googlegenai.GoogleAI{}))
		if g == nil {
			return nil, errors.New("initializing genkit with gemini provider")
		}
		slog.Info("initialized Genkit with gemini provider", "model", cfg.ModelName)
	}

	return g, nil
}

// provideEmbedder resolves the ai.Embedder for the selected provider.
// Resolution is plugin-specific: ollama keys its embedder by the server
// address it was registered under in provideGenkit, the openai plugin
// registers embedders during Init and supports lookup by model name,
// and googlegenai exposes a direct accessor.
func provideEmbedder(g *genkit.Genkit, cfg *config.Config) ai.Embedder {
	switch cfg.Provider {
	case config.ProviderOllama:
		return ollama.Embedder(g, cfg.OllamaHost)
	case config.ProviderOpenAI:
		return genkit.LookupEmbedder(g, api.NewName("openai", cfg.EmbedderModel))
	default: // gemini
		return googlegenai.GoogleAIEmbedder(g, cfg.EmbedderModel)
	}
}
