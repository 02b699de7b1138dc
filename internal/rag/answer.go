package rag

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/time/rate"
)

// Generator is the chat-completion contract: given a system instruction
// (with the retrieval context embedded) and the user's question, return
// the generated text. An empty string with a nil error is a valid
// outcome meaning the model produced no usable content.
type Generator interface {
	Generate(ctx context.Context, system, question string) (string, error)
}

// AnswererConfig contains the required dependencies for an Answerer.
type AnswererConfig struct {
	Embedder  *Embedder
	Retriever *Retriever
	Generator Generator

	// RateLimiter proactively throttles generation calls.
	// Nil uses a default of 10 req/s with burst 30.
	RateLimiter *rate.Limiter

	Logger *slog.Logger
}

func (cfg AnswererConfig) validate() error {
	if cfg.Embedder == nil {
		return errors.New("embedder is required")
	}
	if cfg.Retriever == nil {
		return errors.New("retriever is required")
	}
	if cfg.Generator == nil {
		return errors.New("generator is required")
	}
	return nil
}

// Answerer orchestrates the query pipeline: embed the question, retrieve
// similar chunks, assemble their texts into a context, and generate an
// answer grounded in that context.
//
// Answerer is stateless between calls and safe for concurrent use.
type Answerer struct {
	embedder  *Embedder
	retriever *Retriever
	generator Generator
	limiter   *rate.Limiter
	logger    *slog.Logger
}

// NewAnswerer creates an Answerer from the given configuration.
func NewAnswerer(cfg AnswererConfig) (*Answerer, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	limiter := cfg.RateLimiter
	if limiter == nil {
		limiter = rate.NewLimiter(10, 30)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Answerer{
		embedder:  cfg.Embedder,
		retriever: cfg.Retriever,
		generator: cfg.Generator,
		limiter:   limiter,
		logger:    logger,
	}, nil
}

// Answer runs one pass of the query pipeline for a single question.
//
// An empty question fails with ErrValidation. Embedding and retrieval
// failures propagate (ErrEmbedding, ErrRetrieval). An empty retrieval
// result is a terminal success: NoContextMessage is returned and the
// generator is never invoked. If the generator returns no usable text,
// FallbackMessage is returned.
// Search options are forwarded to the retriever; omitted options use
// the retrieval defaults.
func (a *Answerer) Answer(ctx context.Context, question string, opts ...SearchOption) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", fmt.Errorf("%w: question is required", ErrValidation)
	}

	vectors, err := a.embedder.EmbedTexts(ctx, []string{question})
	if err != nil {
		return "", err
	}

	matches, err := a.retriever.Retrieve(ctx, vectors[0], opts...)
	if err != nil {
		return "", err
	}

	if len(matches) == 0 {
		a.logger.Debug("no chunks cleared the similarity cutoff", "question_length", len(question))
		return NoContextMessage, nil
	}

	system := fmt.Sprintf(answerSystemTemplate, AssembleContext(matches))

	if err := a.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("waiting for generation slot: %w", err)
	}

	text, err := a.generator.Generate(ctx, system, question)
	if err != nil {
		return "", fmt.Errorf("generating answer: %w", err)
	}

	if strings.TrimSpace(text) == "" {
		a.logger.Warn("generator returned empty response")
		return FallbackMessage, nil
	}

	a.logger.Debug("answered question",
		"matches", len(matches),
		"response_length", len(text),
	)
	return text, nil
}
