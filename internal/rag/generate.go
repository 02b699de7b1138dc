package rag

import (
	"context"
	"fmt"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"google.golang.org/genai"
)

// GenkitGenerator produces answers through a Genkit model.
type GenkitGenerator struct {
	genkit      *genkit.Genkit
	modelName   string
	temperature float32
}

// NewGenkitGenerator creates a generator bound to the given Genkit
// instance. modelName may be empty to use the instance's default model.
// A negative temperature means unset and falls back to
// DefaultTemperature; zero is a valid deterministic setting and is
// kept as-is.
func NewGenkitGenerator(g *genkit.Genkit, modelName string, temperature float32) *GenkitGenerator {
	if temperature < 0 {
		temperature = DefaultTemperature
	}
	return &GenkitGenerator{
		genkit:      g,
		modelName:   modelName,
		temperature: temperature,
	}
}

// Generate implements Generator.
func (g *GenkitGenerator) Generate(ctx context.Context, system, question string) (string, error) {
	opts := []ai.GenerateOption{
		ai.WithSystem(system),
		ai.WithMessages(ai.NewUserMessage(ai.NewTextPart(question))),
		ai.WithConfig(&genai.GenerateContentConfig{
			Temperature: genai.Ptr(g.temperature),
		}),
	}
	if g.modelName != "" {
		opts = append(opts, ai.WithModelName(g.modelName))
	}

	response, err := genkit.Generate(ctx, g.genkit, opts...)
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}

	return response.Text(), nil
}
