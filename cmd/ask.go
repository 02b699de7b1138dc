package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ganderhq/gander/internal/rag"
)

var (
	askTopK   int32
	askCutoff float64
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question answered from the ingested documents",
	Example: `  gander ask "How does the garbage collector work?"
  gander ask --top-k 10 --cutoff 0.3 "What changed in the scheduler?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().Int32Var(&askTopK, "top-k", rag.DefaultTopK, "maximum number of chunks to retrieve")
	askCmd.Flags().Float64Var(&askCutoff, "cutoff", rag.DefaultSimilarityCutoff, "minimum similarity a chunk must exceed")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := setupApp(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	question := strings.TrimSpace(strings.Join(args, " "))
	if question == "" {
		return fmt.Errorf("question cannot be empty")
	}

	answer, err := a.Answerer.Answer(ctx, question,
		rag.WithTopK(askTopK), rag.WithCutoff(askCutoff))
	if err != nil {
		return fmt.Errorf("answering question: %w", err)
	}

	fmt.Println(answer)
	return nil
}
