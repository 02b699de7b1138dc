// Package cmd contains the gander command-line interface.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gander",
	Short: "Gander - retrieval-augmented question answering over your documents",
	Long: `Gander ingests documents into a PostgreSQL vector store and answers
questions grounded in the stored content.

Ingest text, files, or web pages with "gander ingest", then ask
questions with "gander ask".`,
	SilenceUsage: true,
}

func init() {
	// Subcommands register themselves in their own files.
}
