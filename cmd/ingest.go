package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ganderhq/gander/internal/fetch"
)

var (
	ingestTitle string
	ingestFile  string
	ingestURL   string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [text]",
	Short: "Ingest a document into the knowledge store",
	Long: `Ingest splits a document into chunks, embeds them, and stores them
for retrieval.

The content comes from exactly one source: the text argument, --file,
--url, or stdin when piped.`,
	Example: `  gander ingest --title "Notes" "Go compiles quickly. It has garbage collection."
  gander ingest --title "Design doc" --file design.md
  gander ingest --url https://go.dev/blog/gc-guide
  cat notes.txt | gander ingest --title "Notes"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestTitle, "title", "", "document title (required unless --url provides one)")
	ingestCmd.Flags().StringVar(&ingestFile, "file", "", "read content from a file")
	ingestCmd.Flags().StringVar(&ingestURL, "url", "", "fetch content from a web page")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := setupApp(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	title := ingestTitle
	content, pageTitle, err := resolveContent(ctx, a.Fetcher, args)
	if err != nil {
		return err
	}
	if title == "" {
		title = pageTitle
	}
	if title == "" {
		return fmt.Errorf("--title is required")
	}

	doc, chunks, err := a.Ingestor.Ingest(ctx, title, content)
	if err != nil {
		return fmt.Errorf("ingesting document: %w", err)
	}

	fmt.Printf("Ingested %q (%s) with %d chunks\n", doc.Title, doc.ID, len(chunks))
	return nil
}

// resolveContent picks the single configured content source. The second
// return value is a title extracted from the source, if any.
func resolveContent(ctx context.Context, fetcher *fetch.Fetcher, args []string) (string, string, error) {
	sources := 0
	if len(args) > 0 {
		sources++
	}
	if ingestFile != "" {
		sources++
	}
	if ingestURL != "" {
		sources++
	}
	if sources > 1 {
		return "", "", fmt.Errorf("use only one of: text argument, --file, --url")
	}

	switch {
	case len(args) > 0:
		return args[0], "", nil

	case ingestFile != "":
		data, err := os.ReadFile(ingestFile) // #nosec G304 -- user-supplied path is the point of the flag
		if err != nil {
			return "", "", fmt.Errorf("reading %s: %w", ingestFile, err)
		}
		return string(data), "", nil

	case ingestURL != "":
		page, err := fetcher.Fetch(ctx, ingestURL)
		if err != nil {
			return "", "", fmt.Errorf("fetching %s: %w", ingestURL, err)
		}
		return page.Text, page.Title, nil

	default:
		// Piped stdin.
		stat, err := os.Stdin.Stat()
		if err == nil && (stat.Mode()&os.ModeCharDevice) == 0 {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return "", "", fmt.Errorf("reading stdin: %w", err)
			}
			if strings.TrimSpace(string(data)) != "" {
				return string(data), "", nil
			}
		}
		return "", "", fmt.Errorf("no content: pass a text argument, --file, --url, or pipe stdin")
	}
}
