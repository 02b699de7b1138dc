// Package fetch retrieves web pages and extracts their readable text
// for ingestion.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// maxBodySize caps the response body read per page.
const maxBodySize = 10 << 20 // 10 MiB

// Page is the extracted content of a fetched web page.
type Page struct {
	Title string
	Text  string
}

// Fetcher downloads pages and extracts their main text. Extraction
// prefers readability's article detection; pages it cannot parse fall
// back to the stripped text of the whole HTML document.
type Fetcher struct {
	client *http.Client
	logger *slog.Logger
}

// New creates a Fetcher. A nil client gets a 30 second timeout default;
// a nil logger falls back to slog.Default().
func New(client *http.Client, logger *slog.Logger) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		client: client,
		logger: logger,
	}
}

// Fetch downloads rawURL and extracts its readable content. Only http
// and https URLs are accepted.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Page, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid url %q: %w", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported url scheme %q", u.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: unexpected status %s", u, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", u, err)
	}

	page, err := extract(body, u)
	if err != nil {
		return nil, fmt.Errorf("extracting %s: %w", u, err)
	}

	f.logger.Debug("fetched page", "url", u, "title", page.Title, "text_length", len(page.Text))
	return page, nil
}

func extract(body []byte, u *url.URL) (*Page, error) {
	article, err := readability.FromReader(strings.NewReader(string(body)), u)
	if err == nil && strings.TrimSpace(article.TextContent) != "" {
		return &Page{
			Title: strings.TrimSpace(article.Title),
			Text:  strings.TrimSpace(article.TextContent),
		}, nil
	}

	// Pages without an extractable article still have usable text.
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	doc.Find("script, style, noscript").Remove()

	text := strings.TrimSpace(doc.Text())
	if text == "" {
		return nil, fmt.Errorf("no text content found")
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	return &Page{Title: title, Text: text}, nil
}
