// Package chunker splits free-form text into bounded, retrievable units.
//
// Splitting is sentence-based: a run of characters ending in one or more
// terminal punctuation marks (., !, ?) is one sentence. Consecutive
// sentences are grouped into chunks of at most a configured size. The
// result is deterministic for a given input, which keeps re-ingestion
// reproducible.
package chunker

import (
	"regexp"
	"strings"
)

// DefaultMaxSentences is the default number of sentences per chunk.
const DefaultMaxSentences = 5

// sentencePattern matches one sentence: non-terminal content followed by a
// run of terminal punctuation. Text without terminal punctuation yields no
// sentences at all.
var sentencePattern = regexp.MustCompile(`[^.!?]+[.!?]+`)

// Chunker groups sentences into fixed-size chunks.
// The zero value is not usable; construct with New.
type Chunker struct {
	maxSentences int
}

// New creates a Chunker producing chunks of at most maxSentences sentences.
// Non-positive values fall back to DefaultMaxSentences.
func New(maxSentences int) *Chunker {
	if maxSentences <= 0 {
		maxSentences = DefaultMaxSentences
	}
	return &Chunker{maxSentences: maxSentences}
}

// MaxSentences returns the configured chunk size.
func (c *Chunker) MaxSentences() int {
	return c.maxSentences
}

// Split splits text into ordered chunks of up to maxSentences sentences
// each, joined with a single space. Empty text, or text with no terminal
// punctuation, yields nil.
//
// Split is pure: no side effects, same input always yields the same output.
func (c *Chunker) Split(text string) []string {
	sentences := sentencePattern.FindAllString(text, -1)
	if len(sentences) == 0 {
		return nil
	}

	for i := range sentences {
		sentences[i] = strings.TrimSpace(sentences[i])
	}

	chunks := make([]string, 0, (len(sentences)+c.maxSentences-1)/c.maxSentences)
	for start := 0; start < len(sentences); start += c.maxSentences {
		end := start + c.maxSentences
		if end > len(sentences) {
			end = len(sentences)
		}
		chunks = append(chunks, strings.Join(sentences[start:end], " "))
	}
	return chunks
}
