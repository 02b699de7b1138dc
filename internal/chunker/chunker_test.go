package chunker

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func TestNew_Defaults(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{"positive value kept", 3, 3},
		{"zero falls back to default", 0, DefaultMaxSentences},
		{"negative falls back to default", -1, DefaultMaxSentences},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := New(tt.in).MaxSentences(); got != tt.want {
				t.Errorf("MaxSentences() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		maxSentences int
		want         []string
	}{
		{
			name:         "empty text yields no chunks",
			text:         "",
			maxSentences: 5,
			want:         nil,
		},
		{
			name:         "text without terminal punctuation yields no chunks",
			text:         "a fragment with no ending",
			maxSentences: 5,
			want:         nil,
		},
		{
			name:         "three sentences fit one chunk of five",
			text:         "Geese are birds. They migrate south. They honk loudly.",
			maxSentences: 5,
			want:         []string{"Geese are birds. They migrate south. They honk loudly."},
		},
		{
			name:         "sentences split across chunks",
			text:         "One. Two. Three. Four. Five.",
			maxSentences: 2,
			want:         []string{"One. Two.", "Three. Four.", "Five."},
		},
		{
			name:         "exclamation and question marks terminate sentences",
			text:         "Really? Yes! Good.",
			maxSentences: 1,
			want:         []string{"Really?", "Yes!", "Good."},
		},
		{
			name:         "run of terminal punctuation stays with its sentence",
			text:         "Wait... what?! Fine.",
			maxSentences: 1,
			want:         []string{"Wait...", "what?!", "Fine."},
		},
		{
			name:         "trailing fragment without punctuation is dropped",
			text:         "Complete sentence. trailing words",
			maxSentences: 5,
			want:         []string{"Complete sentence."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New(tt.maxSentences).Split(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Split() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

// TestSplit_ChunkCount verifies ceil(N/S) chunks for N sentences and size S,
// with no sentence lost and original order preserved.
func TestSplit_ChunkCount(t *testing.T) {
	for _, n := range []int{1, 4, 5, 6, 10, 11} {
		for _, s := range []int{1, 3, 5} {
			t.Run(fmt.Sprintf("n=%d_s=%d", n, s), func(t *testing.T) {
				var sb strings.Builder
				for i := 0; i < n; i++ {
					fmt.Fprintf(&sb, "Sentence number %d. ", i)
				}

				chunks := New(s).Split(sb.String())

				wantChunks := (n + s - 1) / s
				if len(chunks) != wantChunks {
					t.Fatalf("got %d chunks, want %d", len(chunks), wantChunks)
				}

				// Each chunk holds at most s sentences; together they
				// preserve every sentence in order.
				joined := strings.Join(chunks, " ")
				idx := 0
				for i := 0; i < n; i++ {
					sentence := fmt.Sprintf("Sentence number %d.", i)
					pos := strings.Index(joined[idx:], sentence)
					if pos < 0 {
						t.Fatalf("sentence %d missing or out of order", i)
					}
					idx += pos + len(sentence)
				}
				for _, chunk := range chunks {
					if got := strings.Count(chunk, "."); got > s {
						t.Errorf("chunk holds %d sentences, max %d", got, s)
					}
				}
			})
		}
	}
}

func TestSplit_Deterministic(t *testing.T) {
	c := New(2)
	text := "First. Second. Third. Fourth. Fifth."

	first := c.Split(text)
	for i := 0; i < 10; i++ {
		if got := c.Split(text); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differs: %#v vs %#v", i, got, first)
		}
	}
}
