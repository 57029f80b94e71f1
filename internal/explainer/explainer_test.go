package explainer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/anamikapati/AI-Tutor/internal/kb"
	"github.com/anamikapati/AI-Tutor/internal/retriever"
)

type stubRetriever struct {
	chunks []kb.Chunk
	err    error
}

func (s stubRetriever) Retrieve(context.Context, string, int) ([]kb.Chunk, error) {
	return s.chunks, s.err
}

func TestExplainJoinsChunks(t *testing.T) {
	r := stubRetriever{chunks: []kb.Chunk{
		{Chapter: "matrices", Text: "A matrix is an ordered rectangular array.", Type: kb.ChunkText},
		{Chapter: "determinants", Text: "The determinant is a scalar value.", Type: kb.ChunkText},
		{Chapter: "matrices", Text: "Matrices of the same order can be added.", Type: kb.ChunkText},
	}}

	got, err := New(r).Explain(context.Background(), "matrices", 3, 1000)
	if err != nil {
		t.Fatalf("Explain: %v", err)
	}

	wantText := "A matrix is an ordered rectangular array.\n\n" +
		"The determinant is a scalar value.\n\n" +
		"Matrices of the same order can be added."
	if got.Explanation != wantText {
		t.Errorf("Explanation = %q, want %q", got.Explanation, wantText)
	}
	if got.Chapter != "matrices" {
		t.Errorf("Chapter = %q, want %q", got.Chapter, "matrices")
	}
	wantSources := []string{"matrices", "determinants", "matrices"}
	if len(got.Sources) != len(wantSources) {
		t.Fatalf("Sources = %v, want %v", got.Sources, wantSources)
	}
	for i := range wantSources {
		if got.Sources[i] != wantSources[i] {
			t.Errorf("Sources[%d] = %q, want %q", i, got.Sources[i], wantSources[i])
		}
	}
}

func TestExplainEmptyRetrieval(t *testing.T) {
	got, err := New(retriever.Null{}).Explain(context.Background(), "matrices", 3, 1000)
	if err != nil {
		t.Fatalf("Explain: %v", err)
	}
	if got.Explanation != NoExplanation {
		t.Errorf("Explanation = %q, want sentinel %q", got.Explanation, NoExplanation)
	}
	if got.Chapter != "" {
		t.Errorf("Chapter = %q, want empty", got.Chapter)
	}
	if got.Sources == nil || len(got.Sources) != 0 {
		t.Errorf("Sources = %v, want empty non-nil slice", got.Sources)
	}
}

func TestExplainPropagatesError(t *testing.T) {
	wantErr := errors.New("index gone")
	_, err := New(stubRetriever{err: wantErr}).Explain(context.Background(), "matrices", 3, 1000)
	if !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want %v", err, wantErr)
	}
}

func TestTruncateAtWord(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		maxChars int
		want     string
	}{
		{"shorter than limit", "short text", 50, "short text"},
		{"zero limit means unlimited", "anything at all", 0, "anything at all"},
		{"cuts at word boundary", "one two three four", 12, "one two..."},
		{"exactly at limit", "one two", 7, "one two"},
	}

	for _, tt := range tests {
		if got := truncateAtWord(tt.in, tt.maxChars); got != tt.want {
			t.Errorf("%s: truncateAtWord(%q, %d) = %q, want %q", tt.name, tt.in, tt.maxChars, got, tt.want)
		}
	}
}

func TestExplainTruncates(t *testing.T) {
	r := stubRetriever{chunks: []kb.Chunk{
		{Chapter: "matrices", Text: strings.Repeat("word ", 100), Type: kb.ChunkText},
	}}

	got, err := New(r).Explain(context.Background(), "matrices", 1, 50)
	if err != nil {
		t.Fatalf("Explain: %v", err)
	}
	if n := len([]rune(got.Explanation)); n > 53 {
		t.Errorf("explanation length = %d, want <= 53", n)
	}
	if !strings.HasSuffix(got.Explanation, "...") {
		t.Errorf("truncated explanation %q should end with ellipsis", got.Explanation)
	}
	if strings.Contains(strings.TrimSuffix(got.Explanation, "..."), "wor ") {
		t.Errorf("truncation split a word: %q", got.Explanation)
	}
}
