// Package explainer assembles retrieved chunks into a bounded-length,
// student-facing explanation.
package explainer

import (
	"context"
	"strings"

	"github.com/anamikapati/AI-Tutor/internal/retriever"
)

// NoExplanation is the sentinel text returned when retrieval produces
// nothing usable.
const NoExplanation = "No explanation found."

// Explanation is the assembled result for a topic.
type Explanation struct {
	Topic string `json:"topic"`

	// Explanation is the joined chunk text, truncated at a word boundary.
	Explanation string `json:"explanation"`

	// Chapter is the first contributing chapter, empty when none.
	Chapter string `json:"chapter,omitempty"`

	// Sources lists all contributing chapters in retrieval-rank order.
	// Duplicates are kept; they indicate how much each chapter contributed.
	Sources []string `json:"sources"`
}

// Explainer builds explanations from a Retriever.
type Explainer struct {
	retriever retriever.Retriever
}

// New creates an Explainer. Pass retriever.Null{} to get sentinel
// explanations without an index.
func New(r retriever.Retriever) *Explainer {
	return &Explainer{retriever: r}
}

// Explain retrieves up to topK chunks for topic and joins them into a
// single explanation of at most maxChars characters, truncated at the last
// whole-word boundary with an ellipsis marker. An empty retrieval yields
// the sentinel explanation, not an error.
func (e *Explainer) Explain(ctx context.Context, topic string, topK, maxChars int) (*Explanation, error) {
	chunks, err := e.retriever.Retrieve(ctx, topic, topK)
	if err != nil {
		return nil, err
	}

	var parts []string
	sources := []string{}
	for _, c := range chunks {
		text := strings.TrimSpace(c.Text)
		if text == "" {
			continue
		}
		parts = append(parts, text)
		if c.Chapter != "" {
			sources = append(sources, c.Chapter)
		}
	}

	if len(parts) == 0 {
		return &Explanation{
			Topic:       topic,
			Explanation: NoExplanation,
			Sources:     []string{},
		}, nil
	}

	text := truncateAtWord(strings.Join(parts, "\n\n"), maxChars)

	chapter := ""
	if len(sources) > 0 {
		chapter = sources[0]
	}

	return &Explanation{
		Topic:       topic,
		Explanation: text,
		Chapter:     chapter,
		Sources:     sources,
	}, nil
}

// truncateAtWord cuts s to at most maxChars characters without splitting a
// word, appending "..." when anything was removed.
func truncateAtWord(s string, maxChars int) string {
	runes := []rune(s)
	if maxChars <= 0 || len(runes) <= maxChars {
		return s
	}
	cut := string(runes[:maxChars])
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "..."
}
