package quiz

import (
	"context"
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/anamikapati/AI-Tutor/internal/retriever"
)

// retrievalWidth is how many chunks to pull per topic. Wider than the
// explain path because most sentences won't contain a usable definition.
const retrievalWidth = 20

var alphaWordRe = regexp.MustCompile(`[A-Za-z]{3,}`)

// Generator synthesizes MCQs from retrieved corpus chunks.
type Generator struct {
	retriever retriever.Retriever
	rng       *rand.Rand
}

// New creates a Generator. Pass retriever.Null{} to exercise only the
// fallback paths.
func New(r retriever.Retriever) *Generator {
	return &Generator{
		retriever: r,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Generate produces up to n questions for topic, never an empty slice.
// Chunks are scanned in similarity-rank order and sentences in document
// order; generation stops as soon as n questions are collected. When no
// sentence yields a definition, generic topical questions are synthesized;
// when retrieval itself returns nothing, a single placeholder question is
// returned. The difficulty parameter is accepted for future use and does
// not currently alter extraction or distractor selection.
func (g *Generator) Generate(ctx context.Context, topic string, n int, difficulty string) ([]MCQ, error) {
	if n <= 0 {
		n = 1
	}

	chunks, err := g.retriever.Retrieve(ctx, topic, retrievalWidth)
	if err != nil {
		return nil, err
	}

	var mcqs []MCQ
	for _, chunk := range chunks {
		for _, sentence := range candidateSentences(chunk.Text) {
			concept, definition, ok := extractDefinition(sentence)
			if !ok {
				continue
			}
			question := fmt.Sprintf("What is %s?", concept)
			mcqs = append(mcqs, buildMCQ(g.rng, chunk.Chapter, question, concept, definition))
			if len(mcqs) >= n {
				return mcqs, nil
			}
		}
	}

	if len(mcqs) > 0 {
		return mcqs, nil
	}

	if len(chunks) > 0 {
		log.Debug().Str("topic", topic).Msg("no definitional sentences found, using fallback questions")
		return g.fallbackQuestions(topic, chunks[0].Chapter, n), nil
	}

	return []MCQ{placeholderMCQ(topic)}, nil
}

// fallbackQuestions synthesizes n generic questions about the topic using
// its first few alphabetic words as the concept.
func (g *Generator) fallbackQuestions(topic, chapter string, n int) []MCQ {
	words := alphaWordRe.FindAllString(topic, 3)
	concept := strings.Join(words, " ")
	if concept == "" {
		concept = "the topic"
	}

	correct := fmt.Sprintf("A brief description of %s.", concept)
	question := fmt.Sprintf("Which of the following best describes %s?", concept)

	mcqs := make([]MCQ, 0, n)
	for i := 0; i < n; i++ {
		mcqs = append(mcqs, buildMCQ(g.rng, chapter, question, concept, correct))
	}
	return mcqs
}

// placeholderMCQ is the last-resort result when retrieval found nothing.
func placeholderMCQ(topic string) MCQ {
	return MCQ{
		Question:    fmt.Sprintf("No clear MCQs found for '%s'.", topic),
		Options:     []string{"-", "-", "-", "-"},
		Answer:      "A",
		Explanation: "No definitional or formula-based content detected.",
	}
}
