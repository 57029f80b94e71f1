package tutor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anamikapati/AI-Tutor/internal/explainer"
	"github.com/anamikapati/AI-Tutor/internal/kb"
	"github.com/anamikapati/AI-Tutor/internal/planner"
	"github.com/anamikapati/AI-Tutor/internal/progress"
	"github.com/anamikapati/AI-Tutor/internal/quiz"
)

type stubRetriever struct {
	chunks []kb.Chunk
}

func (s stubRetriever) Retrieve(context.Context, string, int) ([]kb.Chunk, error) {
	return s.chunks, nil
}

type capturingLogger struct {
	records []progress.InteractionRecord
	err     error
}

func (c *capturingLogger) LogInteraction(_ context.Context, rec progress.InteractionRecord) error {
	if c.err != nil {
		return c.err
	}
	c.records = append(c.records, rec)
	return nil
}

func newTestService(chunks []kb.Chunk, logger InteractionLogger) *Service {
	r := stubRetriever{chunks: chunks}
	p := planner.New(nil)
	return New(p, explainer.New(r), quiz.New(r), logger)
}

func proseChunks() []kb.Chunk {
	return []kb.Chunk{
		{
			Chapter: "matrices",
			Text:    "A matrix is an ordered rectangular array of numbers or functions.",
			Type:    kb.ChunkText,
		},
	}
}

func TestAskExplains(t *testing.T) {
	logger := &capturingLogger{}
	svc := newTestService(proseChunks(), logger)

	resp, err := svc.Ask(context.Background(), "s1", "explain matrices")
	require.NoError(t, err)

	assert.Equal(t, planner.ActionExplain, resp.Plan.Action)
	assert.Equal(t, "matrices", resp.Plan.Topic)
	require.NotNil(t, resp.Explanation)
	assert.Nil(t, resp.Quiz)
	assert.Contains(t, resp.Explanation.Explanation, "ordered rectangular array")

	require.Len(t, logger.records, 1)
	rec := logger.records[0]
	assert.Equal(t, "s1", rec.StudentID)
	assert.Equal(t, "explain matrices", rec.Query)
	assert.Contains(t, rec.PlanJSON, "retrieve_and_explain")
	assert.Equal(t, "{}", rec.QuizMeta)
}

func TestAskGeneratesQuiz(t *testing.T) {
	logger := &capturingLogger{}
	svc := newTestService(proseChunks(), logger)

	resp, err := svc.Ask(context.Background(), "s1", "quiz me on matrices")
	require.NoError(t, err)

	assert.Equal(t, planner.ActionQuiz, resp.Plan.Action)
	assert.Nil(t, resp.Explanation)
	require.NotEmpty(t, resp.Quiz)
	assert.Len(t, resp.Quiz[0].Options, quiz.OptionCount)

	require.Len(t, logger.records, 1)
	assert.Contains(t, logger.records[0].PlanJSON, "generate_quiz")
	assert.Contains(t, logger.records[0].QuizMeta, "count")
}

func TestAskLoggingFailureDoesNotAbort(t *testing.T) {
	logger := &capturingLogger{err: errors.New("db locked")}
	svc := newTestService(proseChunks(), logger)

	resp, err := svc.Ask(context.Background(), "s1", "explain matrices")
	require.NoError(t, err)
	require.NotNil(t, resp.Explanation)
}

func TestAskNilLogger(t *testing.T) {
	svc := newTestService(proseChunks(), nil)

	resp, err := svc.Ask(context.Background(), "", "explain matrices")
	require.NoError(t, err)
	require.NotNil(t, resp.Explanation)
}

func TestAskEmptyRetrieval(t *testing.T) {
	logger := &capturingLogger{}
	svc := newTestService(nil, logger)

	resp, err := svc.Ask(context.Background(), "s1", "explain matrices")
	require.NoError(t, err)
	require.NotNil(t, resp.Explanation)
	assert.Equal(t, explainer.NoExplanation, resp.Explanation.Explanation)

	// Quizzes degrade to a placeholder, never an error.
	resp, err = svc.Ask(context.Background(), "s1", "quiz on matrices")
	require.NoError(t, err)
	require.Len(t, resp.Quiz, 1)
}
