// Package tutor orchestrates a tutoring request end to end: plan the
// action, retrieve, then explain or quiz, logging the interaction along
// the way.
package tutor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/anamikapati/AI-Tutor/internal/explainer"
	"github.com/anamikapati/AI-Tutor/internal/planner"
	"github.com/anamikapati/AI-Tutor/internal/progress"
	"github.com/anamikapati/AI-Tutor/internal/quiz"
)

// Defaults for a single ask.
const (
	DefaultExplainTopK     = 3
	DefaultExplainMaxChars = 1000
	DefaultQuizQuestions   = 3
)

// InteractionLogger records tutoring exchanges. Write-only from the
// service's perspective: failures are swallowed, never surfaced.
// Implemented by the progress store.
type InteractionLogger interface {
	LogInteraction(ctx context.Context, rec progress.InteractionRecord) error
}

// Response is the result of one tutoring request. Exactly one of
// Explanation and Quiz is set, matching Plan.Action.
type Response struct {
	Plan        planner.Plan           `json:"plan"`
	Explanation *explainer.Explanation `json:"explanation,omitempty"`
	Quiz        []quiz.MCQ             `json:"quiz,omitempty"`
}

// Service wires the planner, explainer, and quiz generator together.
type Service struct {
	planner   *planner.Planner
	explainer *explainer.Explainer
	quizzes   *quiz.Generator
	logger    InteractionLogger
}

// New creates a tutoring service. logger may be nil, disabling interaction
// logging.
func New(p *planner.Planner, e *explainer.Explainer, q *quiz.Generator, logger InteractionLogger) *Service {
	return &Service{planner: p, explainer: e, quizzes: q, logger: logger}
}

// Ask processes one free-text student query: decide the plan, run the
// chosen branch, log the exchange best-effort, and return the response.
func (s *Service) Ask(ctx context.Context, studentID, query string) (*Response, error) {
	plan := s.planner.Decide(ctx, studentID, query, "")

	log.Info().
		Str("student", studentID).
		Str("action", string(plan.Action)).
		Str("topic", plan.Topic).
		Str("difficulty", string(plan.Difficulty)).
		Msg("plan decided")

	switch plan.Action {
	case planner.ActionQuiz:
		return s.runQuiz(ctx, studentID, query, plan)
	default:
		return s.runExplain(ctx, studentID, query, plan)
	}
}

func (s *Service) runExplain(ctx context.Context, studentID, query string, plan planner.Plan) (*Response, error) {
	expl, err := s.explainer.Explain(ctx, plan.Topic, DefaultExplainTopK, DefaultExplainMaxChars)
	if err != nil {
		return nil, fmt.Errorf("explain %q: %w", plan.Topic, err)
	}

	s.logInteraction(ctx, progress.InteractionRecord{
		StudentID: studentID,
		Query:     query,
		PlanJSON:  encodePlan(plan),
		Retrieved: expl.Explanation,
		QuizMeta:  "{}",
		Response:  expl.Explanation,
	})

	return &Response{Plan: plan, Explanation: expl}, nil
}

func (s *Service) runQuiz(ctx context.Context, studentID, query string, plan planner.Plan) (*Response, error) {
	mcqs, err := s.quizzes.Generate(ctx, plan.Topic, DefaultQuizQuestions, string(plan.Difficulty))
	if err != nil {
		return nil, fmt.Errorf("generate quiz for %q: %w", plan.Topic, err)
	}

	meta, _ := json.Marshal(map[string]any{
		"count":      len(mcqs),
		"difficulty": plan.Difficulty,
	})

	response := ""
	if len(mcqs) > 0 {
		response = mcqs[0].Question
	}

	s.logInteraction(ctx, progress.InteractionRecord{
		StudentID: studentID,
		Query:     query,
		PlanJSON:  encodePlan(plan),
		Retrieved: response,
		QuizMeta:  string(meta),
		Response:  response,
	})

	return &Response{Plan: plan, Quiz: mcqs}, nil
}

// logInteraction records the exchange. Logging is best-effort: a failure
// is reported in the process log and otherwise ignored, it must never
// abort the primary request.
func (s *Service) logInteraction(ctx context.Context, rec progress.InteractionRecord) {
	if s.logger == nil {
		return
	}
	if err := s.logger.LogInteraction(ctx, rec); err != nil {
		log.Warn().Err(err).Str("student", rec.StudentID).Msg("interaction logging failed")
	}
}

func encodePlan(plan planner.Plan) string {
	data, err := json.Marshal(plan)
	if err != nil {
		return "{}"
	}
	return string(data)
}
