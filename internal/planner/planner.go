// Package planner maps a student query and history to a deterministic plan:
// which action to take, on which topic, at which difficulty.
package planner

import (
	"context"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
)

// Action is the high-level pipeline branch a query resolves to.
type Action string

const (
	ActionExplain Action = "retrieve_and_explain"
	ActionQuiz    Action = "generate_quiz"
)

// Difficulty is the target difficulty for the response.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Plan is the planner's decision for a single request. Created fresh per
// request and never persisted directly, only logged.
type Plan struct {
	Action     Action     `json:"action"`
	Topic      string     `json:"topic"`
	Difficulty Difficulty `json:"difficulty"`
}

// StrengthProvider reports a student's historical mastery for a topic as
// "weak", "medium", or "strong". Implemented by the progress store.
type StrengthProvider interface {
	Strength(ctx context.Context, studentID, topic string) (string, error)
}

// StrengthFunc adapts a plain function to StrengthProvider.
type StrengthFunc func(ctx context.Context, studentID, topic string) (string, error)

func (f StrengthFunc) Strength(ctx context.Context, studentID, topic string) (string, error) {
	return f(ctx, studentID, topic)
}

// quizKeywords mark quiz intent anywhere in the query.
var quizKeywords = []string{"quiz", "practice", "test", "exercise", "questions", "mcq", "solve"}

// explainKeywords are recognized but do not change the outcome: the default
// action is already retrieve_and_explain. The branch is kept so the intent
// taxonomy stays visible in one place.
var explainKeywords = []string{"explain", "understand", "stuck", "help", "why", "how", "define"}

// Literal difficulty overrides. Checked as standalone words, in fixed
// order: easy first, then hard, so a query containing both yields hard.
var (
	easyWordRe = regexp.MustCompile(`\beasy\b`)
	hardWordRe = regexp.MustCompile(`\bhard\b|\bdifficult\b`)
)

// Planner decides plans from queries and student history. Purely
// deterministic: identical inputs and profile snapshot produce identical
// plans. It never returns an error; profile read failures degrade to
// medium difficulty.
type Planner struct {
	strengths StrengthProvider
}

// New creates a Planner reading history through strengths.
// A nil provider is valid and yields medium difficulty for everyone.
func New(strengths StrengthProvider) *Planner {
	return &Planner{strengths: strengths}
}

// Decide resolves the plan for a query. explicitTopic, when non-empty,
// bypasses topic inference.
func (p *Planner) Decide(ctx context.Context, studentID, query, explicitTopic string) Plan {
	q := strings.ToLower(strings.TrimSpace(query))

	// Topic: explicit > canonical substring match > the raw query itself.
	topic := explicitTopic
	if topic == "" {
		topic = matchBestTopic(q)
	}
	if topic == "" {
		topic = q
	}
	topic = normalizeTopic(topic)

	// Action: quiz keywords win; everything else explains.
	action := ActionExplain
	if containsAny(q, quizKeywords) {
		action = ActionQuiz
	} else if containsAny(q, explainKeywords) {
		action = ActionExplain
	}

	// Difficulty: history first, literal overrides second.
	difficulty := p.historyDifficulty(ctx, studentID, topic)
	if easyWordRe.MatchString(q) {
		difficulty = DifficultyEasy
	}
	if hardWordRe.MatchString(q) {
		difficulty = DifficultyHard
	}

	return Plan{Action: action, Topic: topic, Difficulty: difficulty}
}

// historyDifficulty maps topic strength to a base difficulty:
// weak students get easy questions, strong students get hard ones.
// Missing student, missing profile, or a read failure all mean medium.
func (p *Planner) historyDifficulty(ctx context.Context, studentID, topic string) Difficulty {
	if studentID == "" || p.strengths == nil {
		return DifficultyMedium
	}

	strength, err := p.strengths.Strength(ctx, studentID, topic)
	if err != nil {
		log.Warn().Err(err).Str("student", studentID).Str("topic", topic).
			Msg("strength lookup failed, defaulting to medium")
		return DifficultyMedium
	}

	switch strength {
	case "weak":
		return DifficultyEasy
	case "strong":
		return DifficultyHard
	default:
		return DifficultyMedium
	}
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
