// Package progress persists student registrations, quiz attempts, and
// interaction logs in SQLite, and derives per-topic strength from attempt
// history. The tutoring core reads it only through narrow interfaces.
package progress

import (
	"time"

	"github.com/uptrace/bun"
)

// Student is a registered learner.
type Student struct {
	bun.BaseModel `bun:"table:students,alias:s"`

	StudentID string    `bun:"student_id,pk"`
	Name      string    `bun:"name,unique"`
	CreatedAt time.Time `bun:"created_at,notnull"`
}

// Attempt records one answered quiz question.
type Attempt struct {
	bun.BaseModel `bun:"table:attempts,alias:a"`

	ID         int64     `bun:"id,pk,autoincrement"`
	StudentID  string    `bun:"student_id,notnull"`
	Topic      string    `bun:"topic,notnull"`
	Question   string    `bun:"question"`
	Correct    bool      `bun:"correct,notnull"`
	Difficulty string    `bun:"difficulty"`
	Timestamp  time.Time `bun:"timestamp,notnull"`
}

// Interaction is one logged tutoring exchange: the query, the plan the
// planner chose, and snippets of what was retrieved and returned.
type Interaction struct {
	bun.BaseModel `bun:"table:interactions,alias:i"`

	ID        string    `bun:"id,pk"`
	StudentID string    `bun:"student_id,notnull"`
	Query     string    `bun:"query"`
	Plan      string    `bun:"plan"`      // JSON-encoded plan
	Retrieved string    `bun:"retrieved"` // snippet, truncated to 250 chars
	QuizMeta  string    `bun:"quiz_meta"` // JSON quiz metadata
	Response  string    `bun:"response"`  // snippet, truncated to 500 chars
	Timestamp time.Time `bun:"timestamp,notnull"`
}

// Strength is a student's historical mastery classification for a topic.
type Strength string

const (
	StrengthWeak   Strength = "weak"
	StrengthMedium Strength = "medium"
	StrengthStrong Strength = "strong"
)

// TopicStats aggregates a student's attempts on one topic.
type TopicStats struct {
	// Accuracy is the percentage of correct attempts, rounded to one
	// decimal place.
	Accuracy float64 `json:"accuracy"`

	Attempts int      `json:"attempts"`
	Strength Strength `json:"strength"`
}

// classifyStrength maps attempt history to a strength label. Thresholds:
// three or more attempts at 80%+ accuracy is strong, two or more at 50%
// or less is weak, anything else is medium.
func classifyStrength(accuracy float64, attempts int) Strength {
	switch {
	case attempts >= 3 && accuracy >= 0.8:
		return StrengthStrong
	case attempts >= 2 && accuracy <= 0.5:
		return StrengthWeak
	default:
		return StrengthMedium
	}
}
