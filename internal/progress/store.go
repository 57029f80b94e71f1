package progress

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/extra/bundebug"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// ErrDuplicateStudent is returned when a student id or name is already
// registered.
var ErrDuplicateStudent = errors.New("student already registered")

// Snippet limits for interaction logging.
const (
	retrievedSnippetLen = 250
	responseSnippetLen  = 500
)

// Store holds the bun client over the progress database.
type Store struct {
	sqldb *sql.DB
	db    *bun.DB
}

// Open creates a Store connected to the SQLite database at dsn.
// It applies recommended pragmas and creates missing tables.
func Open(dsn string) (*Store, error) {
	sqldb, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(sqldb); err != nil {
		sqldb.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())
	db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(false)))

	s := &Store{sqldb: sqldb, db: db}
	if err := s.createTables(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// applyPragmas configures SQLite for single-user durability and speed.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func (s *Store) createTables(ctx context.Context) error {
	models := []any{
		(*Student)(nil),
		(*Attempt)(nil),
		(*Interaction)(nil),
	}
	for _, m := range models {
		if _, err := s.db.NewCreateTable().Model(m).IfNotExists().Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

// RegisterStudent adds a new student, rejecting duplicate ids and names.
func (s *Store) RegisterStudent(ctx context.Context, studentID, name string) error {
	exists, err := s.db.NewSelect().Model((*Student)(nil)).
		Where("student_id = ?", studentID).
		Exists(ctx)
	if err != nil {
		return fmt.Errorf("check student id: %w", err)
	}
	if exists {
		return fmt.Errorf("%w: id %q", ErrDuplicateStudent, studentID)
	}

	if name != "" {
		exists, err = s.db.NewSelect().Model((*Student)(nil)).
			Where("name = ?", name).
			Exists(ctx)
		if err != nil {
			return fmt.Errorf("check student name: %w", err)
		}
		if exists {
			return fmt.Errorf("%w: name %q", ErrDuplicateStudent, name)
		}
	}

	student := &Student{
		StudentID: studentID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.db.NewInsert().Model(student).Exec(ctx); err != nil {
		return fmt.Errorf("insert student: %w", err)
	}
	return nil
}

// RecordAttempt stores one answered question.
func (s *Store) RecordAttempt(ctx context.Context, studentID, topic, question string, correct bool, difficulty string) error {
	attempt := &Attempt{
		StudentID:  studentID,
		Topic:      topic,
		Question:   question,
		Correct:    correct,
		Difficulty: difficulty,
		Timestamp:  time.Now().UTC(),
	}
	if _, err := s.db.NewInsert().Model(attempt).Exec(ctx); err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}
	return nil
}

// TopicStats returns per-topic aggregates for a student.
func (s *Store) TopicStats(ctx context.Context, studentID string) (map[string]TopicStats, error) {
	var rows []struct {
		Topic    string `bun:"topic"`
		Correct  int    `bun:"correct_count"`
		Attempts int    `bun:"attempt_count"`
	}
	err := s.db.NewSelect().Model((*Attempt)(nil)).
		ColumnExpr("topic").
		ColumnExpr("SUM(correct) AS correct_count").
		ColumnExpr("COUNT(*) AS attempt_count").
		Where("student_id = ?", studentID).
		GroupExpr("topic").
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("aggregate attempts: %w", err)
	}

	stats := make(map[string]TopicStats, len(rows))
	for _, r := range rows {
		accuracy := 0.0
		if r.Attempts > 0 {
			accuracy = float64(r.Correct) / float64(r.Attempts)
		}
		stats[r.Topic] = TopicStats{
			Accuracy: math.Round(accuracy*1000) / 10,
			Attempts: r.Attempts,
			Strength: classifyStrength(accuracy, r.Attempts),
		}
	}
	return stats, nil
}

// Strength returns the strength classification for one (student, topic)
// pair. Topics with no attempts are medium.
func (s *Store) Strength(ctx context.Context, studentID, topic string) (string, error) {
	stats, err := s.TopicStats(ctx, studentID)
	if err != nil {
		return "", err
	}
	if st, ok := stats[topic]; ok {
		return string(st.Strength), nil
	}
	return string(StrengthMedium), nil
}

// InteractionRecord is the input for LogInteraction. Snippets are truncated
// by the store, callers pass full text.
type InteractionRecord struct {
	StudentID string
	Query     string
	PlanJSON  string
	Retrieved string
	QuizMeta  string
	Response  string
}

// LogInteraction appends one tutoring exchange to the interaction log.
func (s *Store) LogInteraction(ctx context.Context, rec InteractionRecord) error {
	row := &Interaction{
		ID:        uuid.NewString(),
		StudentID: rec.StudentID,
		Query:     rec.Query,
		Plan:      rec.PlanJSON,
		Retrieved: truncate(rec.Retrieved, retrievedSnippetLen),
		QuizMeta:  rec.QuizMeta,
		Response:  truncate(rec.Response, responseSnippetLen),
		Timestamp: time.Now().UTC(),
	}
	if _, err := s.db.NewInsert().Model(row).Exec(ctx); err != nil {
		return fmt.Errorf("insert interaction: %w", err)
	}
	return nil
}

// RecentInteractions returns up to limit interactions for a student,
// newest first.
func (s *Store) RecentInteractions(ctx context.Context, studentID string, limit int) ([]Interaction, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []Interaction
	err := s.db.NewSelect().Model(&rows).
		Where("student_id = ?", studentID).
		Order("timestamp DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("query interactions: %w", err)
	}
	return rows, nil
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// DefaultDBPath resolves the database file path in priority order:
// 1. AITUTOR_DB environment variable
// 2. $XDG_DATA_HOME/ai-tutor/students.db
// 3. ~/.local/share/ai-tutor/students.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("AITUTOR_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "ai-tutor", "students.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
