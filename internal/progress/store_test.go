package progress

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRegisterStudent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.RegisterStudent(ctx, "s1", "Asha"); err != nil {
		t.Fatalf("RegisterStudent: %v", err)
	}

	if err := s.RegisterStudent(ctx, "s1", "Someone Else"); !errors.Is(err, ErrDuplicateStudent) {
		t.Errorf("duplicate id err = %v, want ErrDuplicateStudent", err)
	}
	if err := s.RegisterStudent(ctx, "s2", "Asha"); !errors.Is(err, ErrDuplicateStudent) {
		t.Errorf("duplicate name err = %v, want ErrDuplicateStudent", err)
	}
	if err := s.RegisterStudent(ctx, "s3", "Ravi"); err != nil {
		t.Errorf("RegisterStudent distinct: %v", err)
	}
}

func TestTopicStatsAndStrength(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.RegisterStudent(ctx, "s1", ""); err != nil {
		t.Fatalf("RegisterStudent: %v", err)
	}

	record := func(topic string, correct bool) {
		t.Helper()
		if err := s.RecordAttempt(ctx, "s1", topic, "q", correct, "medium"); err != nil {
			t.Fatalf("RecordAttempt: %v", err)
		}
	}

	// matrices: 4/4 correct -> strong.
	for i := 0; i < 4; i++ {
		record("matrices", true)
	}
	// integrals: 1/3 correct -> weak.
	record("integrals", true)
	record("integrals", false)
	record("integrals", false)
	// probability: 1/1 correct -> medium (too few attempts).
	record("probability", true)

	stats, err := s.TopicStats(ctx, "s1")
	if err != nil {
		t.Fatalf("TopicStats: %v", err)
	}

	tests := []struct {
		topic        string
		wantAttempts int
		wantAccuracy float64
		wantStrength Strength
	}{
		{"matrices", 4, 100.0, StrengthStrong},
		{"integrals", 3, 33.3, StrengthWeak},
		{"probability", 1, 100.0, StrengthMedium},
	}
	for _, tt := range tests {
		st, ok := stats[tt.topic]
		if !ok {
			t.Errorf("missing topic %q", tt.topic)
			continue
		}
		if st.Attempts != tt.wantAttempts {
			t.Errorf("%s: Attempts = %d, want %d", tt.topic, st.Attempts, tt.wantAttempts)
		}
		if st.Accuracy != tt.wantAccuracy {
			t.Errorf("%s: Accuracy = %.1f, want %.1f", tt.topic, st.Accuracy, tt.wantAccuracy)
		}
		if st.Strength != tt.wantStrength {
			t.Errorf("%s: Strength = %q, want %q", tt.topic, st.Strength, tt.wantStrength)
		}
	}

	got, err := s.Strength(ctx, "s1", "matrices")
	if err != nil {
		t.Fatalf("Strength: %v", err)
	}
	if got != string(StrengthStrong) {
		t.Errorf("Strength(matrices) = %q, want strong", got)
	}

	got, err = s.Strength(ctx, "s1", "never-studied")
	if err != nil {
		t.Fatalf("Strength: %v", err)
	}
	if got != string(StrengthMedium) {
		t.Errorf("Strength(unknown topic) = %q, want medium", got)
	}
}

func TestClassifyStrength(t *testing.T) {
	tests := []struct {
		accuracy float64
		attempts int
		want     Strength
	}{
		{1.0, 3, StrengthStrong},
		{0.8, 3, StrengthStrong},
		{0.79, 3, StrengthMedium},
		{1.0, 2, StrengthMedium},
		{0.5, 2, StrengthWeak},
		{0.0, 2, StrengthWeak},
		{0.51, 2, StrengthMedium},
		{0.0, 1, StrengthMedium},
		{0.0, 0, StrengthMedium},
	}

	for _, tt := range tests {
		got := classifyStrength(tt.accuracy, tt.attempts)
		if got != tt.want {
			t.Errorf("classifyStrength(%.2f, %d) = %q, want %q", tt.accuracy, tt.attempts, got, tt.want)
		}
	}
}

func TestLogInteractionTruncates(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	err := s.LogInteraction(ctx, InteractionRecord{
		StudentID: "s1",
		Query:     "explain matrices",
		PlanJSON:  `{"action":"retrieve_and_explain"}`,
		Retrieved: strings.Repeat("r", 400),
		QuizMeta:  "{}",
		Response:  strings.Repeat("x", 900),
	})
	if err != nil {
		t.Fatalf("LogInteraction: %v", err)
	}

	rows, err := s.RecentInteractions(ctx, "s1", 10)
	if err != nil {
		t.Fatalf("RecentInteractions: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d interactions, want 1", len(rows))
	}

	row := rows[0]
	if row.ID == "" {
		t.Error("interaction id should be assigned")
	}
	if n := len(row.Retrieved); n != retrievedSnippetLen {
		t.Errorf("Retrieved length = %d, want %d", n, retrievedSnippetLen)
	}
	if n := len(row.Response); n != responseSnippetLen {
		t.Errorf("Response length = %d, want %d", n, responseSnippetLen)
	}
	if row.Query != "explain matrices" {
		t.Errorf("Query = %q", row.Query)
	}
}

func TestRecentInteractionsOrderAndLimit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		err := s.LogInteraction(ctx, InteractionRecord{
			StudentID: "s1",
			Query:     strings.Repeat("q", i+1),
			PlanJSON:  "{}",
			QuizMeta:  "{}",
		})
		if err != nil {
			t.Fatalf("LogInteraction: %v", err)
		}
	}

	rows, err := s.RecentInteractions(ctx, "s1", 3)
	if err != nil {
		t.Fatalf("RecentInteractions: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d interactions, want 3", len(rows))
	}
	for i := 1; i < len(rows); i++ {
		if rows[i].Timestamp.After(rows[i-1].Timestamp) {
			t.Errorf("interactions not newest-first at %d", i)
		}
	}
}
