package quiz

import "testing"

func TestExtractDefinition(t *testing.T) {
	tests := []struct {
		name           string
		sentence       string
		wantConcept    string
		wantDefinition string
		wantOK         bool
	}{
		{
			"is defined as",
			"A determinant is defined as a scalar value computed from a square matrix.",
			"A determinant",
			"a scalar value computed from a square matrix.",
			true,
		},
		{
			"is a",
			"A matrix is an ordered rectangular array of numbers or functions.",
			"A matrix",
			"ordered rectangular array of numbers or functions.",
			true,
		},
		{
			"refers to",
			"Integration refers to the process of finding the antiderivative.",
			"Integration",
			"the process of finding the antiderivative.",
			true,
		},
		{
			"the definition of",
			"The definition of continuity is that the limit equals the value.",
			"continuity",
			"that the limit equals the value.",
			true,
		},
		{
			"simple is",
			"Probability is the measure of uncertainty of events.",
			"Probability",
			"the measure of uncertainty of events.",
			true,
		},
		{"no definitional shape", "Consider the following example from the chapter.", "", "", false},
		{"interrogative concept", "What we saw is a direct consequence of the earlier theorem.", "", "", false},
		{"definition too short", "A scalar is a number.", "", "", false},
		{"numeric concept", "Chapter 12 is an introduction to probability and statistics.", "", "", false},
	}

	for _, tt := range tests {
		concept, definition, ok := extractDefinition(tt.sentence)
		if ok != tt.wantOK {
			t.Errorf("%s: ok = %v, want %v", tt.name, ok, tt.wantOK)
			continue
		}
		if !ok {
			continue
		}
		if concept != tt.wantConcept {
			t.Errorf("%s: concept = %q, want %q", tt.name, concept, tt.wantConcept)
		}
		if definition != tt.wantDefinition {
			t.Errorf("%s: definition = %q, want %q", tt.name, definition, tt.wantDefinition)
		}
	}
}

func TestIsBadConcept(t *testing.T) {
	tests := []struct {
		concept string
		want    bool
	}{
		{"matrix", false},
		{"ab", true},
		{"what happened", true},
		{"chapter 12", true},
		{"a very long multi word concept name", true},
		{"linear programming problem", false},
	}

	for _, tt := range tests {
		if got := isBadConcept(tt.concept); got != tt.want {
			t.Errorf("isBadConcept(%q) = %v, want %v", tt.concept, got, tt.want)
		}
	}
}

func TestSplitSentences(t *testing.T) {
	text := "First sentence here. Second one follows! Is this the third? Trailing fragment"
	got := splitSentences(text)
	want := []string{"First sentence here.", "Second one follows!", "Is this the third?", "Trailing fragment"}
	if len(got) != len(want) {
		t.Fatalf("splitSentences returned %d sentences, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sentence[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSplitSentencesKeepsDecimals(t *testing.T) {
	text := "The value 3.14 approximates pi. Next sentence."
	got := splitSentences(text)
	if len(got) != 2 {
		t.Fatalf("splitSentences = %v, want 2 sentences", got)
	}
	if got[0] != "The value 3.14 approximates pi." {
		t.Errorf("sentence[0] = %q", got[0])
	}
}

func TestCandidateSentences(t *testing.T) {
	text := "Too short. A matrix is an ordered rectangular array of numbers, see Fig 3.1 for details. Ok."
	got := candidateSentences(text)
	if len(got) != 1 {
		t.Fatalf("candidateSentences = %v, want exactly 1", got)
	}
	if want := "A matrix is an ordered rectangular array of numbers, see"; got[0] != want {
		t.Errorf("candidate = %q, want %q", got[0], want)
	}
}
