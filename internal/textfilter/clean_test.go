package textfilter

import "testing"

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"trims space", "  hello world  ", "hello world"},
		{"collapses spaces", "a    b\t\tc", "a b c"},
		{"collapses newlines", "a\n\n\n\nb", "a\n\nb"},
		{"strips dash runs", "section ----- title", "section  title"},
		{"collapses dot runs", "continued......end", "continued.end"},
		{"drops control chars", "a\x00b\x07c", "abc"},
		{"keeps tabs and newlines", "a\tb\nc", "a\tb\nc"},
	}

	for _, tt := range tests {
		if got := Clean(tt.in); got != tt.want {
			t.Errorf("%s: Clean(%q) = %q, want %q", tt.name, tt.in, got, tt.want)
		}
	}
}

func TestKeep(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"normal prose", "A matrix is an ordered rectangular array of numbers.", true},
		{"too short", "Short text.", false},
		{"exercise verb", "Find the determinant of the following matrix values.", false},
		{"show that", "Show that the function is continuous at zero for all inputs.", false},
		{"numbered problem", "1. Consider the function defined on the closed interval.", false},
		{"bare page number", "142", false},
		{"exactly at threshold", "abcdefghij abcdefghi", true},
	}

	for _, tt := range tests {
		if got := Keep(tt.in); got != tt.want {
			t.Errorf("%s: Keep(%q) = %v, want %v", tt.name, tt.in, got, tt.want)
		}
	}
}
