package textfilter

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// MinKeepLen is the minimum cleaned length, in characters, for a chunk to
// be worth returning to a student.
const MinKeepLen = 20

var (
	multiSpaceRe   = regexp.MustCompile(`[ \t]{2,}`)
	multiNewlineRe = regexp.MustCompile(`\n{3,}`)
	dashRunRe      = regexp.MustCompile(`-{3,}`)
	dotRunRe       = regexp.MustCompile(`\.{3,}`)

	// exerciseVerbRe matches the instruction verbs that open drill
	// questions in the source textbooks.
	exerciseVerbRe = regexp.MustCompile(`\b(Find|Calculate|Determine|Show that|Prove)\b`)

	pageNumberRe  = regexp.MustCompile(`^\d{1,3}$`)
	leadingItemRe = regexp.MustCompile(`^\d+\.`)
)

// Clean normalizes surface artifacts in extracted text: Unicode canonical
// composition, removal of non-printable characters (newline and tab
// excepted), and collapsing of whitespace runs and dot/dash separators.
func Clean(text string) string {
	if text == "" {
		return ""
	}

	text = norm.NFC.String(text)

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.IsPrint(r) || r == '\n' || r == '\t' {
			b.WriteRune(r)
		}
	}
	text = b.String()

	text = multiSpaceRe.ReplaceAllString(text, " ")
	text = multiNewlineRe.ReplaceAllString(text, "\n\n")
	text = dashRunRe.ReplaceAllString(text, "")
	text = dotRunRe.ReplaceAllString(text, ".")

	return strings.TrimSpace(text)
}

// Keep reports whether a cleaned chunk is worth returning: long enough,
// not a drill-question heading, not a numbered problem, not a bare page
// number.
func Keep(cleaned string) bool {
	if len([]rune(cleaned)) < MinKeepLen {
		return false
	}
	if exerciseVerbRe.MatchString(cleaned) {
		return false
	}
	if leadingItemRe.MatchString(cleaned) {
		return false
	}
	if pageNumberRe.MatchString(cleaned) {
		return false
	}
	return true
}
