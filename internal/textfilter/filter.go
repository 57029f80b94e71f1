// Package textfilter implements the heuristics that separate explanatory
// prose from formulas, drill exercises, and page furniture. Textbook PDFs
// mix all of these in the same visual flow; the filter approximates "keep
// prose, drop the rest" without a grammar-level parser.
package textfilter

import (
	"regexp"
	"strings"
	"unicode"
)

// mathTokens are LaTeX commands, operators, and set symbols whose presence
// anywhere in a chunk marks it as math content.
var mathTokens = []string{
	`\frac`, `\sum`, `\int`, "=", "<", ">", "×", "÷", "∫", "Σ", "π", "√", "^", "_", "lim", "exp",
}

// basicPunct is the punctuation excluded from the symbol-ratio count.
const basicPunct = `.,;:-()[]{}'"/`

var numberedItemRe = regexp.MustCompile(`^\s*\d+[.)]`)

// Symbol/digit density thresholds. A chunk is only classified as math on
// density grounds when both fire together: symbol-heavy text with no digits
// is usually typographic noise, digit-heavy text with no symbols is usually
// a table of exercise answers.
const (
	symbolRatioThreshold = 0.28
	digitRatioThreshold  = 0.05
)

// IsMathBlock reports whether text is math or exercise content rather than
// explanatory prose. Any one of three signals is sufficient: a recognized
// math token, a high symbol ratio co-occurring with a non-trivial digit
// ratio, or a leading numbered-list marker.
func IsMathBlock(text string) bool {
	if text == "" {
		return false
	}

	for _, tok := range mathTokens {
		if strings.Contains(text, tok) {
			return true
		}
	}

	var total, symbols, digits int
	for _, r := range text {
		total++
		if unicode.IsDigit(r) {
			digits++
		}
		if r == '\n' {
			continue
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r) &&
			!strings.ContainsRune(basicPunct, r) {
			symbols++
		}
	}
	if total == 0 {
		return false
	}

	symbolRatio := float64(symbols) / float64(total)
	digitRatio := float64(digits) / float64(total)
	if symbolRatio > symbolRatioThreshold && digitRatio > digitRatioThreshold {
		return true
	}

	return numberedItemRe.MatchString(strings.TrimSpace(text))
}
