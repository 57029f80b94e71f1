package quiz

import (
	"regexp"
	"strings"
)

// defPatterns match definitional phrasings, most specific first. Each has
// the concept in group 1 and the definition in group 2. The first match
// wins.
var defPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b([A-Za-z][A-Za-z\s]{2,50}) is defined as (.+)`),
	regexp.MustCompile(`(?i)\b([A-Za-z][A-Za-z\s]{2,50}) is (?:an|a) (.+)`),
	regexp.MustCompile(`(?i)\bThe definition of ([A-Za-z][A-Za-z\s]{1,50}) is (.+)`),
	regexp.MustCompile(`(?i)\b([A-Za-z][A-Za-z\s]{2,50}) refers to (.+)`),
}

// defSimpleRe is the last-resort "X is Y" pattern, anchored to the sentence
// start so mid-sentence clauses don't produce junk concepts.
var defSimpleRe = regexp.MustCompile(`(?i)^([A-Za-z][A-Za-z\s]{1,40}) is (.+)`)

// minDefinitionLen rejects definitions too short to stand alone as a
// correct answer.
const minDefinitionLen = 12

// interrogatives disqualify a concept: sentences about "what ..." or
// "this ..." are questions or references, not definitions.
var interrogatives = []string{"what", "which", "this", "that", "how", "why", "where", "when"}

var digitRe = regexp.MustCompile(`\d`)

// extractDefinition tries each definitional pattern against sentence and
// returns the matched concept and definition. ok is false when no pattern
// yields an acceptable pair.
func extractDefinition(sentence string) (concept, definition string, ok bool) {
	for _, pat := range defPatterns {
		if m := pat.FindStringSubmatch(sentence); m != nil {
			concept = strings.TrimSpace(m[1])
			definition = strings.TrimSpace(m[2])
			if acceptable(concept, definition) {
				return concept, definition, true
			}
		}
	}

	if m := defSimpleRe.FindStringSubmatch(sentence); m != nil {
		concept = strings.TrimSpace(m[1])
		definition = strings.TrimSpace(m[2])
		if acceptable(concept, definition) {
			return concept, definition, true
		}
	}

	return "", "", false
}

func acceptable(concept, definition string) bool {
	return !isBadConcept(concept) && len(definition) > minDefinitionLen
}

// isBadConcept rejects degenerate concepts: too short, numeric,
// interrogative, or spanning more than five words.
func isBadConcept(concept string) bool {
	c := strings.ToLower(strings.TrimSpace(concept))
	if len(c) < 3 {
		return true
	}
	for _, w := range interrogatives {
		if strings.Contains(c, w) {
			return true
		}
	}
	if digitRe.MatchString(c) {
		return true
	}
	return len(strings.Fields(c)) > 5
}

var (
	figureRefRe = regexp.MustCompile(`\bFig\b.*`)
	spaceRunRe  = regexp.MustCompile(`\s{2,}`)
)

// cleanSentenceText strips figure references and collapses whitespace
// before sentence screening.
func cleanSentenceText(text string) string {
	text = figureRefRe.ReplaceAllString(text, "")
	text = spaceRunRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// splitSentences splits text on terminal punctuation followed by
// whitespace, keeping the punctuation with the sentence.
func splitSentences(text string) []string {
	var sentences []string
	runes := []rune(text)
	start := 0
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if i+1 < len(runes) && !isSpaceRune(runes[i+1]) {
			continue
		}
		if s := strings.TrimSpace(string(runes[start : i+1])); s != "" {
			sentences = append(sentences, s)
		}
		start = i + 1
	}
	if s := strings.TrimSpace(string(runes[start:])); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func isSpaceRune(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// candidateSentences returns the cleaned sentences of a chunk whose length
// falls strictly between 20 and 300 characters, the band where
// definitional sentences live.
func candidateSentences(text string) []string {
	var out []string
	for _, s := range splitSentences(text) {
		cleaned := cleanSentenceText(s)
		n := len([]rune(cleaned))
		if n > 20 && n < 300 {
			out = append(out, cleaned)
		}
	}
	return out
}
