package planner

import "strings"

// canonicalTopics is the closed set of topic labels, aligned with the
// chapter PDFs the corpus is built from. Order matters: substring matching
// scans in this fixed order, so the result is deterministic.
var canonicalTopics = []string{
	"relations and functions",
	"inverse trigonometric function",
	"matrices",
	"determinants",
	"continuity and differentiability",
	"application of derivatives",
	"integrals",
	"application of integrals",
	"differential equations",
	"vector algebra",
	"three dimensional geometry",
	"linear programming",
	"probability",
}

// matchBestTopic returns the first canonical topic appearing as a
// case-insensitive substring of text, with stem fallbacks for the two
// topics students phrase in non-canonical ways. Empty when nothing matches.
func matchBestTopic(text string) string {
	if text == "" {
		return ""
	}
	s := strings.ToLower(text)
	for _, t := range canonicalTopics {
		if strings.Contains(s, t) {
			return t
		}
	}
	if strings.Contains(s, "matrix") || strings.Contains(s, "matrices") {
		return "matrices"
	}
	if strings.Contains(s, "probability") {
		return "probability"
	}
	return ""
}

// normalizeTopic canonicalizes a topic label for storage and lookup.
func normalizeTopic(topic string) string {
	return strings.ToLower(strings.TrimSpace(topic))
}
