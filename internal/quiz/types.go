// Package quiz converts definitional sentences from retrieved chunks into
// multiple-choice questions with generated distractors.
package quiz

// OptionCount is the number of options on every MCQ.
const OptionCount = 4

// MCQ is a multiple-choice question ready for display.
type MCQ struct {
	// Chapter is the source chapter the question was derived from.
	// Empty for synthesized fallback questions.
	Chapter string `json:"chapter"`

	// Question is the prompt, e.g. "What is a determinant?".
	Question string `json:"question"`

	// Options holds exactly four answer options. Order is shuffled per
	// generation and not stable across calls.
	Options []string `json:"options"`

	// Answer is the letter (A-D) of the correct option.
	Answer string `json:"answer"`

	// Explanation is the correct answer text, shown after answering.
	Explanation string `json:"explanation"`
}

// answerLetter converts an option index to its display letter.
func answerLetter(index int) string {
	return string(rune('A' + index))
}
