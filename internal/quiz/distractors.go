package quiz

import (
	"fmt"
	"math/rand"
	"strings"
)

// baseDistractors is the academic-term bank incorrect options are drawn
// from. Terms are deliberately from the same subject area so distractors
// stay plausible.
var baseDistractors = []string{
	"Limit", "Derivative", "Integral", "Matrix", "Determinant",
	"Probability", "Permutation", "Combination", "Vector",
	"Scalar", "Continuity", "Differentiability", "Gradient", "Rank",
}

// pickDistractors returns three incorrect options for a question about
// concept: bank terms excluding the concept itself, shuffled, padded with
// synthetic "Option NN" labels if the bank runs out.
func pickDistractors(rng *rand.Rand, concept string) []string {
	picks := make([]string, 0, len(baseDistractors))
	for _, d := range baseDistractors {
		if !strings.EqualFold(d, concept) {
			picks = append(picks, d)
		}
	}
	rng.Shuffle(len(picks), func(i, j int) {
		picks[i], picks[j] = picks[j], picks[i]
	})

	if len(picks) > OptionCount-1 {
		picks = picks[:OptionCount-1]
	}
	for len(picks) < OptionCount-1 {
		picks = append(picks, fmt.Sprintf("Option %d", 10+rng.Intn(90)))
	}
	return picks
}

// buildMCQ assembles a question from a correct answer and fresh
// distractors, shuffling the options and recording the correct letter.
func buildMCQ(rng *rand.Rand, chapter, question, concept, correct string) MCQ {
	options := append(pickDistractors(rng, concept), correct)
	rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	answer := 0
	for i, o := range options {
		if o == correct {
			answer = i
			break
		}
	}

	return MCQ{
		Chapter:     chapter,
		Question:    question,
		Options:     options,
		Answer:      answerLetter(answer),
		Explanation: correct,
	}
}
