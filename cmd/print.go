package cmd

import (
	"fmt"
	"strings"

	"github.com/anamikapati/AI-Tutor/internal/explainer"
	"github.com/anamikapati/AI-Tutor/internal/quiz"
)

func printExplanation(e *explainer.Explanation) {
	fmt.Printf("Topic: %s\n", e.Topic)
	if e.Chapter != "" {
		fmt.Printf("Chapter: %s\n", e.Chapter)
	}
	fmt.Println()
	fmt.Println(e.Explanation)
	if len(e.Sources) > 0 {
		fmt.Println()
		fmt.Println("Sources:", strings.Join(e.Sources, "; "))
	}
}

func printQuiz(mcqs []quiz.MCQ) {
	for i, q := range mcqs {
		printMCQ(i+1, q)
		fmt.Println()
	}
}

func printMCQ(num int, q quiz.MCQ) {
	fmt.Printf("Q%d. %s\n", num, q.Question)
	for i, opt := range q.Options {
		fmt.Printf("  %c) %s\n", 'A'+i, opt)
	}
}
