package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/anamikapati/AI-Tutor/internal/planner"
	"github.com/anamikapati/AI-Tutor/internal/quiz"
	"github.com/anamikapati/AI-Tutor/internal/tutor"
)

var quizCmd = &cobra.Command{
	Use:   "quiz [topic...]",
	Short: "Generate a practice quiz on a topic",
	Long:  "Quiz generates multiple-choice questions from the indexed corpus. With --student and --interactive, answers are scored and recorded so future difficulty adapts to performance.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, _ := cmd.Flags().GetInt("questions")
		student, _ := cmd.Flags().GetString("student")
		difficulty, _ := cmd.Flags().GetString("difficulty")
		interactive, _ := cmd.Flags().GetBool("interactive")
		topic := strings.Join(args, " ")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		ctx := context.Background()
		r, err := newRetriever(ctx, cfg)
		if err != nil {
			return err
		}

		if difficulty == "" && student != "" {
			difficulty = historyDifficulty(ctx, cmd, student, topic)
		}
		if difficulty == "" {
			difficulty = string(planner.DifficultyMedium)
		}

		mcqs, err := quiz.New(r).Generate(ctx, topic, n, difficulty)
		if err != nil {
			return err
		}

		if !interactive {
			printQuiz(mcqs)
			return nil
		}
		return runInteractiveQuiz(cmd, topic, student, difficulty, mcqs)
	},
}

func init() {
	quizCmd.Flags().IntP("questions", "n", tutor.DefaultQuizQuestions, "Number of questions")
	quizCmd.Flags().String("student", "", "Student id for difficulty adaptation and attempt recording")
	quizCmd.Flags().String("difficulty", "", "Force difficulty: easy, medium, or hard")
	quizCmd.Flags().BoolP("interactive", "i", false, "Answer questions at the prompt and record results")
}

// historyDifficulty looks up the student's strength for the topic and
// maps it to a starting difficulty. Failures fall back to medium.
func historyDifficulty(ctx context.Context, cmd *cobra.Command, student, topic string) string {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return string(planner.DifficultyMedium)
	}
	store, err := openStore(cfg)
	if err != nil {
		return string(planner.DifficultyMedium)
	}
	defer store.Close()

	p := planner.New(planner.StrengthFunc(store.Strength))
	plan := p.Decide(ctx, student, "", topic)
	return string(plan.Difficulty)
}

// runInteractiveQuiz asks each question at the terminal, scores the
// typed answer, and records attempts when a student id is given.
func runInteractiveQuiz(cmd *cobra.Command, topic, student, difficulty string, mcqs []quiz.MCQ) error {
	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)

	var recorder func(question string, correct bool)
	if student != "" {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		store, err := openStore(cfg)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer store.Close()

		recorder = func(question string, correct bool) {
			if err := store.RecordAttempt(ctx, student, topic, question, correct, difficulty); err != nil {
				log.Warn().Err(err).Msg("record attempt failed")
			}
		}
	}

	score := 0
	for i, q := range mcqs {
		printMCQ(i+1, q)
		fmt.Print("Your answer: ")
		if !scanner.Scan() {
			break
		}
		answer := strings.ToUpper(strings.TrimSpace(scanner.Text()))

		correct := answer == q.Answer
		if correct {
			score++
			fmt.Println("Correct!")
		} else {
			fmt.Printf("Incorrect. The answer is %s) %s\n", q.Answer, q.Explanation)
		}
		if recorder != nil {
			recorder(q.Question, correct)
		}
		fmt.Println()
	}

	fmt.Printf("Score: %d/%d\n", score, len(mcqs))
	return nil
}
