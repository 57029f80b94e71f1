package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/anamikapati/AI-Tutor/internal/planner"
)

var askCmd = &cobra.Command{
	Use:   "ask [query...]",
	Short: "Ask the tutor a question",
	Long:  "Ask routes a free-text query through the planner: explanation queries retrieve and summarize textbook content, quiz queries generate practice questions.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		student, _ := cmd.Flags().GetString("student")
		query := strings.Join(args, " ")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		store, err := openStore(cfg)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer store.Close()

		ctx := context.Background()
		svc, err := newService(ctx, cfg, store)
		if err != nil {
			return err
		}

		resp, err := svc.Ask(ctx, student, query)
		if err != nil {
			return err
		}

		if resp.Plan.Action == planner.ActionQuiz {
			printQuiz(resp.Quiz)
			return nil
		}
		printExplanation(resp.Explanation)
		return nil
	},
}

func init() {
	askCmd.Flags().String("student", "", "Student id for history-based difficulty and logging")
}
