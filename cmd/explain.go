package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/anamikapati/AI-Tutor/internal/explainer"
	"github.com/anamikapati/AI-Tutor/internal/tutor"
)

var explainCmd = &cobra.Command{
	Use:   "explain [topic...]",
	Short: "Explain a topic from the indexed corpus",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topK, _ := cmd.Flags().GetInt("topk")
		maxChars, _ := cmd.Flags().GetInt("chars")
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

		expl, err := explainer.New(r).Explain(ctx, topic, topK, maxChars)
		if err != nil {
			return err
		}
		printExplanation(expl)
		return nil
	},
}

func init() {
	explainCmd.Flags().Int("topk", tutor.DefaultExplainTopK, "Number of passages to combine")
	explainCmd.Flags().Int("chars", tutor.DefaultExplainMaxChars, "Maximum explanation length in characters")
}
