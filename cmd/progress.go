package cmd

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

var progressCmd = &cobra.Command{
	Use:   "progress <student-id>",
	Short: "Show a student's per-topic accuracy and strength",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		store, err := openStore(cfg)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer store.Close()

		stats, err := store.TopicStats(context.Background(), args[0])
		if err != nil {
			return err
		}
		if len(stats) == 0 {
			fmt.Println("No attempts recorded yet.")
			return nil
		}

		topics := make([]string, 0, len(stats))
		for t := range stats {
			topics = append(topics, t)
		}
		sort.Strings(topics)

		fmt.Printf("%-40s  %8s  %8s  %s\n", "Topic", "Attempts", "Accuracy", "Strength")
		fmt.Println(strings.Repeat("─", 72))
		for _, t := range topics {
			st := stats[t]
			fmt.Printf("%-40s  %8d  %7.1f%%  %s\n", t, st.Attempts, st.Accuracy, st.Strength)
		}
		return nil
	},
}
