package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history <student-id>",
	Short: "Show recent tutoring interactions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		store, err := openStore(cfg)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer store.Close()

		rows, err := store.RecentInteractions(context.Background(), args[0], limit)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			fmt.Println("No interactions recorded yet.")
			return nil
		}

		for _, r := range rows {
			fmt.Printf("%s  %s\n", r.Timestamp.Local().Format("2006-01-02 15:04"), r.Query)
			fmt.Printf("    plan: %s\n", r.Plan)
			if r.Response != "" {
				fmt.Printf("    response: %s\n", r.Response)
			}
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum interactions to show")
}
