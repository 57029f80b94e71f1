package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var registerCmd = &cobra.Command{
	Use:   "register <student-id>",
	Short: "Register a new student",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		store, err := openStore(cfg)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer store.Close()

		if err := store.RegisterStudent(context.Background(), args[0], name); err != nil {
			return err
		}
		fmt.Printf("Registered student %s\n", args[0])
		return nil
	},
}

func init() {
	registerCmd.Flags().String("name", "", "Display name (must be unique when given)")
}
