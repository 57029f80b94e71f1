// Package cmd wires the ai-tutor command tree.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/anamikapati/AI-Tutor/internal/config"
	"github.com/anamikapati/AI-Tutor/internal/embed"
	"github.com/anamikapati/AI-Tutor/internal/explainer"
	"github.com/anamikapati/AI-Tutor/internal/planner"
	"github.com/anamikapati/AI-Tutor/internal/progress"
	"github.com/anamikapati/AI-Tutor/internal/quiz"
	"github.com/anamikapati/AI-Tutor/internal/retriever"
	"github.com/anamikapati/AI-Tutor/internal/tutor"
)

var rootCmd = &cobra.Command{
	Use:   "ai-tutor",
	Short: "Retrieval-based math tutor",
	Long:  "AI-Tutor answers class 12 maths questions from an indexed textbook corpus and generates practice quizzes adapted to each student's history.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file")
	rootCmd.PersistentFlags().String("data", "", "Data directory holding the index (overrides config)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides AITUTOR_DB env var)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

func setupLogging(cmd *cobra.Command) {
	level := zerolog.InfoLevel
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if dir, _ := cmd.Flags().GetString("data"); dir != "" {
		cfg.DataDir = dir
	}
	if db, _ := cmd.Flags().GetString("db"); db != "" {
		cfg.DBPath = db
	}
	return cfg, nil
}

// openStore opens the progress database: --db flag (highest priority),
// then config, then the default XDG path.
func openStore(cfg config.Config) (*progress.Store, error) {
	dsn := cfg.DBPath
	if dsn == "" {
		var err error
		dsn, err = progress.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve database path: %w", err)
		}
	} else if err := progress.EnsureDir(dsn); err != nil {
		return nil, fmt.Errorf("create database dir: %w", err)
	}
	return progress.Open(dsn)
}

func newRetriever(ctx context.Context, cfg config.Config) (retriever.Retriever, error) {
	emb, err := embed.New(ctx, cfg.Embedding)
	if err != nil {
		return nil, fmt.Errorf("configure embedder: %w", err)
	}
	return retriever.New(cfg.IndexDir(), emb), nil
}

// newService assembles the full tutoring pipeline over an open store.
func newService(ctx context.Context, cfg config.Config, store *progress.Store) (*tutor.Service, error) {
	r, err := newRetriever(ctx, cfg)
	if err != nil {
		return nil, err
	}
	p := planner.New(planner.StrengthFunc(store.Strength))
	return tutor.New(p, explainer.New(r), quiz.New(r), store), nil
}
