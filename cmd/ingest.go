package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anamikapati/AI-Tutor/internal/embed"
	"github.com/anamikapati/AI-Tutor/internal/ingest"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <pdf-dir>",
	Short: "Build the knowledge base from a directory of chapter PDFs",
	Long:  "Ingest extracts text from every PDF in the directory, filters out page furniture and noise, embeds the remaining chunks, and writes the searchable index into the data directory. Each file name becomes a chapter label.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		ctx := context.Background()
		emb, err := embed.New(ctx, cfg.Embedding)
		if err != nil {
			return fmt.Errorf("configure embedder: %w", err)
		}

		count, err := ingest.NewBuilder(emb).Build(ctx, args[0], cfg.IndexDir())
		if err != nil {
			return err
		}

		fmt.Printf("Indexed %d chunks into %s (model %s)\n", count, cfg.IndexDir(), emb.ModelID())
		return nil
	},
}
