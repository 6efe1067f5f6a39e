package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/storyrec-dev/storyrec/internal/app"
	"github.com/storyrec-dev/storyrec/internal/config"
	"github.com/storyrec-dev/storyrec/internal/vectorstore"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the VecLite story index",
	Long: `Embed every catalog story into the VecLite index used by the
search command. Requires a veclite.yaml with an embedding provider.`,
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := cfg.ValidateForIndex(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	defer a.Close()

	storyStore, err := vectorstore.New(vectorstore.Config{
		Path: cfg.VecLitePath,
	})
	if err != nil {
		return fmt.Errorf("open veclite store: %w", err)
	}
	defer storyStore.Close()

	fmt.Printf("Indexing %d stories...\n", len(a.Stories))

	indexed := 0
	for _, story := range a.Stories {
		if _, err := storyStore.InsertStory(ctx, story); err != nil {
			slog.Error("failed to index story", "id", story.ID, "error", err)
			continue
		}
		indexed++
	}

	if err := storyStore.Sync(); err != nil {
		return fmt.Errorf("sync index: %w", err)
	}

	fmt.Printf("Indexed %d of %d stories (%d total in index)\n",
		indexed, len(a.Stories), storyStore.Count())

	return nil
}
