package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/storyrec-dev/storyrec/internal/app"
	"github.com/storyrec-dev/storyrec/internal/catalog"
	"github.com/storyrec-dev/storyrec/internal/config"
	"github.com/storyrec-dev/storyrec/internal/generator"
)

var generateCount int

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate new catalog stories with Claude",
	Long: `Ask Claude for new story entries and merge them into the catalog,
skipping identifiers that already exist.

Example:
  storyrec generate --count 95`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().IntVarP(&generateCount, "count", "n", 95, "Number of stories to request")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := cfg.ValidateForGeneration(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	defer a.Close()

	fmt.Printf("Requesting %d new stories...\n", generateCount)

	storyGen := generator.NewStoryGenerator(a.Generator)
	generated, err := storyGen.Generate(ctx, generateCount)
	if err != nil {
		return fmt.Errorf("generate stories: %w", err)
	}

	existing := catalog.IDSet(a.Stories)
	fresh := make([]catalog.Story, 0, len(generated))
	skipped := 0
	for _, story := range generated {
		if existing[story.ID] {
			skipped++
			continue
		}
		existing[story.ID] = true
		fresh = append(fresh, story)
	}

	if err := a.Store.Save(ctx, fresh); err != nil {
		return fmt.Errorf("save stories: %w", err)
	}

	fmt.Printf("Parsed %d stories, added %d, skipped %d duplicates\n",
		len(generated), len(fresh), skipped)

	return nil
}
