package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/storyrec-dev/storyrec/internal/app"
	"github.com/storyrec-dev/storyrec/internal/catalog"
	"github.com/storyrec-dev/storyrec/internal/config"
	"github.com/storyrec-dev/storyrec/internal/profile"
)

var (
	recommendProfile string
	recommendCount   int
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend stories for a profile",
	Long: `Rank the catalog for a named profile using the deterministic
scoring engine and print the top stories.

Example:
  storyrec recommend --profile shonen-fan --count 10`,
	RunE: runRecommend,
}

func init() {
	recommendCmd.Flags().StringVarP(&recommendProfile, "profile", "p", "shonen-fan", "Profile to recommend for")
	recommendCmd.Flags().IntVarP(&recommendCount, "count", "n", 0, "Number of recommendations (default from config)")
	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	prof, err := profile.Get(recommendProfile)
	if err != nil {
		return err
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	defer a.Close()

	count := recommendCount
	if count <= 0 {
		count = cfg.Recommendations
	}

	ids := a.Recommender.Rank(prof, count)
	byID := catalog.ByID(a.Stories)

	fmt.Printf("=== Recommendations for %s ===\n\n", prof.Name)
	for i, id := range ids {
		story := byID[id]
		fmt.Printf("%2d. %s (ID: %s)\n", i+1, story.Title, story.ID)
		fmt.Printf("    Tags: %s\n", strings.Join(story.Tags, ", "))
	}

	return nil
}
