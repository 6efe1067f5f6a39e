package main

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/storyrec-dev/storyrec/internal/app"
	"github.com/storyrec-dev/storyrec/internal/config"
	"github.com/storyrec-dev/storyrec/internal/profile"
	"github.com/storyrec-dev/storyrec/internal/vectorstore"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show catalog statistics",
	Long:  `Display statistics about the story catalog and the VecLite index.`,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	defer a.Close()

	tagCounts := make(map[string]int)
	for _, story := range a.Stories {
		for _, tag := range story.Tags {
			tagCounts[strings.ToLower(tag)]++
		}
	}

	type tagCount struct {
		tag   string
		count int
	}
	tags := make([]tagCount, 0, len(tagCounts))
	for tag, count := range tagCounts {
		tags = append(tags, tagCount{tag, count})
	}
	sort.Slice(tags, func(i, j int) bool {
		if tags[i].count != tags[j].count {
			return tags[i].count > tags[j].count
		}
		return tags[i].tag < tags[j].tag
	})

	fmt.Println("=== storyrec Statistics ===")
	fmt.Println()
	fmt.Printf("Database: %s\n", cfg.DatabasePath)
	fmt.Println()
	fmt.Printf("Stories: %d\n", len(a.Stories))
	fmt.Printf("Distinct tags: %d\n", len(tags))
	fmt.Println()

	top := tags
	if len(top) > 10 {
		top = top[:10]
	}
	if len(top) > 0 {
		fmt.Println("Top tags:")
		for _, tc := range top {
			fmt.Printf("  %s: %d\n", tc.tag, tc.count)
		}
		fmt.Println()
	}

	fmt.Printf("Profiles: %s\n", strings.Join(profile.Names(), ", "))
	fmt.Println()

	if cfg.VecLitePath != "" {
		storyStore, err := vectorstore.New(vectorstore.Config{
			Path: cfg.VecLitePath,
		})
		if err != nil {
			slog.Warn("failed to open VecLite", "error", err)
		} else {
			defer storyStore.Close()
			stats := storyStore.Stats()
			fmt.Println("VecLite:")
			fmt.Printf("  Path: %s\n", cfg.VecLitePath)
			fmt.Printf("  Documents: %d\n", stats.Count)
			fmt.Printf("  Dimension: %d\n", stats.Dimension)
			fmt.Printf("  Distance: %s\n", stats.DistanceType)
			fmt.Printf("  Index: %s\n", stats.IndexType)
			fmt.Println()
		}
	}

	return nil
}
