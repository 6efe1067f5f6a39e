package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/storyrec-dev/storyrec/internal/config"
	"github.com/storyrec-dev/storyrec/internal/vectorstore"
)

var (
	searchLimit  int
	searchHybrid bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the story index",
	Long: `Search the VecLite story index by meaning, optionally fused with
BM25 text search.

Example:
  storyrec search "underdog ninja rises through the ranks" --hybrid`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "k", 5, "Maximum results")
	searchCmd.Flags().BoolVar(&searchHybrid, "hybrid", false, "Fuse vector and BM25 text search")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	query := args[0]

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := cfg.ValidateForIndex(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	storyStore, err := vectorstore.New(vectorstore.Config{
		Path: cfg.VecLitePath,
	})
	if err != nil {
		return fmt.Errorf("open veclite store: %w", err)
	}
	defer storyStore.Close()

	var results []vectorstore.SearchResult
	if searchHybrid {
		// vectorWeight=1.0, textWeight=0.3 to prioritize semantic similarity
		results, err = storyStore.HybridSearch(ctx, query, searchLimit, 1.0, 0.3)
	} else {
		results, err = storyStore.Search(ctx, query, searchLimit)
	}
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}

	if len(results) == 0 {
		fmt.Println("No matching stories found.")
		return nil
	}

	fmt.Printf("=== Results for %q ===\n\n", query)
	for i, r := range results {
		fmt.Printf("%2d. [%.2f] %s (ID: %s)\n", i+1, r.Similarity, r.Title, r.StoryID)
		if r.Tags != "" {
			fmt.Printf("    Tags: %s\n", r.Tags)
		}
	}

	return nil
}
