package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/storyrec-dev/storyrec/internal/app"
	"github.com/storyrec-dev/storyrec/internal/catalog"
	"github.com/storyrec-dev/storyrec/internal/config"
	"github.com/storyrec-dev/storyrec/internal/optimizer"
	"github.com/storyrec-dev/storyrec/internal/profile"
	"github.com/storyrec-dev/storyrec/internal/report"
)

var (
	optimizeProfile    string
	optimizeTarget     float64
	optimizeIterations int
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Optimize the recommendation prompt for a profile",
	Long: `Search over prompt variants with hill climbing, scoring each
against ground truth, then produce final recommendations with the best
prompt and save a full run report.

Example:
  storyrec optimize --profile shonen-fan --target 0.8 --iterations 15`,
	RunE: runOptimize,
}

func init() {
	optimizeCmd.Flags().StringVarP(&optimizeProfile, "profile", "p", "shonen-fan", "Profile to optimize for")
	optimizeCmd.Flags().Float64VarP(&optimizeTarget, "target", "t", 0.8, "Target score in [0,1]")
	optimizeCmd.Flags().IntVarP(&optimizeIterations, "iterations", "i", 15, "Maximum iterations")
	rootCmd.AddCommand(optimizeCmd)
}

func runOptimize(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := cfg.ValidateForOptimize(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	prof, err := profile.Get(optimizeProfile)
	if err != nil {
		return err
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	defer a.Close()

	fmt.Printf("Loaded %d stories\n", len(a.Stories))
	fmt.Println("Generating ground truth recommendations...")
	truth := a.Evaluator.GroundTruth(ctx, prof, cfg.Recommendations)

	fmt.Println()
	fmt.Println("Starting optimization with:")
	fmt.Printf("  Target score:   %.2f\n", optimizeTarget)
	fmt.Printf("  Max iterations: %d\n", optimizeIterations)
	fmt.Println()

	opt := optimizer.New(a.Stories, prof, optimizer.Config{
		Generator:       a.Generator,
		Evaluator:       a.Evaluator,
		Recommendations: cfg.Recommendations,
	})

	bestPrompt, bestScore := opt.Optimize(ctx, optimizeTarget, optimizeIterations)
	if bestPrompt == "" {
		fmt.Println("Optimization produced no usable prompt; falling back to the deterministic ranking.")
	}

	fmt.Println("Getting final recommendations...")
	recommendations := a.Recommender.Recommend(ctx, prof, bestPrompt, cfg.Recommendations)
	finalScore, feedback := a.Evaluator.Evaluate(recommendations, truth, prof)

	rep := report.New(prof.Name, optimizeTarget, optimizeIterations)
	rep.BestScore = bestScore
	rep.BestPrompt = bestPrompt
	rep.FinalScore = finalScore
	rep.Recommendations = recommendations
	rep.Feedback = feedback
	rep.History = opt.History()

	path, err := rep.Save(cfg.ReportDir)
	if err != nil {
		return fmt.Errorf("save report: %w", err)
	}

	byID := catalog.ByID(a.Stories)

	fmt.Println()
	fmt.Println("=== Optimization Results ===")
	fmt.Printf("Best score:  %.2f\n", bestScore)
	fmt.Printf("Final score: %.2f\n", finalScore)
	fmt.Println()
	fmt.Println("Final recommendations:")
	for _, id := range recommendations {
		if story, ok := byID[id]; ok {
			fmt.Printf("  %s — %s [%s]\n", story.ID, story.Title, strings.Join(story.Tags, ", "))
		}
	}

	if len(feedback) > 0 {
		fmt.Println()
		fmt.Println("Feedback:")
		for _, item := range feedback {
			fmt.Printf("  - %s\n", item)
		}
	}

	fmt.Println()
	fmt.Printf("Report saved to %s\n", path)

	return nil
}
