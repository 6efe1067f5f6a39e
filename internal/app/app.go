// Package app wires configuration, the catalog store, and the agents
// into one container for the CLI commands.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/storyrec-dev/storyrec/internal/catalog"
	"github.com/storyrec-dev/storyrec/internal/config"
	"github.com/storyrec-dev/storyrec/internal/evaluator"
	"github.com/storyrec-dev/storyrec/internal/generator"
	"github.com/storyrec-dev/storyrec/internal/recommender"
	"github.com/storyrec-dev/storyrec/internal/scoring"
)

// App is the main application container holding all dependencies.
type App struct {
	Config      *config.Config
	Store       *catalog.Store
	Stories     []catalog.Story
	Generator   generator.TextGenerator
	Evaluator   *evaluator.Evaluator
	Recommender *recommender.Agent
}

// New creates an application instance with all dependencies wired up.
// An empty catalog is bootstrapped with the embedded seed stories.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	store, err := catalog.NewStore(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, err
	}

	stories, err := store.Load(ctx)
	if err != nil {
		store.Close()
		return nil, err
	}

	if len(stories) == 0 {
		slog.Info("catalog is empty, seeding sample stories")
		stories = catalog.Seed()
		if err := store.Save(ctx, stories); err != nil {
			store.Close()
			return nil, fmt.Errorf("seed catalog: %w", err)
		}
	}

	var gen generator.TextGenerator
	if cfg.AnthropicAPIKey != "" {
		gen = generator.NewClaudeClient(generator.ClaudeConfig{
			APIKey: cfg.AnthropicAPIKey,
			Model:  cfg.ClaudeModel,
		})
	}

	eval := evaluator.New(stories, evaluator.Config{
		Source:    evaluator.Source(cfg.GroundTruthSource),
		Generator: gen,
	})

	return &App{
		Config:      cfg,
		Store:       store,
		Stories:     stories,
		Generator:   gen,
		Evaluator:   eval,
		Recommender: recommender.New(stories, gen, scoring.Config{}),
	}, nil
}

// Close closes all resources.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
