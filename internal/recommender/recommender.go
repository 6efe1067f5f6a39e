// Package recommender produces story recommendations for a profile,
// either deterministically from the scoring engine or through the text
// generator driven by an optimized prompt.
package recommender

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/storyrec-dev/storyrec/internal/catalog"
	"github.com/storyrec-dev/storyrec/internal/evaluator"
	"github.com/storyrec-dev/storyrec/internal/generator"
	"github.com/storyrec-dev/storyrec/internal/profile"
	"github.com/storyrec-dev/storyrec/internal/scoring"
)

const (
	recommendTemperature = 0.7
	recommendMaxTokens   = 150
)

// Agent turns prompts into validated recommendation lists.
type Agent struct {
	stories []catalog.Story
	byID    map[string]catalog.Story
	gen     generator.TextGenerator
	scoring scoring.Config
}

// New creates an Agent over the catalog. gen may be nil, in which case
// only the deterministic path is available.
func New(stories []catalog.Story, gen generator.TextGenerator, cfg scoring.Config) *Agent {
	return &Agent{
		stories: stories,
		byID:    catalog.ByID(stories),
		gen:     gen,
		scoring: cfg,
	}
}

// Rank returns the deterministic top-k for the profile.
func (a *Agent) Rank(p profile.Profile, k int) []string {
	return scoring.Rank(a.stories, scoring.NewWithConfig(p, a.scoring), k)
}

// Recommend asks the generator for k stories using systemPrompt as the
// controlling instruction. Identifiers outside the catalog are dropped
// and short lists are padded from the deterministic ranking, so the
// result always has min(k, catalog size) unique valid identifiers.
// Generator failure degrades to the deterministic ranking.
func (a *Agent) Recommend(ctx context.Context, p profile.Profile, systemPrompt string, k int) []string {
	if a.gen == nil || systemPrompt == "" {
		return a.Rank(p, k)
	}

	messages := []generator.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: fmt.Sprintf(generator.RecommendRequestPrompt, k)},
	}

	text, err := a.gen.Generate(ctx, messages, recommendTemperature, recommendMaxTokens)
	if err != nil {
		slog.Warn("recommendation call failed, using deterministic ranking",
			"profile", p.Name,
			"error", err,
		)
		return a.Rank(p, k)
	}

	var ids []string
	seen := make(map[string]bool)
	for _, id := range evaluator.ExtractIDs(text) {
		if seen[id] {
			continue
		}
		if _, ok := a.byID[id]; !ok {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
		if len(ids) >= k {
			return ids
		}
	}

	// Pad from the deterministic ranking.
	for _, id := range a.Rank(p, 0) {
		if len(ids) >= k {
			break
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}

	return ids
}
