// Package evaluator produces ground-truth rankings for a profile and
// scores candidate recommendation lists against them.
package evaluator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/storyrec-dev/storyrec/internal/catalog"
	"github.com/storyrec-dev/storyrec/internal/generator"
	"github.com/storyrec-dev/storyrec/internal/profile"
	"github.com/storyrec-dev/storyrec/internal/scoring"
)

// Source selects where ground truth comes from. One source is chosen
// per run by configuration; the two are never mixed within a run.
type Source string

const (
	// SourceEngine derives ground truth from the deterministic
	// scoring engine. This is the default.
	SourceEngine Source = "engine"

	// SourceGenerator asks the text generator for ground truth,
	// falling back to the engine when the call fails or yields
	// nothing usable.
	SourceGenerator Source = "generator"
)

const (
	groundTruthTemperature = 0.7
	groundTruthMaxTokens   = 300

	lowPrecisionThreshold   = 0.5
	lowRecallThreshold      = 0.5
	minFranchiseMatches     = 3
	minTagCoverageThreshold = 0.5
)

// Config holds evaluator configuration.
type Config struct {
	// Source picks the ground-truth strategy (default SourceEngine).
	Source Source

	// Generator backs SourceGenerator. Ignored for SourceEngine.
	Generator generator.TextGenerator

	// Scoring tunes the engines built for scored profiles.
	Scoring scoring.Config
}

// Evaluator scores candidate lists against ground truth for a profile.
type Evaluator struct {
	stories []catalog.Story
	byID    map[string]catalog.Story
	source  Source
	gen     generator.TextGenerator
	scoring scoring.Config

	// Engine memoized per profile: rebuilt whenever a different
	// profile is evaluated, never shared global state.
	engineName string
	engine     *scoring.Engine
}

// New creates an Evaluator over the catalog.
func New(stories []catalog.Story, cfg Config) *Evaluator {
	source := cfg.Source
	if source == "" {
		source = SourceEngine
	}
	return &Evaluator{
		stories: stories,
		byID:    catalog.ByID(stories),
		source:  source,
		gen:     cfg.Generator,
		scoring: cfg.Scoring,
	}
}

func (e *Evaluator) engineFor(p profile.Profile) *scoring.Engine {
	if e.engine == nil || e.engineName != p.Name {
		e.engine = scoring.NewWithConfig(p, e.scoring)
		e.engineName = p.Name
	}
	return e.engine
}

// GroundTruth returns the reference ranking of k story identifiers for
// the profile. It never fails: generator trouble degrades to the
// deterministic engine ranking.
func (e *Evaluator) GroundTruth(ctx context.Context, p profile.Profile, k int) []string {
	if e.source == SourceGenerator && e.gen != nil {
		ids, err := e.generatorGroundTruth(ctx, p, k)
		if err != nil {
			slog.Warn("generator ground truth failed, using engine ranking",
				"profile", p.Name,
				"error", err,
			)
		} else {
			return e.pad(ids, p, k)
		}
	}

	return scoring.Rank(e.stories, e.engineFor(p), k)
}

func (e *Evaluator) generatorGroundTruth(ctx context.Context, p profile.Profile, k int) ([]string, error) {
	prompt := fmt.Sprintf(generator.GroundTruthPrompt,
		generator.FormatStories(e.stories),
		generator.FormatProfile(p),
		k,
	)

	messages := []generator.Message{
		{Role: "system", Content: generator.GroundTruthSystemPrompt},
		{Role: "user", Content: prompt},
	}

	text, err := e.gen.Generate(ctx, messages, groundTruthTemperature, groundTruthMaxTokens)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}

	ids := e.FilterToCatalog(ExtractIDs(text))
	if len(ids) == 0 {
		return nil, fmt.Errorf("no usable identifiers in response")
	}

	if len(ids) > k {
		ids = ids[:k]
	}
	return ids, nil
}

// pad extends ids to length k from the engine ranking, keeping order
// and skipping identifiers already present.
func (e *Evaluator) pad(ids []string, p profile.Profile, k int) []string {
	if len(ids) >= k {
		return ids[:k]
	}

	have := make(map[string]bool, len(ids))
	for _, id := range ids {
		have[id] = true
	}

	for _, id := range scoring.Rank(e.stories, e.engineFor(p), 0) {
		if len(ids) >= k {
			break
		}
		if have[id] {
			continue
		}
		have[id] = true
		ids = append(ids, id)
	}

	return ids
}

// FilterToCatalog drops identifiers not present in the catalog and
// deduplicates, preserving first occurrence.
func (e *Evaluator) FilterToCatalog(ids []string) []string {
	var out []string
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		if _, ok := e.byID[id]; !ok {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// Evaluate compares candidates to ground truth, returning an F1 score
// in [0,1] and qualitative feedback. Zero denominators yield zero for
// the affected metric, never an error.
func (e *Evaluator) Evaluate(candidates, truth []string, p profile.Profile) (float64, []string) {
	candidates = clean(candidates)
	truth = clean(truth)

	correct := intersectionSize(candidates, truth)

	precision := 0.0
	if len(candidates) > 0 {
		precision = float64(correct) / float64(len(candidates))
	}

	recall := 0.0
	if len(truth) > 0 {
		recall = float64(correct) / float64(len(truth))
	}

	f1 := 0.0
	if precision+recall > 0 {
		f1 = 2 * precision * recall / (precision + recall)
	}

	var feedback []string
	if precision < lowPrecisionThreshold {
		feedback = append(feedback, "The recommendations have low precision. Consider better matching user preferences.")
	}
	if recall < lowRecallThreshold {
		feedback = append(feedback, "The recommendations are missing many relevant stories. Consider broader matching criteria.")
	}
	if len(dedupe(candidates)) < len(candidates) {
		feedback = append(feedback, "There are duplicate recommendations. Ensure each story is recommended only once.")
	}
	feedback = append(feedback, e.coverageFeedback(candidates, p)...)

	return f1, feedback
}

func (e *Evaluator) coverageFeedback(candidates []string, p profile.Profile) []string {
	var feedback []string

	recommended := make([]catalog.Story, 0, len(candidates))
	for _, id := range dedupe(candidates) {
		if s, ok := e.byID[id]; ok {
			recommended = append(recommended, s)
		}
	}

	if len(p.Franchises) > 0 {
		matches := 0
		for _, s := range recommended {
			hay := s.Haystack()
			for _, franchise := range p.Franchises {
				if strings.Contains(hay, strings.ToLower(franchise)) {
					matches++
					break
				}
			}
		}
		if matches < minFranchiseMatches {
			feedback = append(feedback, "Consider including more stories related to the user's favorite franchises.")
		}
	}

	if len(p.PreferredTags) > 0 {
		storyTags := make(map[string]bool)
		for _, s := range recommended {
			for _, tag := range s.Tags {
				storyTags[strings.ToLower(tag)] = true
			}
		}

		covered := 0
		for _, tag := range p.PreferredTags {
			if storyTags[strings.ToLower(tag)] {
				covered++
			}
		}

		coverage := float64(covered) / float64(len(p.PreferredTags))
		if coverage < minTagCoverageThreshold {
			feedback = append(feedback, "The recommendations could better cover the user's preferred tags.")
		}
	}

	return feedback
}

func clean(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id != "" {
			out = append(out, id)
		}
	}
	return out
}

func intersectionSize(a, b []string) int {
	inB := make(map[string]bool, len(b))
	for _, id := range b {
		inB[id] = true
	}

	counted := make(map[string]bool)
	n := 0
	for _, id := range a {
		if inB[id] && !counted[id] {
			counted[id] = true
			n++
		}
	}
	return n
}
