// Package optimizer searches over prompt fragment combinations with
// hill climbing, using recommendation quality as the fitness score.
package optimizer

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/storyrec-dev/storyrec/internal/catalog"
	"github.com/storyrec-dev/storyrec/internal/evaluator"
	"github.com/storyrec-dev/storyrec/internal/generator"
	"github.com/storyrec-dev/storyrec/internal/profile"
)

const (
	defaultRecommendations = 10
	defaultTemperature     = 0.7
	defaultMaxTokens       = 150

	// plateauEpsilon is the score delta below which the last two
	// iterations count as a plateau.
	plateauEpsilon = 0.05
)

// Record is one iteration's history entry. Records are appended every
// iteration, accepted or not, and never mutated afterwards.
type Record struct {
	Iteration int      `json:"iteration"`
	Score     float64  `json:"score"`
	Prompt    string   `json:"prompt"`
	Feedback  []string `json:"feedback,omitempty"`
}

// Config holds optimizer configuration.
type Config struct {
	// Generator performs the external text-generation calls.
	Generator generator.TextGenerator

	// Evaluator, when set, scores iterations with full F1 against
	// freshly computed ground truth. When nil, a simple proxy is
	// used: the fraction of the requested count successfully parsed.
	Evaluator *evaluator.Evaluator

	// Recommendations is the number of stories requested per
	// iteration (default 10).
	Recommendations int

	Temperature float64
	MaxTokens   int

	// Seed fixes the random source; 0 seeds from the clock.
	Seed int64
}

// Optimizer hill-climbs over prompt fragment selections for one
// profile. It owns its history and best-score slot exclusively;
// nothing else reads them during a run.
type Optimizer struct {
	stories []catalog.Story
	prof    profile.Profile
	gen     generator.TextGenerator
	eval    *evaluator.Evaluator
	sampler *sampler

	numRecs     int
	temperature float64
	maxTokens   int

	current      Fragments
	currentScore float64
	bestPrompt   string
	bestScore    float64
	history      []Record
}

// New creates an Optimizer for the catalog and profile.
func New(stories []catalog.Story, p profile.Profile, cfg Config) *Optimizer {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	numRecs := cfg.Recommendations
	if numRecs <= 0 {
		numRecs = defaultRecommendations
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = defaultTemperature
	}

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	s := newSampler(rng)

	return &Optimizer{
		stories:     stories,
		prof:        p,
		gen:         cfg.Generator,
		eval:        cfg.Evaluator,
		sampler:     s,
		numRecs:     numRecs,
		temperature: temperature,
		maxTokens:   maxTokens,
		current:     s.randomFragments(),
	}
}

// Optimize runs up to maxIterations, stopping early once the current
// score reaches targetScore. It returns the best prompt and score seen.
// A run where every iteration fails returns ("", 0): optimization
// produced nothing usable, which is not an error.
func (o *Optimizer) Optimize(ctx context.Context, targetScore float64, maxIterations int) (string, float64) {
	for iteration := 0; iteration < maxIterations; iteration++ {
		score, feedback, err := o.step(ctx, iteration)
		if err != nil {
			slog.Warn("optimization iteration failed",
				"iteration", iteration,
				"error", err,
			)
			o.record(iteration, nil)
			continue
		}

		slog.Debug("optimization iteration",
			"iteration", iteration,
			"score", score,
			"best", o.bestScore,
		)
		o.record(iteration, feedback)

		if o.currentScore >= targetScore {
			slog.Info("target score reached",
				"iteration", iteration,
				"score", o.currentScore,
			)
			break
		}
	}

	return o.bestPrompt, o.bestScore
}

// step runs one iteration: mutate, render, generate, score, accept.
func (o *Optimizer) step(ctx context.Context, iteration int) (float64, []string, error) {
	mutated := o.sampler.mutate(o.current)
	prompt := mutated.Render(o.stories, o.prof)

	messages := []generator.Message{
		{Role: "system", Content: prompt},
		{Role: "user", Content: fmt.Sprintf(generator.RecommendRequestPrompt, o.numRecs)},
	}

	text, err := o.gen.Generate(ctx, messages, o.temperature, o.maxTokens)
	if err != nil {
		return 0, nil, fmt.Errorf("generate: %w", err)
	}

	ids := evaluator.ExtractIDs(text)

	var score float64
	var feedback []string
	if o.eval != nil {
		truth := o.eval.GroundTruth(ctx, o.prof, o.numRecs)
		score, feedback = o.eval.Evaluate(o.eval.FilterToCatalog(ids), truth, o.prof)
	} else {
		score = float64(len(ids)) / float64(o.numRecs)
		if score > 1 {
			score = 1
		}
	}

	// Hill climbing: adopt strictly better candidates only.
	if score > o.currentScore {
		o.current = mutated
		o.currentScore = score

		if o.currentScore > o.bestScore {
			o.bestScore = o.currentScore
			o.bestPrompt = prompt
			for _, category := range categories {
				o.sampler.reinforce(category, mutated.get(category))
			}
		}
	}

	return score, feedback, nil
}

func (o *Optimizer) record(iteration int, feedback []string) {
	o.history = append(o.history, Record{
		Iteration: iteration,
		Score:     o.currentScore,
		Prompt:    o.current.Render(o.stories, o.prof),
		Feedback:  feedback,
	})
}

// History returns the per-iteration records of the run so far.
func (o *Optimizer) History() []Record {
	return o.history
}

// Best returns the best prompt and score seen so far.
func (o *Optimizer) Best() (string, float64) {
	return o.bestPrompt, o.bestScore
}

// ShouldContinue reports whether another round of optimization is
// worthwhile: the iteration budget is not exhausted and the last two
// scores have not plateaued.
func (o *Optimizer) ShouldContinue(maxIterations int) bool {
	if len(o.history) >= maxIterations {
		return false
	}

	if len(o.history) >= 2 {
		last := o.history[len(o.history)-1].Score
		prev := o.history[len(o.history)-2].Score
		delta := last - prev
		if delta < 0 {
			delta = -delta
		}
		if delta < plateauEpsilon {
			return false
		}
	}

	return true
}
