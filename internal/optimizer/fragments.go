package optimizer

import (
	"math/rand"
	"strings"

	"github.com/storyrec-dev/storyrec/internal/catalog"
	"github.com/storyrec-dev/storyrec/internal/generator"
	"github.com/storyrec-dev/storyrec/internal/profile"
)

// Fragment categories. A full prompt composes one candidate phrasing
// from each.
const (
	categoryContext     = "context"
	categoryInstruction = "instruction"
	categoryFormat      = "format"
	categoryEmphasis    = "emphasis"
)

var categories = []string{
	categoryContext,
	categoryInstruction,
	categoryFormat,
	categoryEmphasis,
}

// fragmentCandidates enumerates the phrasings available per category.
var fragmentCandidates = map[string][]string{
	categoryContext: {
		"You are a story recommendation system that matches stories to user preferences.",
		"You are an expert anime and manga recommendation system.",
		"You are a personalized story recommendation engine.",
	},
	categoryInstruction: {
		"Recommend stories that match the user's preferences and interests.",
		"Find stories that align with the user's favorite franchises and preferred tags.",
		"Select stories that would appeal to the user based on their profile.",
	},
	categoryFormat: {
		"Return only the story IDs in a comma-separated list, ordered by relevance.",
		"Provide a list of story IDs, most relevant first, separated by commas.",
		"List the story IDs in order of relevance, separated by commas.",
	},
	categoryEmphasis: {
		"Pay special attention to the user's favorite franchises and preferred tags.",
		"Focus on matching the user's interests and preferred story elements.",
		"Prioritize stories that align with the user's preferences and interests.",
	},
}

// Fragments is one selection of prompt building blocks.
type Fragments struct {
	Context     string
	Instruction string
	Format      string
	Emphasis    string
}

func (f Fragments) get(category string) string {
	switch category {
	case categoryContext:
		return f.Context
	case categoryInstruction:
		return f.Instruction
	case categoryFormat:
		return f.Format
	case categoryEmphasis:
		return f.Emphasis
	}
	return ""
}

func (f *Fragments) set(category, value string) {
	switch category {
	case categoryContext:
		f.Context = value
	case categoryInstruction:
		f.Instruction = value
	case categoryFormat:
		f.Format = value
	case categoryEmphasis:
		f.Emphasis = value
	}
}

// Render composes the fragments with the catalog and profile into the
// full controlling prompt. The same inputs always render the same text.
func (f Fragments) Render(stories []catalog.Story, p profile.Profile) string {
	var b strings.Builder
	b.WriteString(f.Context)
	b.WriteString("\n\n")
	b.WriteString(f.Instruction)
	b.WriteString("\n")
	b.WriteString(f.Emphasis)
	b.WriteString("\n\nStories:\n")
	b.WriteString(generator.FormatStories(stories))
	b.WriteString("\n\nUser Profile:\n")
	b.WriteString(generator.FormatProfile(p))
	b.WriteString("\n\n")
	b.WriteString(f.Format)
	return b.String()
}

const (
	// emaAlpha controls how fast fragment weights move toward the
	// reinforcement target.
	emaAlpha = 0.3

	// reinforceTarget bounds the weights: repeated reinforcement
	// converges to this value and never beyond it.
	reinforceTarget = 2.0
)

// sampler draws fragment values with per-value weights. Values seen in
// successful selections get their weight nudged up by a bounded
// exponential moving average, so the sampler stays O(candidates)
// regardless of run length.
type sampler struct {
	rng     *rand.Rand
	weights map[string][]float64
}

func newSampler(rng *rand.Rand) *sampler {
	weights := make(map[string][]float64, len(fragmentCandidates))
	for category, values := range fragmentCandidates {
		w := make([]float64, len(values))
		for i := range w {
			w[i] = 1.0
		}
		weights[category] = w
	}
	return &sampler{rng: rng, weights: weights}
}

// pick draws one value for the category, weighted and normalized.
func (s *sampler) pick(category string) string {
	return s.pickExcluding(category, "")
}

// pickExcluding draws a value for the category different from exclude.
func (s *sampler) pickExcluding(category, exclude string) string {
	values := fragmentCandidates[category]
	weights := s.weights[category]

	total := 0.0
	for i, v := range values {
		if v == exclude {
			continue
		}
		total += weights[i]
	}
	if total == 0 {
		return values[0]
	}

	r := s.rng.Float64() * total
	for i, v := range values {
		if v == exclude {
			continue
		}
		r -= weights[i]
		if r <= 0 {
			return v
		}
	}
	return values[len(values)-1]
}

// reinforce moves the value's weight toward the reinforcement target.
func (s *sampler) reinforce(category, value string) {
	values := fragmentCandidates[category]
	weights := s.weights[category]
	for i, v := range values {
		if v == value {
			weights[i] = (1-emaAlpha)*weights[i] + emaAlpha*reinforceTarget
			return
		}
	}
}

// randomFragments draws one value per category.
func (s *sampler) randomFragments() Fragments {
	var f Fragments
	for _, category := range categories {
		f.set(category, s.pick(category))
	}
	return f
}

// mutate returns a copy of f with one randomly chosen category replaced
// by a different candidate (single-locus mutation).
func (s *sampler) mutate(f Fragments) Fragments {
	category := categories[s.rng.Intn(len(categories))]
	mutated := f
	mutated.set(category, s.pickExcluding(category, f.get(category)))
	return mutated
}
