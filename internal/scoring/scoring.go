// Package scoring ranks stories against a user profile with weighted
// tag, keyword, and franchise matching.
package scoring

import (
	"sort"
	"strings"

	"github.com/storyrec-dev/storyrec/internal/catalog"
	"github.com/storyrec-dev/storyrec/internal/profile"
)

const (
	franchiseDirectWeight  = 2.0
	franchiseKeywordWeight = 0.8
	preferenceWeight       = 1.0
	titleExactBonus        = 1.5
	interestWeight         = 1.5
	baseTagWeight          = 1.0
	relatedGroupBonus      = 1.0
	comboBonusRate         = 0.15
)

// ComboGroup is a set of tags or franchise terms that earns Bonus when
// two or more of its terms match a story. Supplied as data so that no
// scoring path ever branches on a particular profile's identity.
type ComboGroup struct {
	Terms []string
	Bonus float64
}

// Config tunes an Engine beyond the profile-derived defaults.
type Config struct {
	// TagWeights overrides the default per-tag weight table.
	TagWeights map[string]float64

	// ComboGroups are critical combinations that earn extra bonuses.
	ComboGroups []ComboGroup
}

// Candidate pairs a story identifier with its relevance score.
type Candidate struct {
	StoryID string
	Score   float64
}

// Engine scores stories for one profile. All weight tables are built
// from the profile at construction time; an Engine is immutable and
// safe to reuse for the whole run.
type Engine struct {
	profileName   string
	phrases       []string
	interests     []string
	franchises    []string
	preferredTags map[string]bool
	tagWeights    map[string]float64
	comboGroups   []ComboGroup
}

// New builds an Engine for the profile with default tables.
func New(p profile.Profile) *Engine {
	return NewWithConfig(p, Config{})
}

// NewWithConfig builds an Engine for the profile with the given tuning.
func NewWithConfig(p profile.Profile, cfg Config) *Engine {
	weights := cfg.TagWeights
	if weights == nil {
		weights = defaultTagWeights
	}

	preferred := make(map[string]bool, len(p.PreferredTags))
	for _, tag := range p.PreferredTags {
		preferred[strings.ToLower(tag)] = true
	}

	groups := make([]ComboGroup, 0, len(cfg.ComboGroups))
	for _, g := range cfg.ComboGroups {
		terms := make([]string, len(g.Terms))
		for i, term := range g.Terms {
			terms[i] = strings.ToLower(term)
		}
		groups = append(groups, ComboGroup{Terms: terms, Bonus: g.Bonus})
	}

	return &Engine{
		profileName:   p.Name,
		phrases:       p.PreferencePhrases(),
		interests:     lowerAll(p.Interests),
		franchises:    lowerAll(p.Franchises),
		preferredTags: preferred,
		tagWeights:    weights,
		comboGroups:   groups,
	}
}

// ProfileName returns the name of the profile this engine was built for.
func (e *Engine) ProfileName() string {
	return e.profileName
}

// Score computes the relevance of a story to the engine's profile.
// The result is non-negative and finite; its absolute magnitude only
// means something relative to other stories scored by the same engine.
func (e *Engine) Score(story catalog.Story) float64 {
	hay := story.Haystack()

	franchise := e.franchiseScore(hay)
	preference := e.preferenceScore(story, hay)
	interest := e.interestScore(hay)
	tag := e.tagScore(story)

	total := franchise + preference + interest + tag

	// Reward stories that satisfy multiple facets of the profile at
	// once rather than one facet strongly.
	positive := 0
	sum := 0.0
	for _, sub := range [4]float64{franchise, preference, interest, tag} {
		if sub > 0 {
			positive++
			sum += sub
		}
	}
	if positive >= 2 {
		total += comboBonusRate * float64(positive-1) * sum
	}

	for _, g := range e.comboGroups {
		matched := 0
		for _, term := range g.Terms {
			if strings.Contains(hay, term) {
				matched++
			}
		}
		if matched >= 2 {
			total += g.Bonus
		}
	}

	return total
}

func (e *Engine) franchiseScore(hay string) float64 {
	score := 0.0
	for _, franchise := range e.franchises {
		if strings.Contains(hay, franchise) {
			score += franchiseDirectWeight
		}
		for _, keyword := range franchiseKeywords[franchise] {
			if strings.Contains(hay, keyword) {
				score += franchiseKeywordWeight
			}
		}
	}
	return score
}

func (e *Engine) preferenceScore(story catalog.Story, hay string) float64 {
	score := 0.0
	title := strings.ToLower(story.Title)
	for _, phrase := range e.phrases {
		if strings.Contains(hay, phrase) {
			score += preferenceWeight
		}
		if phrase == title {
			score += titleExactBonus
		}
	}
	return score
}

func (e *Engine) interestScore(hay string) float64 {
	score := 0.0
	for _, interest := range e.interests {
		if strings.Contains(hay, interest) {
			score += interestWeight
		}
	}
	return score
}

func (e *Engine) tagScore(story catalog.Story) float64 {
	score := 0.0
	matched := make(map[string]bool)
	for _, raw := range story.Tags {
		tag := strings.ToLower(raw)
		if !e.preferredTags[tag] || matched[tag] {
			continue
		}
		matched[tag] = true
		if w, ok := e.tagWeights[tag]; ok {
			score += w
		} else {
			score += baseTagWeight
		}
	}

	if len(matched) >= 2 {
		for _, group := range relatedTagGroups {
			inGroup := 0
			for _, tag := range group {
				if matched[tag] {
					inGroup++
				}
			}
			if inGroup >= 2 {
				score += relatedGroupBonus
			}
		}
	}

	return score
}

// ScoreAll scores every story, preserving catalog order.
func (e *Engine) ScoreAll(stories []catalog.Story) []Candidate {
	candidates := make([]Candidate, len(stories))
	for i, story := range stories {
		candidates[i] = Candidate{StoryID: story.ID, Score: e.Score(story)}
	}
	return candidates
}

// Rank returns up to limit story identifiers sorted by descending
// score. Ties keep catalog order (first seen wins) and duplicate
// identifiers are dropped.
func Rank(stories []catalog.Story, eng *Engine, limit int) []string {
	candidates := eng.ScoreAll(stories)

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	seen := make(map[string]bool, len(candidates))
	ids := make([]string, 0, limit)
	for _, c := range candidates {
		if seen[c.StoryID] {
			continue
		}
		seen[c.StoryID] = true
		ids = append(ids, c.StoryID)
		if limit > 0 && len(ids) >= limit {
			break
		}
	}

	return ids
}

func lowerAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(v)
	}
	return out
}
