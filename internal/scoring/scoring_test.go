package scoring

import (
	"math"
	"testing"

	"github.com/storyrec-dev/storyrec/internal/catalog"
	"github.com/storyrec-dev/storyrec/internal/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() []catalog.Story {
	return []catalog.Story{
		{ID: "1", Title: "Ninja Trial", Tags: []string{"underdog", "action"}},
		{ID: "2", Title: "Tea Party", Tags: []string{"comedy"}},
		{ID: "3", Title: "Chakra Academy", Intro: "A shinobi school drama", Tags: []string{"school life", "naruto"}},
	}
}

func testProfile() profile.Profile {
	return profile.Profile{
		Name:          "test",
		Preferences:   "action-packed stories, plot twists",
		Interests:     []string{"martial arts"},
		Franchises:    []string{"Naruto"},
		PreferredTags: []string{"underdog", "action"},
	}
}

func TestEngine_Score_NonNegativeFinite(t *testing.T) {
	eng := New(testProfile())

	for _, story := range testCatalog() {
		score := eng.Score(story)
		assert.GreaterOrEqual(t, score, 0.0, "story %s", story.ID)
		assert.False(t, math.IsInf(score, 0), "story %s", story.ID)
		assert.False(t, math.IsNaN(score), "story %s", story.ID)
	}
}

func TestEngine_Score_FranchiseKeyword(t *testing.T) {
	// "Ninja Trial" never names Naruto, but "ninja" is an associated
	// keyword, so the franchise facet must still contribute.
	eng := New(profile.Profile{Name: "t", Franchises: []string{"Naruto"}})

	score := eng.Score(catalog.Story{ID: "1", Title: "Ninja Trial"})
	assert.InDelta(t, franchiseKeywordWeight, score, 1e-9)
}

func TestEngine_Score_DirectFranchiseBeatsKeyword(t *testing.T) {
	eng := New(profile.Profile{Name: "t", Franchises: []string{"Naruto"}})

	direct := eng.Score(catalog.Story{ID: "1", Title: "Naruto Rises"})
	keyword := eng.Score(catalog.Story{ID: "2", Title: "Ninja Trial"})
	assert.Greater(t, direct, keyword)
}

func TestEngine_Score_ExactTitleBonus(t *testing.T) {
	eng := New(profile.Profile{Name: "t", Preferences: "Tea Party"})

	exact := eng.Score(catalog.Story{ID: "1", Title: "Tea Party"})
	partial := eng.Score(catalog.Story{ID: "2", Title: "Tea Party Disaster"})
	assert.InDelta(t, titleExactBonus, exact-partial, 1e-9)
}

func TestEngine_Score_CombinationBonus(t *testing.T) {
	// Two positive facets must score more than the plain sum of the
	// same sub-scores.
	eng := New(profile.Profile{
		Name:          "t",
		Franchises:    []string{"Naruto"},
		PreferredTags: []string{"underdog"},
	})

	both := eng.Score(catalog.Story{ID: "1", Title: "Ninja Trial", Tags: []string{"underdog"}})
	franchiseOnly := eng.Score(catalog.Story{ID: "2", Title: "Ninja Trial"})
	tagOnly := eng.Score(catalog.Story{ID: "3", Title: "Plain", Tags: []string{"underdog"}})

	assert.Greater(t, both, franchiseOnly+tagOnly)
}

func TestEngine_Score_RelatedTagGroup(t *testing.T) {
	p := profile.Profile{
		Name:          "t",
		PreferredTags: []string{"isekai", "reincarnation"},
	}
	eng := New(p)

	grouped := eng.Score(catalog.Story{ID: "1", Tags: []string{"isekai", "reincarnation"}})
	// isekai 1.4 + reincarnation baseline 1.0 + group bonus 1.0
	assert.InDelta(t, 3.4, grouped, 1e-9)
}

func TestEngine_Score_DuplicateTagsCountOnce(t *testing.T) {
	p := profile.Profile{
		Name:          "t",
		PreferredTags: []string{"action"},
	}
	eng := New(p)

	once := eng.Score(catalog.Story{ID: "1", Tags: []string{"action"}})
	twice := eng.Score(catalog.Story{ID: "2", Tags: []string{"action", "action"}})
	mixedCase := eng.Score(catalog.Story{ID: "3", Tags: []string{"action", "Action"}})

	assert.InDelta(t, 1.0, once, 1e-9)
	assert.Equal(t, once, twice)
	assert.Equal(t, once, mixedCase)
}

func TestEngine_Score_ComboGroups(t *testing.T) {
	cfg := Config{
		ComboGroups: []ComboGroup{
			{Terms: []string{"ninja", "underdog"}, Bonus: 5.0},
		},
	}
	eng := NewWithConfig(profile.Profile{Name: "t"}, cfg)

	with := eng.Score(catalog.Story{ID: "1", Title: "Ninja Trial", Tags: []string{"underdog"}})
	without := eng.Score(catalog.Story{ID: "2", Title: "Ninja Trial"})

	assert.InDelta(t, 5.0, with-without, 1e-9)
}

func TestEngine_Score_EmptyProfileFacets(t *testing.T) {
	tests := []struct {
		name string
		prof profile.Profile
	}{
		{"empty profile", profile.Profile{Name: "empty"}},
		{"no preferred tags", profile.Profile{Name: "t", Franchises: []string{"Naruto"}}},
		{"no franchises", profile.Profile{Name: "t", PreferredTags: []string{"action"}}},
		{"blank preferences", profile.Profile{Name: "t", Preferences: " , , "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng := New(tt.prof)
			for _, story := range testCatalog() {
				score := eng.Score(story)
				assert.GreaterOrEqual(t, score, 0.0)
			}
		})
	}
}

func TestRank_Properties(t *testing.T) {
	stories := testCatalog()
	eng := New(testProfile())

	ids := Rank(stories, eng, 2)

	require.LessOrEqual(t, len(ids), 2)

	inCatalog := catalog.IDSet(stories)
	seen := make(map[string]bool)
	for _, id := range ids {
		assert.True(t, inCatalog[id], "id %s not in catalog", id)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestRank_UnderdogNinjaScenario(t *testing.T) {
	stories := []catalog.Story{
		{ID: "1", Title: "Ninja Trial", Tags: []string{"underdog", "action"}},
		{ID: "2", Title: "Tea Party", Tags: []string{"comedy"}},
	}
	p := profile.Profile{
		Name:          "t",
		Franchises:    []string{"Naruto"},
		PreferredTags: []string{"underdog"},
	}

	ids := Rank(stories, New(p), 2)
	require.Len(t, ids, 2)
	assert.Equal(t, "1", ids[0])
	assert.Equal(t, "2", ids[1])
}

func TestRank_TiesKeepCatalogOrder(t *testing.T) {
	stories := []catalog.Story{
		{ID: "a", Title: "First"},
		{ID: "b", Title: "Second"},
		{ID: "c", Title: "Third"},
	}
	// Empty profile scores everything 0: ties everywhere.
	ids := Rank(stories, New(profile.Profile{Name: "t"}), 3)
	assert.Equal(t, []string{"a", "b", "c"}, ids)
}

func TestRank_EmptyPreferredTags(t *testing.T) {
	full := testProfile()
	bare := full
	bare.PreferredTags = nil

	stories := testCatalog()
	assert.NotPanics(t, func() {
		ids := Rank(stories, New(bare), len(stories))
		assert.Len(t, ids, len(stories))
	})

	// Franchise/interest/preference factors still order the catalog:
	// the naruto-tagged school story outranks the tea party.
	ids := Rank(stories, New(bare), len(stories))
	posNaruto := indexOf(ids, "3")
	posTea := indexOf(ids, "2")
	assert.Less(t, posNaruto, posTea)
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}
