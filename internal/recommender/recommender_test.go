package recommender

import (
	"context"
	"errors"
	"testing"

	"github.com/storyrec-dev/storyrec/internal/catalog"
	"github.com/storyrec-dev/storyrec/internal/generator"
	"github.com/storyrec-dev/storyrec/internal/profile"
	"github.com/storyrec-dev/storyrec/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	text string
	err  error
}

func (s *stubGenerator) Generate(ctx context.Context, messages []generator.Message, temperature float64, maxTokens int) (string, error) {
	return s.text, s.err
}

func recCatalog() []catalog.Story {
	return []catalog.Story{
		{ID: "1", Title: "Ninja Trial", Tags: []string{"underdog", "action"}},
		{ID: "2", Title: "Tea Party", Tags: []string{"comedy"}},
		{ID: "3", Title: "Chakra Academy", Tags: []string{"naruto"}},
		{ID: "4", Title: "Dungeon Dive", Tags: []string{"isekai"}},
	}
}

func recProfile() profile.Profile {
	return profile.Profile{
		Name:          "test",
		Franchises:    []string{"Naruto"},
		PreferredTags: []string{"underdog"},
	}
}

func TestAgent_Rank(t *testing.T) {
	agent := New(recCatalog(), nil, scoring.Config{})

	ids := agent.Rank(recProfile(), 2)
	require.Len(t, ids, 2)

	inCatalog := catalog.IDSet(recCatalog())
	for _, id := range ids {
		assert.True(t, inCatalog[id])
	}
}

func TestAgent_Recommend_FiltersAndPads(t *testing.T) {
	gen := &stubGenerator{text: "3, 999, 1"}
	agent := New(recCatalog(), gen, scoring.Config{})

	ids := agent.Recommend(context.Background(), recProfile(), "system prompt", 4)
	require.Len(t, ids, 4)

	assert.Equal(t, "3", ids[0])
	assert.Equal(t, "1", ids[1])
	assert.NotContains(t, ids, "999")

	seen := make(map[string]bool)
	for _, id := range ids {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestAgent_Recommend_GeneratorFailureFallsBack(t *testing.T) {
	gen := &stubGenerator{err: errors.New("api down")}
	agent := New(recCatalog(), gen, scoring.Config{})

	ids := agent.Recommend(context.Background(), recProfile(), "system prompt", 3)
	assert.Equal(t, agent.Rank(recProfile(), 3), ids)
}

func TestAgent_Recommend_NilGeneratorUsesRanking(t *testing.T) {
	agent := New(recCatalog(), nil, scoring.Config{})

	ids := agent.Recommend(context.Background(), recProfile(), "whatever", 2)
	assert.Equal(t, agent.Rank(recProfile(), 2), ids)
}

func TestAgent_Recommend_TruncatesToLimit(t *testing.T) {
	gen := &stubGenerator{text: "1, 2, 3, 4"}
	agent := New(recCatalog(), gen, scoring.Config{})

	ids := agent.Recommend(context.Background(), recProfile(), "system prompt", 2)
	assert.Equal(t, []string{"1", "2"}, ids)
}
