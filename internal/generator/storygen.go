package generator

import (
	"context"
	"fmt"

	"github.com/storyrec-dev/storyrec/internal/catalog"
)

const (
	storyGenTemperature = 0.8
	storyGenMaxTokens   = 4000
)

// StoryGenerator produces new catalog entries via the text generator.
type StoryGenerator struct {
	gen TextGenerator
}

// NewStoryGenerator creates a StoryGenerator on top of gen.
func NewStoryGenerator(gen TextGenerator) *StoryGenerator {
	return &StoryGenerator{gen: gen}
}

// Generate asks for count new stories and parses whatever comes back.
// The generator may return fewer stories than requested; callers decide
// whether that matters.
func (g *StoryGenerator) Generate(ctx context.Context, count int) ([]catalog.Story, error) {
	messages := []Message{
		{Role: "system", Content: StoryGenSystemPrompt},
		{Role: "user", Content: fmt.Sprintf(StoryGenPrompt, count, count)},
	}

	text, err := g.gen.Generate(ctx, messages, storyGenTemperature, storyGenMaxTokens)
	if err != nil {
		return nil, fmt.Errorf("generate stories: %w", err)
	}

	stories := ParseStoryBlocks(text)
	if len(stories) == 0 {
		return nil, fmt.Errorf("no parseable stories in response")
	}

	return stories, nil
}
