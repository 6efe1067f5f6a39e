package generator

import (
	"strings"

	"github.com/storyrec-dev/storyrec/internal/catalog"
	"github.com/storyrec-dev/storyrec/internal/profile"
)

// ParseStoryBlocks parses generator output in the ID:/Title:/Intro:/Tags:
// block format into stories. Ragged blocks (missing fields, stray text
// between entries) are tolerated; blocks without an ID are dropped.
func ParseStoryBlocks(text string) []catalog.Story {
	var stories []catalog.Story
	var current catalog.Story

	flush := func() {
		if current.ID != "" {
			stories = append(stories, current)
		}
		current = catalog.Story{}
	}

	for _, rawLine := range strings.Split(text, "\n") {
		line := strings.TrimSpace(rawLine)
		switch {
		case strings.HasPrefix(line, "ID:"):
			flush()
			current.ID = fieldValue(line)
		case strings.HasPrefix(line, "Title:"):
			current.Title = fieldValue(line)
		case strings.HasPrefix(line, "Intro:"):
			current.Intro = fieldValue(line)
		case strings.HasPrefix(line, "Tags:"):
			for _, tag := range strings.Split(fieldValue(line), ",") {
				tag = strings.TrimSpace(tag)
				if tag != "" {
					current.Tags = append(current.Tags, tag)
				}
			}
		}
	}
	flush()

	return stories
}

func fieldValue(line string) string {
	_, value, ok := strings.Cut(line, ":")
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}

// FormatStories renders the catalog listing used inside prompts.
func FormatStories(stories []catalog.Story) string {
	var b strings.Builder
	for _, s := range stories {
		b.WriteString("ID: ")
		b.WriteString(s.ID)
		b.WriteString("\nTitle: ")
		b.WriteString(s.Title)
		b.WriteString("\nTags: ")
		b.WriteString(strings.Join(s.Tags, ", "))
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatProfile renders the user profile description used inside prompts.
func FormatProfile(p profile.Profile) string {
	var b strings.Builder
	b.WriteString("User Preferences: ")
	b.WriteString(p.Preferences)
	b.WriteString("\nInterests: ")
	b.WriteString(strings.Join(p.Interests, ", "))
	b.WriteString("\nFavorite Franchises: ")
	b.WriteString(strings.Join(p.Franchises, ", "))
	b.WriteString("\nPreferred Tags: ")
	b.WriteString(strings.Join(p.PreferredTags, ", "))
	return b.String()
}
