// Package catalog holds the story catalog: the ordered, immutable set of
// interactive-fiction stories available for recommendation.
package catalog

import "strings"

// Story is one interactive-fiction story entry.
type Story struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	Intro string   `json:"intro"`
	Tags  []string `json:"tags"`
}

// Haystack returns the lowercased searchable text of the story
// (title, intro, and tags joined), used for substring matching.
func (s Story) Haystack() string {
	parts := make([]string, 0, len(s.Tags)+2)
	parts = append(parts, s.Title, s.Intro)
	parts = append(parts, s.Tags...)
	return strings.ToLower(strings.Join(parts, "\n"))
}

// HasTag reports whether the story carries the tag, case-insensitively.
func (s Story) HasTag(tag string) bool {
	for _, t := range s.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// IDSet returns the set of identifiers in the given stories.
func IDSet(stories []Story) map[string]bool {
	set := make(map[string]bool, len(stories))
	for _, s := range stories {
		set[s.ID] = true
	}
	return set
}

// ByID returns a lookup map from identifier to story.
func ByID(stories []Story) map[string]Story {
	m := make(map[string]Story, len(stories))
	for _, s := range stories {
		if _, ok := m[s.ID]; !ok {
			m[s.ID] = s
		}
	}
	return m
}
