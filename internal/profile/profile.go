// Package profile describes a user's narrative preferences and provides
// the built-in named profiles selectable from the CLI.
package profile

import (
	"fmt"
	"sort"
	"strings"
)

// Profile is one user's hand-authored preference description.
// Profiles are immutable after construction.
type Profile struct {
	// Name identifies the profile for selection and caching.
	Name string

	// Preferences is free text: comma-separated informal clauses,
	// treated as a loose sequence of keyword phrases.
	Preferences string

	Interests     []string
	Franchises    []string
	PreferredTags []string
}

// PreferencePhrases splits the free-text preferences on commas into
// trimmed, lowercased phrases. Empty phrases are dropped.
func (p Profile) PreferencePhrases() []string {
	var phrases []string
	for _, raw := range strings.Split(p.Preferences, ",") {
		phrase := strings.ToLower(strings.TrimSpace(raw))
		if phrase != "" {
			phrases = append(phrases, phrase)
		}
	}
	return phrases
}

// builtin holds the named sample profiles available to the CLI.
var builtin = map[string]Profile{
	"shonen-fan": {
		Name:          "shonen-fan",
		Preferences:   "I enjoy action-packed stories with strong character development and interesting plot twists.",
		Interests:     []string{"martial arts", "supernatural powers", "school life"},
		Franchises:    []string{"Naruto", "My Hero Academia", "One Piece"},
		PreferredTags: []string{"action", "power-fantasy", "isekai", "crossover"},
	},
	"romance-reader": {
		Name:          "romance-reader",
		Preferences:   "I like slow-burn romance, found family, and stories where rivals become close.",
		Interests:     []string{"school life", "slice of life", "dating"},
		Franchises:    []string{"Demon Slayer", "Jujutsu Kaisen"},
		PreferredTags: []string{"romance", "romantic comedy", "forced proximity", "comedy"},
	},
	"isekai-addict": {
		Name:          "isekai-addict",
		Preferences:   "Give me reincarnation, new worlds, overpowered protagonists, dungeon crawling.",
		Interests:     []string{"dimensional travel", "adventure", "leveling"},
		Franchises:    []string{"DanMachi", "Dragon Ball"},
		PreferredTags: []string{"isekai", "reincarnation", "power-fantasy", "adventure"},
	},
}

// Get returns the named built-in profile. Unknown names are an error:
// the profile selector is operator input, so it fails fast.
func Get(name string) (Profile, error) {
	p, ok := builtin[name]
	if !ok {
		return Profile{}, fmt.Errorf("unknown profile %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return p, nil
}

// Names returns the available profile names, sorted.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
