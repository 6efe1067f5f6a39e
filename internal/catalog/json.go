package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
)

//go:embed seed.json
var seedJSON []byte

// Seed returns the built-in sample stories, used to bootstrap an empty
// catalog.
func Seed() []Story {
	stories, err := decodeStories(seedJSON)
	if err != nil {
		// The seed ships with the binary; failing to parse it is a bug.
		panic(fmt.Sprintf("catalog: bad embedded seed: %v", err))
	}
	return stories
}

// ReadFile loads stories from a JSON file.
func ReadFile(path string) ([]Story, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	stories, err := decodeStories(data)
	if err != nil {
		return nil, fmt.Errorf("parse catalog file %s: %w", path, err)
	}
	return stories, nil
}

// WriteFile saves stories to a JSON file.
func WriteFile(path string, stories []Story) error {
	data, err := json.MarshalIndent(stories, "", "  ")
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write catalog file: %w", err)
	}
	return nil
}

func decodeStories(data []byte) ([]Story, error) {
	var stories []Story
	if err := json.Unmarshal(data, &stories); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(stories))
	for _, s := range stories {
		if s.ID == "" {
			return nil, fmt.Errorf("story %q has no id", s.Title)
		}
		if seen[s.ID] {
			return nil, fmt.Errorf("duplicate story id %s", s.ID)
		}
		seen[s.ID] = true
	}

	return stories, nil
}
