// Package vectorstore provides a VecLite-based index for semantic and
// hybrid search over the story catalog.
package vectorstore

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/abdul-hamid-achik/veclite"
	"github.com/storyrec-dev/storyrec/internal/catalog"
)

const storiesCollection = "stories"

// Config holds configuration for the StoryStore.
type Config struct {
	// Path to the VecLite database file (e.g., "data/stories.veclite").
	Path string

	// ConfigPath is the path to veclite.yaml config file (optional).
	// If empty, searches ./veclite.yaml, ~/.veclite/config.yaml.
	ConfigPath string
}

// StoryStore wraps VecLite for story vector storage and search.
type StoryStore struct {
	vecdb    *veclite.DB
	coll     *veclite.Collection
	embedder veclite.Embedder
}

// SearchResult is one story returned from the vector store.
type SearchResult struct {
	VecLiteID  uint64
	StoryID    string
	Title      string
	Tags       string
	Similarity float32
}

// New creates a StoryStore using veclite.yaml configuration.
func New(cfg Config) (*StoryStore, error) {
	vecliteCfg, err := veclite.LoadConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load veclite config: %w", err)
	}

	embedder, err := veclite.NewEmbedderFromConfig(vecliteCfg.Embedder)
	if err != nil {
		return nil, fmt.Errorf("create embedder: %w", err)
	}

	dimension := embedder.Dimension()
	slog.Debug("embedder created", "dimension", dimension)

	vecdb, err := veclite.Open(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open veclite db: %w", err)
	}

	coll, err := vecdb.CreateCollection(storiesCollection,
		veclite.WithDimension(dimension),
		veclite.WithDistanceType(veclite.DistanceCosine),
		veclite.WithHNSW(16, 200), // M=16, efConstruction=200
		veclite.WithTextIndex("title", "intro", "tags"),
		veclite.WithEmbedder(embedder),
	)
	if err != nil {
		// Collection might already exist, try to get it
		coll, err = vecdb.GetCollection(storiesCollection)
		if err != nil {
			vecdb.Close()
			return nil, fmt.Errorf("get collection: %w", err)
		}
	}

	return &StoryStore{
		vecdb:    vecdb,
		coll:     coll,
		embedder: embedder,
	}, nil
}

// Close closes the VecLite database.
func (s *StoryStore) Close() error {
	if s.vecdb != nil {
		return s.vecdb.Close()
	}
	return nil
}

// InsertStory adds a story to the index, embedding its searchable text.
// Returns the VecLite record ID.
func (s *StoryStore) InsertStory(ctx context.Context, story catalog.Story) (uint64, error) {
	payload := map[string]any{
		"story_id": story.ID,
		"title":    story.Title,
		"intro":    story.Intro,
		"tags":     strings.Join(story.Tags, ", "),
	}

	text := story.Title + "\n" + story.Intro + "\n" + strings.Join(story.Tags, ", ")

	id, err := s.coll.InsertText(text, payload)
	if err != nil {
		return 0, fmt.Errorf("insert story %s: %w", story.ID, err)
	}

	return id, nil
}

// Search finds stories similar to the query text using vector search.
func (s *StoryStore) Search(ctx context.Context, query string, k int) ([]SearchResult, error) {
	results, err := s.coll.SearchText(query, veclite.TopK(k))
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return s.convertResults(results), nil
}

// HybridSearch combines vector and BM25 text search using RRF fusion.
func (s *StoryStore) HybridSearch(ctx context.Context, query string, k int, vectorWeight, textWeight float64) ([]SearchResult, error) {
	queryVec, err := s.embedder.Embed(query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	results, err := s.coll.HybridSearch(queryVec, query,
		veclite.TopK(k),
		veclite.WithVectorWeight(vectorWeight),
		veclite.WithTextWeight(textWeight),
	)
	if err != nil {
		return nil, fmt.Errorf("hybrid search: %w", err)
	}

	return s.convertResults(results), nil
}

// TextSearch performs BM25 full-text search on indexed fields.
func (s *StoryStore) TextSearch(ctx context.Context, query string, k int) ([]SearchResult, error) {
	results, err := s.coll.TextSearch(query, veclite.TopK(k))
	if err != nil {
		return nil, fmt.Errorf("text search: %w", err)
	}
	return s.convertResults(results), nil
}

// Count returns the number of stories in the store.
func (s *StoryStore) Count() int {
	return s.coll.Count()
}

// Stats returns statistics about the story index.
func (s *StoryStore) Stats() veclite.CollectionStats {
	return s.coll.Stats()
}

// Sync persists any pending changes to disk.
func (s *StoryStore) Sync() error {
	return s.vecdb.Sync()
}

// convertResults converts VecLite results to SearchResults.
func (s *StoryStore) convertResults(results []veclite.Result) []SearchResult {
	out := make([]SearchResult, 0, len(results))
	for _, r := range results {
		sr := SearchResult{
			VecLiteID:  r.Record.ID,
			Similarity: r.Score,
		}

		if r.Record.Payload != nil {
			if id, ok := r.Record.Payload["story_id"].(string); ok {
				sr.StoryID = id
			}
			if title, ok := r.Record.Payload["title"].(string); ok {
				sr.Title = title
			}
			if tags, ok := r.Record.Payload["tags"].(string); ok {
				sr.Tags = tags
			}
		}

		out = append(out, sr)
	}
	return out
}
