package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func TestStore_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	stories := []Story{
		{ID: "1", Title: "Ninja Trial", Intro: "An exam begins.", Tags: []string{"underdog", "action"}},
		{ID: "2", Title: "Tea Party", Tags: []string{"comedy"}},
		{ID: "3", Title: "Chakra Academy", Tags: []string{"naruto"}},
	}

	require.NoError(t, store.Save(ctx, stories))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, stories, loaded, "load preserves insertion order and content")
}

func TestStore_UpsertKeepsOrder(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Save(ctx, []Story{
		{ID: "1", Title: "First", Tags: []string{}},
		{ID: "2", Title: "Second", Tags: []string{}},
	}))

	// Re-saving story 1 with new content must not move it behind 2.
	require.NoError(t, store.Save(ctx, []Story{
		{ID: "1", Title: "First, Revised", Tags: []string{"drama"}},
	}))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "1", loaded[0].ID)
	assert.Equal(t, "First, Revised", loaded[0].Title)
	assert.Equal(t, []string{"drama"}, loaded[0].Tags)
	assert.Equal(t, "2", loaded[1].ID)
}

func TestStore_Count(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	require.NoError(t, store.Save(ctx, Seed()))

	count, err = store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(len(Seed())), count)
}

func TestStore_MigrateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Migrate(ctx))
	require.NoError(t, store.Migrate(ctx))
}
