package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/question-matcher/internal/catalog"
	"github.com/jonathan/question-matcher/internal/testsupport"
)

func openTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	store, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLite_EmptyCatalog(t *testing.T) {
	store := openTestSQLite(t)

	entries, err := store.LoadCatalog(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)

	stats, err := store.DifficultyCounts(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.Total)
}

func TestSQLite_UpsertAndLoad(t *testing.T) {
	store := openTestSQLite(t)
	ctx := context.Background()
	fixtures := testsupport.Entries()

	require.NoError(t, store.UpsertEntries(ctx, fixtures))
	// upserting again must not duplicate
	require.NoError(t, store.UpsertEntries(ctx, fixtures))

	entries, err := store.LoadCatalog(ctx)
	require.NoError(t, err)
	require.Len(t, entries, len(fixtures))

	idx, err := catalog.NewIndex(entries)
	require.NoError(t, err)
	lru, ok := idx.Entry(146)
	require.True(t, ok)
	assert.Equal(t, "LRU Cache", lru.Title)
	assert.Equal(t, []string{"Hash Table", "Design"}, lru.Topics)

	stats, err := store.DifficultyCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, idx.Stats(), stats)
}

func TestSQLite_UpsertUpdates(t *testing.T) {
	store := openTestSQLite(t)
	ctx := context.Background()

	fixtures := testsupport.Entries()[:1]
	require.NoError(t, store.UpsertEntries(ctx, fixtures))

	fixtures[0].Category = "Hashing"
	require.NoError(t, store.UpsertEntries(ctx, fixtures))

	entries, err := store.LoadCatalog(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Hashing", entries[0].Category)
}

func TestSQLite_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	ctx := context.Background()

	store, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, store.UpsertEntries(ctx, testsupport.Entries()))
	require.NoError(t, store.Close())

	store, err = OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer store.Close()
	assert.Equal(t, path, store.Path())

	entries, err := store.LoadCatalog(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, len(testsupport.Entries()))
}

func TestSQLite_AsStoreSource(t *testing.T) {
	sqlite := openTestSQLite(t)
	require.NoError(t, sqlite.UpsertEntries(context.Background(), testsupport.Entries()))

	store := catalog.NewStore(sqlite, nil)
	require.NoError(t, store.Refresh(context.Background()))
	assert.Equal(t, len(testsupport.Entries()), store.Snapshot().Len())
}

func TestSQLite_CloseNil(t *testing.T) {
	var s *SQLite
	assert.NoError(t, s.Close())
}
