package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genre-guide/graphql-api/internal/domain"
)

func newSQLiteTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStoreSubgenreRoundTrip(t *testing.T) {
	store := newSQLiteTestStore(t)
	seedSubgenres(t, store)
	ctx := context.Background()

	riddim, err := store.SubgenreByPrimaryName(ctx, "Riddim")
	require.NoError(t, err)
	assert.Equal(t, []string{"Riddim"}, riddim.Names)
	assert.Equal(t, "Dubstep", riddim.Category)
	assert.Equal(t, []string{"Dubstep"}, riddim.Origins)
	assert.Empty(t, riddim.TextColor)

	_, err = store.SubgenreByPrimaryName(ctx, "Breakcore")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStoreAliasLookup(t *testing.T) {
	store := newSQLiteTestStore(t)
	seedSubgenres(t, store)
	ctx := context.Background()

	dnb, err := store.SubgenreByAnyName(ctx, "DnB")
	require.NoError(t, err)
	assert.Equal(t, "Drum & Bass", dnb.PrimaryName())

	// the LIKE prefilter must not produce false positives for substrings
	_, err = store.SubgenreByAnyName(ctx, "Dn")
	assert.ErrorIs(t, err, ErrNotFound)

	// exact, case-sensitive
	_, err = store.SubgenreByAnyName(ctx, "dnb")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStoreAllAndCategories(t *testing.T) {
	store := newSQLiteTestStore(t)
	seedSubgenres(t, store)
	ctx := context.Background()

	all, err := store.AllSubgenres(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Drum & Bass", all[0].PrimaryName())

	categories, err := store.AllCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 2)
}

func TestSQLiteStoreTracks(t *testing.T) {
	store := newSQLiteTestStore(t)
	tracks := seedTracks(t, store)
	ctx := context.Background()

	found, err := store.TrackByID(ctx, tracks[0].ID)
	require.NoError(t, err)
	assert.Equal(t, tracks[0].Artist, found.Artist)
	assert.Equal(t, `["Dubstep"]`, found.SubgenresNested)

	listed, err := store.ListTracks(ctx, TrackQuery{NewestFirst: true, Limit: 10})
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, tracks[2].ID, listed[0].ID)

	older, err := store.ListTracks(ctx, TrackQuery{BeforeID: tracks[2].ID, NewestFirst: true, Limit: 10})
	require.NoError(t, err)
	require.Len(t, older, 2)
	assert.Equal(t, tracks[1].ID, older[0].ID)

	_, err = store.TrackByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStoreSaveIsUpsert(t *testing.T) {
	store := newSQLiteTestStore(t)
	ctx := context.Background()

	subgenre := &domain.Subgenre{Names: []string{"Dubstep"}, Category: "Dubstep"}
	require.NoError(t, store.SaveSubgenre(ctx, subgenre))

	subgenre.BackgroundColor = "#0C4B33"
	require.NoError(t, store.SaveSubgenre(ctx, subgenre))

	stored, err := store.SubgenreByPrimaryName(ctx, "Dubstep")
	require.NoError(t, err)
	assert.Equal(t, "#0C4B33", stored.BackgroundColor)

	all, err := store.AllSubgenres(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
