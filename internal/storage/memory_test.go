package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genre-guide/graphql-api/internal/domain"
)

func seedSubgenres(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	subgenres := []*domain.Subgenre{
		{Names: []string{"Dubstep"}, Category: "Dubstep", TextColor: "#FFFFFF", BackgroundColor: "#0C4B33"},
		{Names: []string{"Riddim"}, Category: "Dubstep", Origins: []string{"Dubstep"}},
		{Names: []string{"Drum & Bass", "DnB", "D&B"}, Category: "DnB"},
	}
	for _, subgenre := range subgenres {
		require.NoError(t, store.SaveSubgenre(ctx, subgenre))
	}
}

func seedTracks(t *testing.T, store Store) []*domain.Track {
	t.Helper()
	ctx := context.Background()

	dates := []time.Time{
		time.Date(2016, 1, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2017, 6, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2018, 4, 20, 0, 0, 0, 0, time.UTC),
	}

	var tracks []*domain.Track
	for _, released := range dates {
		track := &domain.Track{
			ID:              domain.TrackID("Artist", "Track", released),
			Artist:          "Artist",
			Title:           "Track",
			RecordLabel:     "Label",
			ReleaseDate:     released,
			SubgenresNested: `["Dubstep"]`,
		}
		require.NoError(t, store.SaveTrack(ctx, track))
		tracks = append(tracks, track)
	}
	return tracks
}

func TestMemoryStoreSubgenreLookups(t *testing.T) {
	store := NewMemoryStore()
	seedSubgenres(t, store)
	ctx := context.Background()

	dubstep, err := store.SubgenreByPrimaryName(ctx, "Dubstep")
	require.NoError(t, err)
	assert.Equal(t, "Dubstep", dubstep.PrimaryName())

	_, err = store.SubgenreByPrimaryName(ctx, "DnB")
	assert.ErrorIs(t, err, ErrNotFound)

	dnb, err := store.SubgenreByAnyName(ctx, "D&B")
	require.NoError(t, err)
	assert.Equal(t, "Drum & Bass", dnb.PrimaryName())

	_, err = store.SubgenreByAnyName(ctx, "Breakcore")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreAliasTieBreak(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	// two records erroneously sharing an alias resolve deterministically
	require.NoError(t, store.SaveSubgenre(ctx, &domain.Subgenre{Names: []string{"Zeta", "Shared"}, Category: "Zeta"}))
	require.NoError(t, store.SaveSubgenre(ctx, &domain.Subgenre{Names: []string{"Alpha", "Shared"}, Category: "Alpha"}))

	found, err := store.SubgenreByAnyName(ctx, "Shared")
	require.NoError(t, err)
	assert.Equal(t, "Alpha", found.PrimaryName())
}

func TestMemoryStoreAllAndCategories(t *testing.T) {
	store := NewMemoryStore()
	seedSubgenres(t, store)
	ctx := context.Background()

	all, err := store.AllSubgenres(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	// sorted by primary name
	assert.Equal(t, "Drum & Bass", all[0].PrimaryName())

	categories, err := store.AllCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 2)
}

func TestMemoryStoreListTracks(t *testing.T) {
	store := NewMemoryStore()
	tracks := seedTracks(t, store)
	ctx := context.Background()

	newestFirst, err := store.ListTracks(ctx, TrackQuery{NewestFirst: true, Limit: 10})
	require.NoError(t, err)
	require.Len(t, newestFirst, 3)
	assert.Equal(t, tracks[2].ID, newestFirst[0].ID)

	limited, err := store.ListTracks(ctx, TrackQuery{NewestFirst: true, Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)

	none, err := store.ListTracks(ctx, TrackQuery{NewestFirst: true, Limit: 0})
	require.NoError(t, err)
	assert.Empty(t, none)

	older, err := store.ListTracks(ctx, TrackQuery{BeforeID: tracks[2].ID, NewestFirst: true, Limit: 10})
	require.NoError(t, err)
	require.Len(t, older, 2)
	assert.Equal(t, tracks[1].ID, older[0].ID)

	_, err = store.ListTracks(ctx, TrackQuery{BeforeID: "missing", NewestFirst: true, Limit: 10})
	assert.ErrorIs(t, err, ErrNotFound)
}
