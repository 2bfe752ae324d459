package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genre-guide/graphql-api/internal/storage"
)

func TestByPrimaryName(t *testing.T) {
	subgenres := NewSubgenres(newTestStore(t))
	ctx := context.Background()

	dubstep, err := subgenres.ByPrimaryName(ctx, "Dubstep", true)
	require.NoError(t, err)
	assert.Equal(t, "Dubstep", dubstep.PrimaryName())

	// primary-name lookups do not consider aliases
	_, err = subgenres.ByPrimaryName(ctx, "DnB", true)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestByAnyNameFindsAliases(t *testing.T) {
	subgenres := NewSubgenres(newTestStore(t))
	ctx := context.Background()

	for _, name := range []string{"Drum & Bass", "DnB", "D&B"} {
		subgenre, err := subgenres.ByAnyName(ctx, name, true)
		require.NoError(t, err)
		assert.Equal(t, "Drum & Bass", subgenre.PrimaryName())
	}

	_, err := subgenres.ByAnyName(ctx, "dnb", true) // case-sensitive
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestLookupsAreCached(t *testing.T) {
	counting := &countingStore{Store: newTestStore(t)}
	subgenres := NewSubgenres(counting)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := subgenres.ByPrimaryName(ctx, "Dubstep", true)
		require.NoError(t, err)
	}
	assert.EqualValues(t, 1, counting.primaryLookups.Load())

	for i := 0; i < 3; i++ {
		_, err := subgenres.ByAnyName(ctx, "DnB", true)
		require.NoError(t, err)
	}
	assert.EqualValues(t, 1, counting.anyLookups.Load())
}

func TestCacheBypass(t *testing.T) {
	counting := &countingStore{Store: newTestStore(t)}
	subgenres := NewSubgenres(counting)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := subgenres.ByPrimaryName(ctx, "Dubstep", false)
		require.NoError(t, err)
	}
	assert.EqualValues(t, 3, counting.primaryLookups.Load())
}

func TestAliasLookupWarmsPrimaryCache(t *testing.T) {
	counting := &countingStore{Store: newTestStore(t)}
	subgenres := NewSubgenres(counting)
	ctx := context.Background()

	_, err := subgenres.ByAnyName(ctx, "DnB", true)
	require.NoError(t, err)

	_, err = subgenres.ByPrimaryName(ctx, "Drum & Bass", true)
	require.NoError(t, err)
	assert.EqualValues(t, 0, counting.primaryLookups.Load())
}

func TestAllAndCategories(t *testing.T) {
	subgenres := NewSubgenres(newTestStore(t))
	ctx := context.Background()

	all, err := subgenres.All(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 7)

	categories, err := subgenres.Categories(ctx, true)
	require.NoError(t, err)

	var names []string
	for _, category := range categories {
		names = append(names, category.PrimaryName())
	}
	// Drum & Bass counts: its category "DnB" is one of its own names.
	assert.ElementsMatch(t, []string{"Dubstep", "Vaporwave", "Trap (EDM)", "Drum & Bass"}, names)
}

func TestAllWarmsRecordCache(t *testing.T) {
	counting := &countingStore{Store: newTestStore(t)}
	subgenres := NewSubgenres(counting)
	ctx := context.Background()

	_, err := subgenres.All(ctx, true)
	require.NoError(t, err)

	_, err = subgenres.ByPrimaryName(ctx, "Riddim", true)
	require.NoError(t, err)
	assert.EqualValues(t, 0, counting.primaryLookups.Load())
}
