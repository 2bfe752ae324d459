package catalog

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/genre-guide/graphql-api/internal/domain"
	"github.com/genre-guide/graphql-api/internal/storage"
)

// newTestStore seeds an in-memory store with a small slice of the sheet.
func newTestStore(t *testing.T) *storage.MemoryStore {
	t.Helper()
	store := storage.NewMemoryStore()

	subgenres := []*domain.Subgenre{
		{
			Names:           []string{"Dubstep"},
			Category:        "Dubstep",
			Children:        []string{"Brostep", "Riddim"},
			TextColor:       "#FFFFFF",
			BackgroundColor: "#0C4B33",
		},
		{
			Names:    []string{"Riddim"},
			Category: "Dubstep",
			Origins:  []string{"Dubstep"},
		},
		{
			Names:    []string{"Brostep"},
			Category: "Dubstep",
			Origins:  []string{"Dubstep"},
		},
		{
			Names:           []string{"Vaporwave"},
			Category:        "Vaporwave",
			Children:        []string{"Vaportrap"},
			TextColor:       "#000000",
			BackgroundColor: "#FF819A",
		},
		{
			Names:    []string{"Vaportrap"},
			Category: "Vaporwave",
			Origins:  []string{"Vaporwave", "Trap (EDM)"},
		},
		{
			Names:           []string{"Trap (EDM)"},
			Category:        "Trap (EDM)",
			Children:        []string{"Vaportrap"},
			TextColor:       "#FFFFFF",
			BackgroundColor: "#6A2C91",
		},
		{
			Names:           []string{"Drum & Bass", "DnB", "D&B"},
			Category:        "DnB",
			TextColor:       "#FFFFFF",
			BackgroundColor: "#1F2A66",
		},
	}
	for _, subgenre := range subgenres {
		require.NoError(t, store.SaveSubgenre(context.Background(), subgenre))
	}
	return store
}

func date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func saveTrack(t *testing.T, store storage.Store, artist, title string, released time.Time, notation string) *domain.Track {
	t.Helper()
	track := &domain.Track{
		ID:              domain.TrackID(artist, title, released),
		Artist:          artist,
		Title:           title,
		RecordLabel:     "Test Records",
		ReleaseDate:     released,
		SubgenresNested: notation,
	}
	require.NoError(t, store.SaveTrack(context.Background(), track))
	return track
}

// countingStore counts subgenre lookups hitting the underlying store, for
// cache assertions. Also captures the last track query it saw.
type countingStore struct {
	storage.Store
	primaryLookups atomic.Int64
	anyLookups     atomic.Int64
	lastTrackQuery storage.TrackQuery
}

func (c *countingStore) SubgenreByPrimaryName(ctx context.Context, name string) (*domain.Subgenre, error) {
	c.primaryLookups.Add(1)
	return c.Store.SubgenreByPrimaryName(ctx, name)
}

func (c *countingStore) SubgenreByAnyName(ctx context.Context, name string) (*domain.Subgenre, error) {
	c.anyLookups.Add(1)
	return c.Store.SubgenreByAnyName(ctx, name)
}

func (c *countingStore) ListTracks(ctx context.Context, q storage.TrackQuery) ([]*domain.Track, error) {
	c.lastTrackQuery = q
	return c.Store.ListTracks(ctx, q)
}
