package storage

import (
	"context"
	"errors"
	"time"

	"github.com/genre-guide/graphql-api/internal/domain"
)

// ErrNotFound is returned (wrapped) by lookups for records that do not exist.
var ErrNotFound = errors.New("not found")

// TrackQuery selects a range of tracks. Date bounds are inclusive; ID
// cursors are exclusive and are resolved through the referenced track's
// release date.
type TrackQuery struct {
	BeforeDate *time.Time
	AfterDate  *time.Time
	BeforeID   string
	AfterID    string

	NewestFirst bool
	Limit       int
}

// Store is the document store backing the catalog: subgenre records keyed
// by primary name (looked up by any name via the alias query) and track
// records keyed by their content-derived ID.
type Store interface {
	SubgenreByPrimaryName(ctx context.Context, name string) (*domain.Subgenre, error)
	SubgenreByAnyName(ctx context.Context, name string) (*domain.Subgenre, error)
	AllSubgenres(ctx context.Context) ([]*domain.Subgenre, error)
	AllCategories(ctx context.Context) ([]*domain.Subgenre, error)

	TrackByID(ctx context.Context, id string) (*domain.Track, error)
	ListTracks(ctx context.Context, q TrackQuery) ([]*domain.Track, error)

	SaveSubgenre(ctx context.Context, subgenre *domain.Subgenre) error
	SaveTrack(ctx context.Context, track *domain.Track) error

	Close() error
}
