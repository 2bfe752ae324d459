package catalog

import (
	"context"
	"log/slog"
	"time"

	"github.com/genre-guide/graphql-api/internal/domain"
	"github.com/genre-guide/graphql-api/internal/storage"
)

const (
	// DefaultTrackLimit is used when a listing does not ask for a limit.
	DefaultTrackLimit = 50
	// MaxTrackLimit caps how many tracks a single listing may return.
	MaxTrackLimit = 1000
)

// TrackFilter selects a range of tracks for listing. Date bounds are
// inclusive, ID cursors exclusive; the API contract expects callers to use
// one style or the other, but combining them only narrows the result.
type TrackFilter struct {
	BeforeDate *time.Time
	AfterDate  *time.Time
	BeforeID   string
	AfterID    string

	NewestFirst bool
	Limit       int
}

// Service binds the catalog resolvers to a store. It is the unit the
// GraphQL layer talks to.
type Service struct {
	store     storage.Store
	subgenres *Subgenres
	resolver  *Resolver
	colors    *Colors
	logger    *slog.Logger
}

// NewService wires the catalog over the given store. A nil logger falls
// back to slog's default.
func NewService(store storage.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	subgenres := NewSubgenres(store)
	return &Service{
		store:     store,
		subgenres: subgenres,
		resolver:  NewResolver(subgenres),
		colors:    NewColors(subgenres),
		logger:    logger,
	}
}

// Subgenres returns the subgenre adapter.
func (s *Service) Subgenres() *Subgenres { return s.subgenres }

// Resolver returns the nested expression resolver.
func (s *Service) Resolver() *Resolver { return s.resolver }

// Colors returns the color inheritance resolver.
func (s *Service) Colors() *Colors { return s.colors }

// Track fetches a single track by its content-derived ID.
func (s *Service) Track(ctx context.Context, id string) (*domain.Track, error) {
	return s.store.TrackByID(ctx, id)
}

// ListTracks returns tracks matching the filter, newest first unless asked
// otherwise. The limit is clamped to [0, MaxTrackLimit].
func (s *Service) ListTracks(ctx context.Context, filter TrackFilter) ([]*domain.Track, error) {
	limit := filter.Limit
	if limit < 0 {
		limit = 0
	}
	if limit > MaxTrackLimit {
		limit = MaxTrackLimit
	}

	return s.store.ListTracks(ctx, storage.TrackQuery{
		BeforeDate:  filter.BeforeDate,
		AfterDate:   filter.AfterDate,
		BeforeID:    filter.BeforeID,
		AfterID:     filter.AfterID,
		NewestFirst: filter.NewestFirst,
		Limit:       limit,
	})
}

// SubgenresNested resolves a track's authored notation into a typed tree.
// A malformed or unresolvable notation degrades to an empty group for that
// track alone, so one bad row never breaks a listing.
func (s *Service) SubgenresNested(ctx context.Context, track *domain.Track) *domain.SubgenreGroup {
	group, err := s.subgenresNested(ctx, track)
	if err != nil {
		s.logger.Warn("failed to resolve nested subgenres",
			"artist", track.Artist,
			"title", track.Title,
			"notation", track.SubgenresNested,
			"error", err)
		return &domain.SubgenreGroup{}
	}
	return group
}

func (s *Service) subgenresNested(ctx context.Context, track *domain.Track) (*domain.SubgenreGroup, error) {
	expr, err := domain.ParseExpression([]byte(track.SubgenresNested))
	if err != nil {
		return nil, err
	}

	element, err := s.resolver.Resolve(ctx, expr)
	if err != nil {
		return nil, err
	}

	if group, ok := element.(*domain.SubgenreGroup); ok {
		return group, nil
	}
	// A bare token at the top level still comes back as a group.
	return &domain.SubgenreGroup{Elements: []domain.Element{element}}, nil
}

// SubgenresFlat resolves a track's notation into the flat projection.
// Failures degrade to an empty list, same policy as SubgenresNested.
func (s *Service) SubgenresFlat(ctx context.Context, track *domain.Track) []domain.Element {
	expr, err := domain.ParseExpression([]byte(track.SubgenresNested))
	if err == nil {
		var elements []domain.Element
		elements, err = s.resolver.Flatten(ctx, expr)
		if err == nil {
			return elements
		}
	}

	s.logger.Warn("failed to resolve flat subgenres",
		"artist", track.Artist,
		"title", track.Title,
		"notation", track.SubgenresNested,
		"error", err)
	return []domain.Element{}
}
