package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/genre-guide/graphql-api/internal/domain"
)

// MemoryStore is an in-memory Store, used by tests and as a zero-setup
// backend. Records are treated as immutable once stored.
type MemoryStore struct {
	mu        sync.RWMutex
	subgenres map[string]*domain.Subgenre
	tracks    map[string]*domain.Track
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		subgenres: make(map[string]*domain.Subgenre),
		tracks:    make(map[string]*domain.Track),
	}
}

func (m *MemoryStore) SubgenreByPrimaryName(ctx context.Context, name string) (*domain.Subgenre, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	subgenre, ok := m.subgenres[name]
	if !ok {
		return nil, fmt.Errorf("subgenre %q: %w", name, ErrNotFound)
	}
	return subgenre, nil
}

func (m *MemoryStore) SubgenreByAnyName(ctx context.Context, name string) (*domain.Subgenre, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// Multiple records sharing an alias would be a data anomaly; resolve it
	// deterministically by smallest primary name.
	var match *domain.Subgenre
	for _, subgenre := range m.subgenres {
		for _, candidate := range subgenre.Names {
			if candidate != name {
				continue
			}
			if match == nil || subgenre.PrimaryName() < match.PrimaryName() {
				match = subgenre
			}
			break
		}
	}
	if match == nil {
		return nil, fmt.Errorf("subgenre %q: %w", name, ErrNotFound)
	}
	return match, nil
}

func (m *MemoryStore) AllSubgenres(ctx context.Context) ([]*domain.Subgenre, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := make([]*domain.Subgenre, 0, len(m.subgenres))
	for _, subgenre := range m.subgenres {
		all = append(all, subgenre)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].PrimaryName() < all[j].PrimaryName() })
	return all, nil
}

func (m *MemoryStore) AllCategories(ctx context.Context) ([]*domain.Subgenre, error) {
	all, err := m.AllSubgenres(ctx)
	if err != nil {
		return nil, err
	}

	var categories []*domain.Subgenre
	for _, subgenre := range all {
		if subgenre.IsCategory() {
			categories = append(categories, subgenre)
		}
	}
	return categories, nil
}

func (m *MemoryStore) TrackByID(ctx context.Context, id string) (*domain.Track, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	track, ok := m.tracks[id]
	if !ok {
		return nil, fmt.Errorf("track %q: %w", id, ErrNotFound)
	}
	return track, nil
}

func (m *MemoryStore) ListTracks(ctx context.Context, q TrackQuery) ([]*domain.Track, error) {
	var beforeCursor, afterCursor *time.Time
	if q.BeforeID != "" {
		ref, err := m.TrackByID(ctx, q.BeforeID)
		if err != nil {
			return nil, err
		}
		beforeCursor = &ref.ReleaseDate
	}
	if q.AfterID != "" {
		ref, err := m.TrackByID(ctx, q.AfterID)
		if err != nil {
			return nil, err
		}
		afterCursor = &ref.ReleaseDate
	}

	m.mu.RLock()
	var tracks []*domain.Track
	for _, track := range m.tracks {
		if q.BeforeDate != nil && track.ReleaseDate.After(*q.BeforeDate) {
			continue
		}
		if q.AfterDate != nil && track.ReleaseDate.Before(*q.AfterDate) {
			continue
		}
		if beforeCursor != nil && !track.ReleaseDate.Before(*beforeCursor) {
			continue
		}
		if afterCursor != nil && !track.ReleaseDate.After(*afterCursor) {
			continue
		}
		tracks = append(tracks, track)
	}
	m.mu.RUnlock()

	sort.Slice(tracks, func(i, j int) bool {
		if !tracks[i].ReleaseDate.Equal(tracks[j].ReleaseDate) {
			if q.NewestFirst {
				return tracks[i].ReleaseDate.After(tracks[j].ReleaseDate)
			}
			return tracks[i].ReleaseDate.Before(tracks[j].ReleaseDate)
		}
		return tracks[i].ID < tracks[j].ID
	})

	if q.Limit < len(tracks) {
		tracks = tracks[:q.Limit]
	}
	return tracks, nil
}

func (m *MemoryStore) SaveSubgenre(ctx context.Context, subgenre *domain.Subgenre) error {
	if subgenre.PrimaryName() == "" {
		return fmt.Errorf("subgenre has no primary name")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.subgenres[subgenre.PrimaryName()] = subgenre
	return nil
}

func (m *MemoryStore) SaveTrack(ctx context.Context, track *domain.Track) error {
	if track.ID == "" {
		return fmt.Errorf("track %q by %q has no ID", track.Title, track.Artist)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.tracks[track.ID] = track
	return nil
}

func (m *MemoryStore) Close() error { return nil }
