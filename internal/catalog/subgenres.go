package catalog

import (
	"context"
	"sync"

	"github.com/genre-guide/graphql-api/internal/domain"
	"github.com/genre-guide/graphql-api/internal/storage"
)

type cacheKey struct {
	kind string // "primary" or "any"
	name string
}

// Subgenres looks up subgenre records through the store, read-through
// caching results for the life of the process. The store is append-mostly,
// so a process-lifetime cache is acceptable; records are immutable once
// fetched, so two concurrent misses populating the same key just overwrite
// each other with identical values.
type Subgenres struct {
	store storage.Store

	mu         sync.RWMutex
	records    map[cacheKey]*domain.Subgenre
	all        []*domain.Subgenre
	categories []*domain.Subgenre
}

// NewSubgenres creates an adapter over the given store.
func NewSubgenres(store storage.Store) *Subgenres {
	return &Subgenres{
		store:   store,
		records: make(map[cacheKey]*domain.Subgenre),
	}
}

// ByPrimaryName resolves a subgenre by its canonical name.
func (s *Subgenres) ByPrimaryName(ctx context.Context, name string, useCache bool) (*domain.Subgenre, error) {
	key := cacheKey{kind: "primary", name: name}
	if useCache {
		if cached := s.cached(key); cached != nil {
			return cached, nil
		}
	}

	subgenre, err := s.store.SubgenreByPrimaryName(ctx, name)
	if err != nil {
		return nil, err
	}
	s.remember(subgenre, key)
	return subgenre, nil
}

// ByAnyName resolves a subgenre by its canonical name or any of its
// alternative names (exact, case-sensitive).
func (s *Subgenres) ByAnyName(ctx context.Context, name string, useCache bool) (*domain.Subgenre, error) {
	key := cacheKey{kind: "any", name: name}
	if useCache {
		if cached := s.cached(key); cached != nil {
			return cached, nil
		}
	}

	subgenre, err := s.store.SubgenreByAnyName(ctx, name)
	if err != nil {
		return nil, err
	}
	s.remember(subgenre, key)
	return subgenre, nil
}

// All returns every subgenre record.
func (s *Subgenres) All(ctx context.Context, useCache bool) ([]*domain.Subgenre, error) {
	if useCache {
		s.mu.RLock()
		cached := s.all
		s.mu.RUnlock()
		if cached != nil {
			return cached, nil
		}
	}

	all, err := s.store.AllSubgenres(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.all = all
	for _, subgenre := range all {
		s.records[cacheKey{kind: "primary", name: subgenre.PrimaryName()}] = subgenre
	}
	s.mu.Unlock()
	return all, nil
}

// Categories returns every subgenre whose category is itself, i.e. the
// top-level genres.
func (s *Subgenres) Categories(ctx context.Context, useCache bool) ([]*domain.Subgenre, error) {
	if useCache {
		s.mu.RLock()
		cached := s.categories
		s.mu.RUnlock()
		if cached != nil {
			return cached, nil
		}
	}

	categories, err := s.store.AllCategories(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.categories = categories
	s.mu.Unlock()
	return categories, nil
}

func (s *Subgenres) cached(key cacheKey) *domain.Subgenre {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records[key]
}

func (s *Subgenres) remember(subgenre *domain.Subgenre, keys ...cacheKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		s.records[key] = subgenre
	}
	// A record found by alias is the same record a primary lookup would find.
	s.records[cacheKey{kind: "primary", name: subgenre.PrimaryName()}] = subgenre
}
