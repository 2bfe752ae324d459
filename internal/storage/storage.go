package storage

import (
	"fmt"

	"github.com/genre-guide/graphql-api/config"
)

// New creates the Store selected by the configuration.
func New(cfg *config.Config) (Store, error) {
	switch cfg.Storage.Type {
	case "sqlite":
		return NewSQLiteStore(cfg.Storage.Path)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Storage.Type)
	}
}
