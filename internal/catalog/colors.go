package catalog

import (
	"context"
	"fmt"

	"github.com/genre-guide/graphql-api/internal/domain"
)

// Defaults for the degenerate case of no subgenre at all.
const (
	defaultTextColor       = "#FFFFFF"
	defaultBackgroundColor = "#000000"
)

// maxCategoryDepth bounds the category walk. Real chains are one or two
// levels deep; hitting the bound means the sheet data has a cycle.
const maxCategoryDepth = 32

// Colors resolves display colors for subgenres, falling back to the
// category's colors when a record carries none of its own.
type Colors struct {
	subgenres *Subgenres
}

// NewColors creates a color resolver backed by the given subgenre adapter.
func NewColors(subgenres *Subgenres) *Colors {
	return &Colors{subgenres: subgenres}
}

// Text returns the text color for the subgenre as a hex string.
func (c *Colors) Text(ctx context.Context, subgenre *domain.Subgenre) (string, error) {
	return c.resolve(ctx, subgenre, func(s *domain.Subgenre) string { return s.TextColor }, defaultTextColor)
}

// Background returns the background color for the subgenre as a hex string.
func (c *Colors) Background(ctx context.Context, subgenre *domain.Subgenre) (string, error) {
	return c.resolve(ctx, subgenre, func(s *domain.Subgenre) string { return s.BackgroundColor }, defaultBackgroundColor)
}

func (c *Colors) resolve(ctx context.Context, subgenre *domain.Subgenre, color func(*domain.Subgenre) string, fallback string) (string, error) {
	if subgenre == nil || subgenre.PrimaryName() == "" {
		return fallback, nil
	}

	current := subgenre
	for depth := 0; depth < maxCategoryDepth; depth++ {
		if value := color(current); value != "" {
			return value, nil
		}
		next, err := c.subgenres.ByPrimaryName(ctx, current.Category, true)
		if err != nil {
			return "", fmt.Errorf("category %q of %q: %w", current.Category, current.PrimaryName(), err)
		}
		current = next
	}
	return "", fmt.Errorf("category chain of %q exceeds %d levels, the sheet data likely has a cycle", subgenre.PrimaryName(), maxCategoryDepth)
}
