package catalog

import (
	"context"
	"fmt"
	"regexp"

	"golang.org/x/sync/errgroup"

	"github.com/genre-guide/graphql-api/internal/domain"
)

// unknownName matches the "? (Genre)" convention: the subgenre is uncertain
// but its category is known. The captured group is what gets looked up.
var unknownName = regexp.MustCompile(`\? \((.+)\)`)

// Resolver turns raw nested subgenre expressions into typed trees.
type Resolver struct {
	subgenres *Subgenres
}

// NewResolver creates a resolver backed by the given subgenre adapter.
func NewResolver(subgenres *Subgenres) *Resolver {
	return &Resolver{subgenres: subgenres}
}

// Resolve converts expr into its typed counterpart: sequences become
// groups (order preserved, elements resolved concurrently), operator
// symbols become Operators and everything else is looked up as a subgenre
// name. An unresolvable name is a data-integrity failure and propagates.
func (r *Resolver) Resolve(ctx context.Context, expr domain.Expression) (domain.Element, error) {
	switch e := expr.(type) {
	case domain.Sequence:
		elements := make([]domain.Element, len(e))
		g, ctx := errgroup.WithContext(ctx)
		for i, part := range e {
			g.Go(func() error {
				element, err := r.Resolve(ctx, part)
				if err != nil {
					return err
				}
				elements[i] = element
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		return &domain.SubgenreGroup{Elements: elements}, nil
	case domain.Token:
		return r.resolveToken(ctx, string(e))
	default:
		return nil, fmt.Errorf("unsupported expression node %T", expr)
	}
}

// Flatten resolves expr into a flat, ordered list of subgenres and
// operators, discarding all grouping. Lossy on purpose; only meant for
// display. The leaf order is identical to resolving the full tree and
// collecting its leaves.
func (r *Resolver) Flatten(ctx context.Context, expr domain.Expression) ([]domain.Element, error) {
	leaves := domain.Leaves(expr)
	elements := make([]domain.Element, len(leaves))

	g, ctx := errgroup.WithContext(ctx)
	for i, leaf := range leaves {
		g.Go(func() error {
			element, err := r.resolveToken(ctx, string(leaf))
			if err != nil {
				return err
			}
			elements[i] = element
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return elements, nil
}

func (r *Resolver) resolveToken(ctx context.Context, token string) (domain.Element, error) {
	if domain.IsOperatorSymbol(token) {
		operator, err := domain.DescribeOperator(token)
		if err != nil {
			return nil, err
		}
		return operator, nil
	}

	lookup := token
	wasUnknown := false
	if match := unknownName.FindStringSubmatch(token); match != nil {
		wasUnknown = true
		lookup = match[1]
	}

	// The sheet used "Trap" ambiguously; in track notation it always means
	// the EDM one. TODO: not have to work around the ambiguous Trap
	if lookup == "Trap" {
		lookup = "Trap (EDM)"
	}

	subgenre, err := r.subgenres.ByAnyName(ctx, lookup, true)
	if err != nil {
		return nil, fmt.Errorf("resolving %q: %w", token, err)
	}

	if wasUnknown {
		// Reinstate the uncertainty marker on a copy, never on the stored
		// record.
		subgenre = subgenre.Clone()
		for i, name := range subgenre.Names {
			subgenre.Names[i] = fmt.Sprintf("? (%s)", name)
		}
	}
	return subgenre, nil
}
