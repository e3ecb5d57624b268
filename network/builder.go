// Package network builds the co-affiliation graph.
package network

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/lehigh-university-libraries/affilnet/hub"
)

// Locator resolves an affiliation to a coordinate. geo.Resolver implements it.
type Locator interface {
	Resolve(ctx context.Context, affiliation string) (hub.Coordinate, bool)
}

// Builder constructs graphs from a frozen affiliation map.
type Builder struct {
	locator Locator
	logger  zerolog.Logger
}

// NewBuilder creates a Builder. A nil locator places no authors.
func NewBuilder(locator Locator, logger zerolog.Logger) *Builder {
	return &Builder{locator: locator, logger: logger}
}

// Build places every author at the coordinate of their affiliations and
// connects every pair of authors whose affiliation sets intersect.
//
// Authors and their affiliations are visited in sorted order and the last
// affiliation that resolves wins, so the position of an author with several
// resolvable affiliations depends on that order. Authors that resolve
// nowhere are listed in Unplaced and still take part in edges.
func (b *Builder) Build(ctx context.Context, affiliations *hub.AffiliationMap) *hub.Graph {
	g := hub.NewGraph()
	if affiliations == nil {
		return g
	}

	authors := affiliations.Authors()
	for _, author := range authors {
		if pos, ok := b.place(ctx, affiliations.Affiliations(author)); ok {
			g.AddNode(author, pos)
			continue
		}
		g.Unplaced = append(g.Unplaced, author)
		b.logger.Debug().Str("author", author).Msg("No coordinate for author")
	}

	for i := 0; i < len(authors); i++ {
		for j := i + 1; j < len(authors); j++ {
			shared := affiliations.Shared(authors[i], authors[j])
			if len(shared) == 0 {
				continue
			}
			g.AddEdge(authors[i], authors[j], shared)
		}
	}

	g.Sort()
	b.logger.Info().
		Int("nodes", len(g.Nodes)).
		Int("edges", len(g.Edges)).
		Int("unplaced", len(g.Unplaced)).
		Msg("Built co-affiliation network")
	return g
}

func (b *Builder) place(ctx context.Context, affiliations []string) (hub.Coordinate, bool) {
	var (
		pos   hub.Coordinate
		found bool
	)
	if b.locator == nil {
		return pos, false
	}
	for _, aff := range affiliations {
		if c, ok := b.locator.Resolve(ctx, aff); ok {
			pos, found = c, true
		}
	}
	return pos, found
}

// Build is a convenience wrapper around a Builder with a disabled logger.
func Build(ctx context.Context, affiliations *hub.AffiliationMap, locator Locator) *hub.Graph {
	return NewBuilder(locator, zerolog.Nop()).Build(ctx, affiliations)
}
