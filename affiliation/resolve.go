package affiliation

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/lehigh-university-libraries/affilnet/hub"
	"github.com/lehigh-university-libraries/affilnet/observability"
)

// FallbackSource labels affiliations taken from the bibliography itself.
const FallbackSource = "bibtex"

// Lookup fetches the authors of a work by DOI.
type Lookup interface {
	Name() string
	Authors(ctx context.Context, doi string) ([]hub.AuthorAffiliations, error)
}

// Resolver builds the global author -> affiliations map from a sequence of
// entries. It processes entries one at a time, in input order.
type Resolver struct {
	lookup    Lookup
	logger    zerolog.Logger
	metrics   *observability.Metrics
	normalize func(string) string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithMetrics records lookup outcomes on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(r *Resolver) {
		r.metrics = m
	}
}

// WithNameNormalizer rewrites every author name from either source before
// merging, so formatting differences no longer split one author into two.
func WithNameNormalizer(fn func(string) string) Option {
	return func(r *Resolver) {
		r.normalize = fn
	}
}

// NewResolver creates a Resolver. A nil lookup always uses the fallback.
func NewResolver(lookup Lookup, logger zerolog.Logger, opts ...Option) *Resolver {
	r := &Resolver{
		lookup: lookup,
		logger: logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.metrics == nil {
		r.metrics = observability.NewMetrics()
	}
	return r
}

// Resolve processes all entries and returns the frozen affiliation map.
// Lookup failures degrade to the fallback and are never returned; the only
// error is a cancelled context.
func (r *Resolver) Resolve(ctx context.Context, entries []*hub.Entry) (*hub.AffiliationMap, error) {
	builder := hub.NewAffiliationMapBuilder()

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry == nil {
			continue
		}

		authors := r.resolveEntry(ctx, entry)
		if r.normalize != nil {
			authors = r.normalizeNames(authors)
		}
		if err := builder.Merge(authors); err != nil {
			return nil, err
		}
		r.metrics.EntriesProcessed.Inc()
	}

	m := builder.Freeze()
	r.logger.Info().
		Int("entries", len(entries)).
		Int("authors", m.Len()).
		Msg("Resolved affiliations")
	return m, nil
}

func (r *Resolver) resolveEntry(ctx context.Context, entry *hub.Entry) []hub.AuthorAffiliations {
	logger := observability.WithEntryContext(r.logger, entry.CitationKey, entry.DOI)
	logger.Info().Msg("Processing entry")

	if entry.HasDOI() && r.lookup != nil {
		source := r.lookup.Name()
		authors, err := r.lookup.Authors(ctx, entry.DOI)
		switch {
		case err != nil:
			r.metrics.Lookups.WithLabelValues(source, observability.LookupFailed).Inc()
			logger.Warn().
				Err(err).
				Str("source", source).
				Msg("Metadata lookup failed, using bibliography affiliations")
		case !hub.HasAffiliations(authors):
			r.metrics.Lookups.WithLabelValues(source, observability.LookupEmpty).Inc()
			logger.Info().
				Str("source", source).
				Int("authors", len(authors)).
				Msg("Metadata lookup returned no affiliations, using bibliography affiliations")
		default:
			r.metrics.Lookups.WithLabelValues(source, observability.LookupOK).Inc()
			logger.Debug().
				Str("source", source).
				Int("authors", len(authors)).
				Msg("Using metadata lookup affiliations")
			return authors
		}
	}

	r.metrics.Lookups.WithLabelValues(FallbackSource, observability.LookupFallback).Inc()
	return Extract(entry)
}

func (r *Resolver) normalizeNames(authors []hub.AuthorAffiliations) []hub.AuthorAffiliations {
	out := make([]hub.AuthorAffiliations, 0, len(authors))
	for _, a := range authors {
		name := r.normalize(a.Name)
		if name == "" {
			continue
		}
		out = append(out, hub.AuthorAffiliations{Name: name, Affiliations: a.Affiliations})
	}
	return out
}
