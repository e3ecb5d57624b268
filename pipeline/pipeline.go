// Package pipeline runs affiliation resolution, geocoding and network
// construction as one batch.
package pipeline

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/lehigh-university-libraries/affilnet/affiliation"
	"github.com/lehigh-university-libraries/affilnet/geo"
	"github.com/lehigh-university-libraries/affilnet/helpers"
	"github.com/lehigh-university-libraries/affilnet/hub"
	"github.com/lehigh-university-libraries/affilnet/network"
	"github.com/lehigh-university-libraries/affilnet/observability"
)

// Options configures a Pipeline.
type Options struct {
	// Lookup is the metadata service queried for entries with a DOI. Nil
	// disables lookups.
	Lookup affiliation.Lookup

	// Geocoder places affiliations. Nil leaves every author unplaced.
	Geocoder geo.Geocoder

	Logger  zerolog.Logger
	Metrics *observability.Metrics

	// NormalizeNames merges "Given Family" and "Family, Given" spellings.
	NormalizeNames bool
}

// Pipeline is a configured batch run.
type Pipeline struct {
	opts Options
}

// New creates a Pipeline.
func New(opts Options) *Pipeline {
	if opts.Metrics == nil {
		opts.Metrics = observability.NewMetrics()
	}
	return &Pipeline{opts: opts}
}

// Metrics returns the registry-backed metrics of this pipeline.
func (p *Pipeline) Metrics() *observability.Metrics {
	return p.opts.Metrics
}

// Affiliations resolves the global author -> affiliations map only.
func (p *Pipeline) Affiliations(ctx context.Context, entries []*hub.Entry) (*hub.AffiliationMap, error) {
	opts := []affiliation.Option{affiliation.WithMetrics(p.opts.Metrics)}
	if p.opts.NormalizeNames {
		opts = append(opts, affiliation.WithNameNormalizer(helpers.NormalizeName))
	}

	resolver := affiliation.NewResolver(p.opts.Lookup, p.opts.Logger, opts...)
	m, err := resolver.Resolve(ctx, entries)
	if err != nil {
		return nil, fmt.Errorf("resolving affiliations: %w", err)
	}
	return m, nil
}

// Run resolves affiliations and builds the network. Lookup and geocoding
// failures degrade the result; only a cancelled context is returned.
func (p *Pipeline) Run(ctx context.Context, entries []*hub.Entry) (*hub.Result, error) {
	m, err := p.Affiliations(ctx, entries)
	if err != nil {
		return nil, err
	}

	var locator network.Locator
	if p.opts.Geocoder != nil {
		// One resolver per run so the memo never outlives the batch.
		locator = geo.NewResolver(p.opts.Geocoder, p.opts.Logger, p.opts.Metrics)
	}

	g := network.NewBuilder(locator, p.opts.Logger).Build(ctx, m)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.opts.Metrics.GraphNodes.Set(float64(len(g.Nodes)))
	p.opts.Metrics.GraphEdges.Set(float64(len(g.Edges)))
	p.opts.Metrics.GraphUnplaced.Set(float64(len(g.Unplaced)))

	return &hub.Result{Affiliations: m, Graph: g}, nil
}
