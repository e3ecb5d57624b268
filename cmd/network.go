package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/affilnet/crossref"
	"github.com/lehigh-university-libraries/affilnet/format"
	"github.com/lehigh-university-libraries/affilnet/geo"
	"github.com/lehigh-university-libraries/affilnet/observability"
	"github.com/lehigh-university-libraries/affilnet/pipeline"
)

// runFlags are shared by the commands that resolve affiliations.
type runFlags struct {
	outputFile  string
	inputFormat string
	strict      bool
}

func addRunFlags(cmd *cobra.Command, f *runFlags) {
	cmd.Flags().StringVarP(&f.outputFile, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVarP(&f.inputFormat, "input-format", "i", "", "Bibliography format (default: detect)")
	cmd.Flags().StringP("format", "f", "table", "Output format (see 'affilnet formats')")
	cmd.Flags().Bool("pretty", false, "Pretty-print JSON output")
	cmd.Flags().Bool("normalize-names", false, `Merge "Given Family" and "Family, Given" spellings of an author`)
	cmd.Flags().String("metrics-file", "", "Write run metrics in Prometheus text format to this file")
	cmd.Flags().String("mailto", "", "Contact address for the Crossref polite pool")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "Fail on missing or duplicate citation keys")
}

func newNetworkCmd(a *app) *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "network <bibliography>",
		Short: "Build the co-affiliation network",
		Long: `Resolve affiliations, geocode them and connect every pair of authors
that share an affiliation.

Examples:
  affilnet network refs.bib
  affilnet network refs.bib --format json --pretty
  affilnet network refs.bib --format geojson -o network.geojson
  affilnet network refs.bib --geocoder google`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNetwork(cmd, a, &flags, args[0])
		},
	}

	addRunFlags(cmd, &flags)
	cmd.Flags().String("geocoder", geo.ProviderNominatim, "Geocoding provider (nominatim, google)")

	return cmd
}

func runNetwork(cmd *cobra.Command, a *app, flags *runFlags, path string) error {
	logger := observability.WithRunContext(a.logger, uuid.NewString(), path)
	logger.Info().Msg("Reading bibliography")

	entries, err := readEntries(path, flags.inputFormat)
	if err != nil {
		return err
	}
	logger.Info().Int("entries", len(entries)).Msg("Parsed bibliography")
	if err := checkEntries(logger, entries, flags.strict); err != nil {
		return err
	}

	if _, err := format.GetSerializer(a.cfg.Output.Format); err != nil {
		return err
	}

	geocoder, err := geo.New(a.cfg.GeocoderConfig())
	if err != nil {
		return fmt.Errorf("creating geocoder: %w", err)
	}

	metrics := observability.NewMetrics()
	p := pipeline.New(pipeline.Options{
		Lookup:         crossref.New(a.cfg.CrossrefClientConfig()),
		Geocoder:       geocoder,
		Logger:         logger,
		Metrics:        metrics,
		NormalizeNames: a.cfg.Names.Normalize,
	})

	result, err := p.Run(cmd.Context(), entries)
	if err != nil {
		return err
	}

	opts := format.NewSerializeOptions()
	opts.Pretty = a.cfg.Output.Pretty
	if err := present(flags.outputFile, a.cfg.Output.Format, result, opts); err != nil {
		return err
	}

	return writeMetrics(a, metrics)
}

func writeMetrics(a *app, metrics *observability.Metrics) error {
	if a.cfg.Metrics.File == "" {
		return nil
	}
	if err := metrics.WriteTextfile(a.cfg.Metrics.File); err != nil {
		return fmt.Errorf("writing metrics: %w", err)
	}
	return nil
}
