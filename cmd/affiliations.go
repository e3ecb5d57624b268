package cmd

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/affilnet/crossref"
	"github.com/lehigh-university-libraries/affilnet/format"
	"github.com/lehigh-university-libraries/affilnet/hub"
	"github.com/lehigh-university-libraries/affilnet/observability"
	"github.com/lehigh-university-libraries/affilnet/pipeline"
)

func newAffiliationsCmd(a *app) *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "affiliations <bibliography>",
		Short: "Resolve author affiliations without geocoding",
		Long: `Resolve every author's affiliations and print the author/affiliation
table. No geocoding requests are made.

Examples:
  affilnet affiliations refs.bib
  affilnet affiliations refs.bib --format csv -o authors.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAffiliations(cmd, a, &flags, args[0])
		},
	}

	addRunFlags(cmd, &flags)

	return cmd
}

func runAffiliations(cmd *cobra.Command, a *app, flags *runFlags, path string) error {
	logger := observability.WithRunContext(a.logger, uuid.NewString(), path)
	logger.Info().Msg("Reading bibliography")

	entries, err := readEntries(path, flags.inputFormat)
	if err != nil {
		return err
	}
	if err := checkEntries(logger, entries, flags.strict); err != nil {
		return err
	}

	if _, err := format.GetSerializer(a.cfg.Output.Format); err != nil {
		return err
	}

	metrics := observability.NewMetrics()
	p := pipeline.New(pipeline.Options{
		Lookup:         crossref.New(a.cfg.CrossrefClientConfig()),
		Logger:         logger,
		Metrics:        metrics,
		NormalizeNames: a.cfg.Names.Normalize,
	})

	m, err := p.Affiliations(cmd.Context(), entries)
	if err != nil {
		return err
	}

	opts := format.NewSerializeOptions()
	opts.Pretty = a.cfg.Output.Pretty
	opts.AffiliationsOnly = true
	if err := present(flags.outputFile, a.cfg.Output.Format, &hub.Result{Affiliations: m}, opts); err != nil {
		return err
	}

	return writeMetrics(a, metrics)
}
