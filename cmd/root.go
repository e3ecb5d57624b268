// Package cmd provides CLI commands for affilnet.
package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/lehigh-university-libraries/affilnet/config"
	"github.com/lehigh-university-libraries/affilnet/observability"

	// Register all format plugins
	_ "github.com/lehigh-university-libraries/affilnet/format/bibtex"
	_ "github.com/lehigh-university-libraries/affilnet/format/csv"
	_ "github.com/lehigh-university-libraries/affilnet/format/geojson"
	_ "github.com/lehigh-university-libraries/affilnet/format/jsonfmt"
	_ "github.com/lehigh-university-libraries/affilnet/format/table"
	_ "github.com/lehigh-university-libraries/affilnet/format/yamlfmt"
)

// flagKeys maps config keys to the flags that override them. Flags missing
// from a command are skipped.
var flagKeys = map[string]string{
	"logging.level":     "log-level",
	"logging.format":    "log-format",
	"output.format":     "format",
	"output.pretty":     "pretty",
	"names.normalize":   "normalize-names",
	"metrics.file":      "metrics-file",
	"geocoder.provider": "geocoder",
	"crossref.mailto":   "mailto",
}

// app is the state shared by all commands of one invocation.
type app struct {
	configFile string
	envFile    string

	cfg    *config.Config
	logger zerolog.Logger
}

func (a *app) load(cmd *cobra.Command) error {
	flags := make(map[string]*pflag.Flag, len(flagKeys))
	for key, name := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			flags[key] = f
		}
	}

	cfg, err := config.Load(config.Options{
		ConfigFile: a.configFile,
		EnvFile:    a.envFile,
		Flags:      flags,
	})
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = observability.NewLogger(cfg.LoggerConfig())
	return nil
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zerolog.Nop()}

	root := &cobra.Command{
		Use:   "affilnet",
		Short: "Build co-affiliation networks from bibliographies",
		Long: `Affilnet reads a bibliography, resolves every author's affiliations and
connects authors who share an affiliation.

Affiliations come from Crossref when an entry has a DOI and Crossref knows
the authors' affiliations; otherwise from the entry's own affiliation field.
Affiliations are geocoded so the network can be drawn on a map.

Examples:
  affilnet network refs.bib
  affilnet network refs.bib --format geojson -o network.geojson
  affilnet affiliations refs.bib --format yaml
  affilnet formats`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.configFile, "config", "", "Config file (default: ./affilnet.yaml or $HOME/.affilnet/affilnet.yaml)")
	root.PersistentFlags().StringVar(&a.envFile, "env-file", "", "Load environment variables from this file (default: ./.env if present)")
	root.PersistentFlags().String("log-level", "info", "Log level (trace, debug, info, warn, error)")
	root.PersistentFlags().String("log-format", "console", "Log format (console, json)")

	root.AddCommand(newNetworkCmd(a))
	root.AddCommand(newAffiliationsCmd(a))
	root.AddCommand(newFormatsCmd())

	return root
}

// Execute runs the root command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
