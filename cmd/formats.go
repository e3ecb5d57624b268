package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/affilnet/format"
)

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List bibliography and output formats",
		Args:  cobra.NoArgs,
		// Listing formats needs no configuration.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Available formats:")
			for _, name := range format.List() {
				f, _ := format.Get(name)

				var modes []string
				if _, ok := f.(format.Parser); ok {
					modes = append(modes, "input")
				}
				if _, ok := f.(format.Serializer); ok {
					modes = append(modes, "output")
				}

				fmt.Fprintf(out, "  %-8s [%s] %s (.%s)\n",
					name,
					strings.Join(modes, ","),
					f.Description(),
					strings.Join(f.Extensions(), ", ."),
				)
			}
			return nil
		},
	}
}
