// Package table presents results as aligned plain-text tables.
package table

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/lehigh-university-libraries/affilnet/format"
	"github.com/lehigh-university-libraries/affilnet/helpers"
	"github.com/lehigh-university-libraries/affilnet/hub"
)

// Format implements the table presenter.
type Format struct{}

// Ensure Format implements the interfaces
var (
	_ format.Format     = (*Format)(nil)
	_ format.Serializer = (*Format)(nil)
)

// Name returns the format identifier.
func (f *Format) Name() string {
	return "table"
}

// Description returns a human-readable format description.
func (f *Format) Description() string {
	return "Plain-text tables of authors, affiliations and edges"
}

// Extensions returns file extensions associated with this format.
func (f *Format) Extensions() []string {
	return []string{"txt"}
}

// CanParse always returns false; tables are output only.
func (f *Format) CanParse(peek []byte) bool {
	return false
}

// Serialize writes an "Authors and Affiliations" table, followed by the
// edge table unless opts.AffiliationsOnly is set.
func (f *Format) Serialize(w io.Writer, result *hub.Result, opts *format.SerializeOptions) error {
	if opts == nil {
		opts = format.NewSerializeOptions()
	}
	if result == nil {
		return fmt.Errorf("table: nil result")
	}

	withGraph := !opts.AffiliationsOnly && result.Graph != nil
	cell := func(s string) string {
		if opts.MaxWidth > 0 {
			return helpers.TruncateText(s, opts.MaxWidth)
		}
		return s
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "Authors and Affiliations")
	if opts.IncludeHeader {
		if withGraph {
			fmt.Fprintln(tw, "AUTHOR\tAFFILIATIONS\tLOCATION")
		} else {
			fmt.Fprintln(tw, "AUTHOR\tAFFILIATIONS")
		}
	}
	if result.Affiliations != nil {
		for _, a := range result.Affiliations.Entries() {
			affs := cell(strings.Join(a.Affiliations, "; "))
			if !withGraph {
				fmt.Fprintf(tw, "%s\t%s\n", a.Name, affs)
				continue
			}
			location := "-"
			if n, ok := result.Graph.Node(a.Name); ok {
				location = n.Position.String()
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", a.Name, affs, location)
		}
	}

	if withGraph {
		fmt.Fprintln(tw)
		fmt.Fprintf(tw, "Co-affiliation Edges (%d)\n", len(result.Graph.Edges))
		if opts.IncludeHeader {
			fmt.Fprintln(tw, "SOURCE\tTARGET\tSHARED")
		}
		for _, e := range result.Graph.Edges {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Source, e.Target, cell(strings.Join(e.Shared, "; ")))
		}
	}

	return tw.Flush()
}

func init() {
	format.Register(&Format{})
}
