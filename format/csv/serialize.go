package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/lehigh-university-libraries/affilnet/format"
	"github.com/lehigh-university-libraries/affilnet/hub"
)

const multiValueSeparator = "|"

var (
	edgeColumns        = []string{"source", "target", "shared_affiliations"}
	affiliationColumns = []string{"author", "affiliations", "latitude", "longitude"}
)

// Serialize writes the co-affiliation edge list, or one row per author when
// opts.AffiliationsOnly is set.
func (f *Format) Serialize(w io.Writer, result *hub.Result, opts *format.SerializeOptions) error {
	if opts == nil {
		opts = format.NewSerializeOptions()
	}
	if result == nil {
		return fmt.Errorf("csv: nil result")
	}

	writer := csv.NewWriter(w)

	if opts.AffiliationsOnly || result.Graph == nil {
		if err := writeAffiliations(writer, result, opts.IncludeHeader); err != nil {
			return err
		}
	} else if err := writeEdges(writer, result.Graph, opts.IncludeHeader); err != nil {
		return err
	}

	writer.Flush()
	return writer.Error()
}

func writeEdges(writer *csv.Writer, g *hub.Graph, header bool) error {
	if header {
		if err := writer.Write(edgeColumns); err != nil {
			return err
		}
	}
	for _, e := range g.Edges {
		row := []string{e.Source, e.Target, strings.Join(e.Shared, multiValueSeparator)}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func writeAffiliations(writer *csv.Writer, result *hub.Result, header bool) error {
	if header {
		if err := writer.Write(affiliationColumns); err != nil {
			return err
		}
	}
	if result.Affiliations == nil {
		return nil
	}
	for _, a := range result.Affiliations.Entries() {
		row := []string{a.Name, strings.Join(a.Affiliations, multiValueSeparator), "", ""}
		if result.Graph != nil {
			if n, ok := result.Graph.Node(a.Name); ok {
				row[2] = fmt.Sprintf("%.6f", n.Position.Latitude)
				row[3] = fmt.Sprintf("%.6f", n.Position.Longitude)
			}
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	return nil
}
