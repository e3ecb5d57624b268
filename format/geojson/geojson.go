// Package geojson presents the network as a GeoJSON FeatureCollection for
// map plotting: one Point per placed author and one LineString per edge
// whose endpoints are both placed.
package geojson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/lehigh-university-libraries/affilnet/format"
	"github.com/lehigh-university-libraries/affilnet/hub"
)

// Feature kinds, stored in the "kind" property.
const (
	KindAuthor = "author"
	KindEdge   = "edge"
)

// Format implements the GeoJSON presenter.
type Format struct{}

// Ensure Format implements the interfaces
var (
	_ format.Format     = (*Format)(nil)
	_ format.Serializer = (*Format)(nil)
)

// Name returns the format identifier.
func (f *Format) Name() string {
	return "geojson"
}

// Description returns a human-readable format description.
func (f *Format) Description() string {
	return "GeoJSON FeatureCollection of placed authors and edges"
}

// Extensions returns file extensions associated with this format.
func (f *Format) Extensions() []string {
	return []string{"geojson"}
}

// CanParse returns false for all input; this format is output only.
func (f *Format) CanParse(peek []byte) bool {
	return false
}

// Serialize writes the feature collection. Unplaced authors have no
// geometry and are left out, as are edges touching them.
func (f *Format) Serialize(w io.Writer, result *hub.Result, opts *format.SerializeOptions) error {
	if opts == nil {
		opts = format.NewSerializeOptions()
	}

	fc := FeatureCollection(result)
	data, err := fc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encoding geojson: %w", err)
	}

	if opts.Pretty {
		var out bytes.Buffer
		if err := json.Indent(&out, data, "", "  "); err != nil {
			return fmt.Errorf("indenting geojson: %w", err)
		}
		data = out.Bytes()
	}

	if _, err := w.Write(data); err != nil {
		return err
	}
	_, err = w.Write([]byte("\n"))
	return err
}

// FeatureCollection converts a result to GeoJSON features.
func FeatureCollection(result *hub.Result) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	if result == nil || result.Graph == nil {
		return fc
	}
	g := result.Graph

	for _, n := range g.Nodes {
		feature := geojson.NewFeature(point(n.Position))
		feature.Properties["kind"] = KindAuthor
		feature.Properties["author"] = n.Author
		if result.Affiliations != nil {
			feature.Properties["affiliations"] = result.Affiliations.Affiliations(n.Author)
		}
		fc.Append(feature)
	}

	for _, e := range g.Edges {
		src, okSrc := g.Node(e.Source)
		dst, okDst := g.Node(e.Target)
		if !okSrc || !okDst {
			continue
		}
		feature := geojson.NewFeature(orb.LineString{point(src.Position), point(dst.Position)})
		feature.Properties["kind"] = KindEdge
		feature.Properties["source"] = e.Source
		feature.Properties["target"] = e.Target
		feature.Properties["shared"] = e.Shared
		fc.Append(feature)
	}

	return fc
}

// GeoJSON positions are longitude first.
func point(c hub.Coordinate) orb.Point {
	return orb.Point{c.Longitude, c.Latitude}
}

func init() {
	format.Register(&Format{})
}
