// Package jsonfmt presents results as JSON.
package jsonfmt

import (
	"encoding/json"
	"io"

	"github.com/lehigh-university-libraries/affilnet/format"
	"github.com/lehigh-university-libraries/affilnet/hub"
)

// Format implements the JSON presenter.
type Format struct{}

// Ensure Format implements the interfaces
var (
	_ format.Format     = (*Format)(nil)
	_ format.Serializer = (*Format)(nil)
)

// Name returns the format identifier.
func (f *Format) Name() string {
	return "json"
}

// Description returns a human-readable format description.
func (f *Format) Description() string {
	return "JSON document with authors, affiliations and the graph"
}

// Extensions returns file extensions associated with this format.
func (f *Format) Extensions() []string {
	return []string{"json"}
}

// CanParse returns false for all input; this format is output only.
func (f *Format) CanParse(peek []byte) bool {
	return false
}

// Serialize writes the result as a single JSON object.
func (f *Format) Serialize(w io.Writer, result *hub.Result, opts *format.SerializeOptions) error {
	if opts == nil {
		opts = format.NewSerializeOptions()
	}

	encoder := json.NewEncoder(w)
	if opts.Pretty {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(format.NewDocument(result, opts))
}

func init() {
	format.Register(&Format{})
}
