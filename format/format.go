// Package format defines the interface for bibliography parsers and result
// presenters.
package format

import (
	"io"

	"github.com/lehigh-university-libraries/affilnet/hub"
)

// Format defines the interface that all format plugins must implement.
type Format interface {
	// Name returns the format identifier (e.g., "bibtex", "table", "geojson")
	Name() string

	// Description returns a human-readable format description
	Description() string

	// Extensions returns file extensions associated with this format
	Extensions() []string

	// CanParse returns true if this format can parse the given input
	CanParse(peek []byte) bool
}

// Parser is a format that reads bibliography entries.
type Parser interface {
	Format

	// Parse reads input and returns entries in input order.
	Parse(r io.Reader, opts *ParseOptions) ([]*hub.Entry, error)
}

// Serializer is a format that presents a pipeline result.
type Serializer interface {
	Format

	// Serialize writes the result to the output.
	Serialize(w io.Writer, result *hub.Result, opts *SerializeOptions) error
}

// ParseOptions contains options for parsing.
type ParseOptions struct {
	// SourceName is an identifier for the source (for error messages)
	SourceName string

	// StripBraces removes BibTeX grouping braces from field values
	StripBraces bool
}

// SerializeOptions contains options for serialization.
type SerializeOptions struct {
	// Pretty enables pretty-printing (for JSON formats)
	Pretty bool

	// IncludeHeader includes a header row (for tabular formats)
	IncludeHeader bool

	// MaxWidth truncates long cells (for tabular formats). Zero disables it.
	MaxWidth int

	// AffiliationsOnly omits the graph from the output
	AffiliationsOnly bool
}

// NewParseOptions creates ParseOptions with defaults.
func NewParseOptions() *ParseOptions {
	return &ParseOptions{
		StripBraces: true,
	}
}

// NewSerializeOptions creates SerializeOptions with defaults.
func NewSerializeOptions() *SerializeOptions {
	return &SerializeOptions{
		IncludeHeader: true,
		MaxWidth:      80,
	}
}
