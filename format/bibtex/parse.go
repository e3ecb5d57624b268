package bibtex

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/nickng/bibtex"

	"github.com/lehigh-university-libraries/affilnet/format"
	"github.com/lehigh-university-libraries/affilnet/helpers"
	"github.com/lehigh-university-libraries/affilnet/hub"
)

// Parse reads BibTeX entries in input order. Only the author, doi and
// affiliation fields are kept; field names match case-insensitively.
func (f *Format) Parse(r io.Reader, opts *format.ParseOptions) ([]*hub.Entry, error) {
	if opts == nil {
		opts = format.NewParseOptions()
	}

	src, err := io.ReadAll(r)
	if err != nil {
		return nil, parseError(opts, err)
	}
	src = stripComments(src)

	bib, err := bibtex.Parse(bytes.NewReader(src))
	if err != nil {
		return nil, parseError(opts, err)
	}
	// The lexer gives up quietly on text it does not understand.
	if want := countEntries(src); len(bib.Entries) != want {
		return nil, parseError(opts, fmt.Errorf("read %d of %d entries", len(bib.Entries), want))
	}

	entries := make([]*hub.Entry, 0, len(bib.Entries))
	for _, be := range bib.Entries {
		entry := hub.NewEntry(be.CiteName)
		entry.EntryType = strings.ToLower(be.Type)

		fields := lowerFields(be.Fields, opts.StripBraces)
		entry.Authors = fields["author"]
		entry.DOI = strings.TrimSpace(fields["doi"])
		entry.Affiliation = fields["affiliation"]

		entries = append(entries, entry)
	}
	return entries, nil
}

func parseError(opts *format.ParseOptions, err error) error {
	if opts.SourceName != "" {
		return fmt.Errorf("parsing %s: %w", opts.SourceName, err)
	}
	return fmt.Errorf("parsing bibtex: %w", err)
}

func lowerFields(fields map[string]bibtex.BibString, stripBraces bool) map[string]string {
	out := make(map[string]string, len(fields))
	for name, value := range fields {
		if value == nil {
			continue
		}
		s := helpers.DecodeLaTeX(value.String())
		if stripBraces {
			s = helpers.StripBraces(s)
		}
		// BibTeX treats any whitespace run, line breaks included, as one space.
		out[strings.ToLower(name)] = helpers.NormalizeWhitespace(s)
	}
	return out
}

var entryStartRegex = regexp.MustCompile(`^@\s*([A-Za-z]+)`)

// countEntries counts top-level @type entries, leaving out @comment,
// @string and @preamble.
func countEntries(src []byte) int {
	n, depth := 0, 0
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		case '@':
			if depth > 0 {
				continue
			}
			m := entryStartRegex.FindSubmatch(src[i:])
			if m == nil {
				continue
			}
			switch strings.ToLower(string(m[1])) {
			case "comment", "string", "preamble":
			default:
				n++
			}
		}
	}
	return n
}

// stripComments blanks out %-to-end-of-line comments that sit outside field
// values. The bibtex lexer stops at the first one it meets and silently
// returns the entries read so far. A % inside a braced or quoted value, or
// escaped as \%, is kept.
func stripComments(src []byte) []byte {
	out := make([]byte, 0, len(src))
	depth := 0
	quoted := false
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case c == '\\' && i+1 < len(src):
			out = append(out, c, src[i+1])
			i++
			continue
		case c == '{':
			depth++
		case c == '}':
			if depth > 0 {
				depth--
			}
		case c == '"' && depth == 1:
			quoted = !quoted
		case c == '%' && depth <= 1 && !quoted:
			for i < len(src) && src[i] != '\n' {
				i++
			}
			if i < len(src) {
				out = append(out, '\n')
			}
			continue
		}
		out = append(out, c)
	}
	return out
}
