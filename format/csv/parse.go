package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/lehigh-university-libraries/affilnet/format"
	"github.com/lehigh-university-libraries/affilnet/helpers"
	"github.com/lehigh-university-libraries/affilnet/hub"
)

// Entry fields a column can map to.
const (
	fieldKey         = "key"
	fieldType        = "type"
	fieldAuthors     = "authors"
	fieldDOI         = "doi"
	fieldAffiliation = "affiliation"
)

// Parse reads CSV rows as bibliography entries. The first row is the
// header; unknown columns are ignored. Rows without a citation key get one
// derived from their row number.
func (f *Format) Parse(r io.Reader, opts *format.ParseOptions) ([]*hub.Entry, error) {
	if opts == nil {
		opts = format.NewParseOptions()
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing CSV: %w", err)
	}

	if len(rows) == 0 {
		return nil, nil
	}

	columnMap := buildColumnMap(rows[0])
	if !hasField(columnMap, fieldAuthors) {
		return nil, fmt.Errorf("parsing CSV: no author column in header")
	}

	entries := make([]*hub.Entry, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		entries = append(entries, rowToEntry(i, rows[i], columnMap, opts))
	}

	return entries, nil
}

func buildColumnMap(header []string) map[int]string {
	defaultMap := map[string]string{
		"citation_key": fieldKey,
		"key":          fieldKey,
		"id":           fieldKey,
		"entry_type":   fieldType,
		"type":         fieldType,
		"author":       fieldAuthors,
		"authors":      fieldAuthors,
		"doi":          fieldDOI,
		"affiliation":  fieldAffiliation,
		"affiliations": fieldAffiliation,
	}

	colMap := make(map[int]string)
	for i, col := range header {
		col = strings.ToLower(strings.TrimSpace(col))
		if field, ok := defaultMap[col]; ok {
			colMap[i] = field
		}
	}
	return colMap
}

func hasField(colMap map[int]string, field string) bool {
	for _, f := range colMap {
		if f == field {
			return true
		}
	}
	return false
}

func rowToEntry(rowNum int, row []string, colMap map[int]string, opts *format.ParseOptions) *hub.Entry {
	entry := hub.NewEntry("")

	for i, value := range row {
		field, ok := colMap[i]
		if !ok {
			continue
		}
		if opts.StripBraces {
			value = helpers.StripBraces(value)
		}
		value = helpers.NormalizeWhitespace(value)

		switch field {
		case fieldKey:
			entry.CitationKey = value
		case fieldType:
			entry.EntryType = strings.ToLower(value)
		case fieldAuthors:
			entry.Authors = value
		case fieldDOI:
			entry.DOI = value
		case fieldAffiliation:
			entry.Affiliation = value
		}
	}

	if entry.CitationKey == "" {
		entry.CitationKey = fmt.Sprintf("row%d", rowNum)
	}
	return entry
}
