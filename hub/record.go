// Package hub defines the intermediate representation shared by the
// parsers, the resolution pipeline and the presenters.
package hub

import "strings"

// Entry is one parsed bibliography record. Entries are never mutated after
// parsing.
type Entry struct {
	// CitationKey is the unique key of the entry (e.g. "smith2020").
	CitationKey string

	// EntryType is the lower-cased entry type (article, book, ...).
	EntryType string

	// Authors is the raw author field. Individual authors are separated by
	// a literal " and ".
	Authors string

	// DOI is the optional identifier used for the metadata lookup.
	DOI string

	// Affiliation is the optional free-text affiliation field.
	Affiliation string
}

// NewEntry creates an Entry with the given citation key.
func NewEntry(key string) *Entry {
	return &Entry{CitationKey: key}
}

// HasDOI reports whether the entry carries a non-empty identifier.
func (e *Entry) HasDOI() bool {
	return strings.TrimSpace(e.DOI) != ""
}
