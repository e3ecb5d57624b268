// Package affiliation resolves the affiliations of every author in a
// bibliography, preferring metadata lookups and falling back to the
// entries' own affiliation fields.
package affiliation

import (
	"strings"

	"github.com/lehigh-university-libraries/affilnet/helpers"
	"github.com/lehigh-university-libraries/affilnet/hub"
)

const (
	// MaxFallbackAffiliations caps the affiliations taken from an entry's
	// own affiliation field.
	MaxFallbackAffiliations = 3

	authorSeparator      = " and "
	affiliationSeparator = ", "
)

// Extract derives author affiliations from the entry's own fields. Entries
// rarely say which affiliation belongs to which co-author, so every author
// gets the same list.
func Extract(entry *hub.Entry) []hub.AuthorAffiliations {
	if entry == nil {
		return nil
	}

	affiliations := splitAffiliations(entry.Affiliation)

	var authors []hub.AuthorAffiliations
	for _, name := range SplitAuthors(entry.Authors) {
		affs := make([]string, len(affiliations))
		copy(affs, affiliations)
		authors = append(authors, hub.AuthorAffiliations{
			Name:         name,
			Affiliations: affs,
		})
	}
	return authors
}

// SplitAuthors splits a raw author field on the literal " and ". Names are
// whitespace-normalized only; empty names are skipped.
func SplitAuthors(field string) []string {
	var names []string
	for _, part := range strings.Split(field, authorSeparator) {
		name := helpers.NormalizeWhitespace(part)
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	return names
}

// splitAffiliations keeps the first MaxFallbackAffiliations comma-separated
// pieces and then drops the empty ones, so a blank piece still uses a slot.
func splitAffiliations(field string) []string {
	parts := strings.Split(field, affiliationSeparator)
	if len(parts) > MaxFallbackAffiliations {
		parts = parts[:MaxFallbackAffiliations]
	}
	affs := make([]string, 0, len(parts))
	for _, part := range parts {
		aff := strings.TrimSpace(part)
		if aff == "" {
			continue
		}
		affs = append(affs, aff)
	}
	return affs
}
