package hub

import (
	"errors"
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
)

// ErrFrozen is returned when merging into a builder that was already frozen.
var ErrFrozen = errors.New("affiliation map is frozen")

// AffiliationMapBuilder accumulates author -> affiliation sets across
// entries. It is owned by the resolution phase and is not safe for
// concurrent use.
type AffiliationMapBuilder struct {
	sets   map[string]mapset.Set[string]
	frozen bool
}

// NewAffiliationMapBuilder creates an empty builder.
func NewAffiliationMapBuilder() *AffiliationMapBuilder {
	return &AffiliationMapBuilder{
		sets: make(map[string]mapset.Set[string]),
	}
}

// Merge unions each author's affiliations into that author's set, creating
// the set for authors seen for the first time. Sets never shrink.
func (b *AffiliationMapBuilder) Merge(authors []AuthorAffiliations) error {
	if b.frozen {
		return ErrFrozen
	}
	for _, a := range authors {
		set, ok := b.sets[a.Name]
		if !ok {
			set = mapset.NewThreadUnsafeSet[string]()
			b.sets[a.Name] = set
		}
		for _, aff := range a.Affiliations {
			set.Add(aff)
		}
	}
	return nil
}

// Freeze finalizes the builder and returns a read-only snapshot. Further
// calls to Merge fail with ErrFrozen.
func (b *AffiliationMapBuilder) Freeze() *AffiliationMap {
	b.frozen = true

	m := &AffiliationMap{
		sets:   make(map[string]mapset.Set[string], len(b.sets)),
		sorted: make(map[string][]string, len(b.sets)),
	}
	for name, set := range b.sets {
		clone := set.Clone()
		m.sets[name] = clone
		m.authors = append(m.authors, name)

		affs := clone.ToSlice()
		sort.Strings(affs)
		m.sorted[name] = affs
	}
	sort.Strings(m.authors)
	return m
}

// AffiliationMap is the frozen author -> affiliation set mapping.
type AffiliationMap struct {
	sets    map[string]mapset.Set[string]
	sorted  map[string][]string
	authors []string
}

// Len returns the number of authors.
func (m *AffiliationMap) Len() int {
	return len(m.authors)
}

// Authors returns all author names in sorted order.
func (m *AffiliationMap) Authors() []string {
	out := make([]string, len(m.authors))
	copy(out, m.authors)
	return out
}

// Affiliations returns the author's affiliations in sorted order, or nil if
// the author is unknown.
func (m *AffiliationMap) Affiliations(author string) []string {
	affs, ok := m.sorted[author]
	if !ok {
		return nil
	}
	out := make([]string, len(affs))
	copy(out, affs)
	return out
}

// Shared returns the affiliations both authors list, sorted. Matching is
// exact string equality.
func (m *AffiliationMap) Shared(a, b string) []string {
	sa, okA := m.sets[a]
	sb, okB := m.sets[b]
	if !okA || !okB {
		return nil
	}
	shared := sa.Intersect(sb).ToSlice()
	sort.Strings(shared)
	return shared
}

// Intersects reports whether the two authors share at least one affiliation.
func (m *AffiliationMap) Intersects(a, b string) bool {
	sa, okA := m.sets[a]
	sb, okB := m.sets[b]
	if !okA || !okB {
		return false
	}
	return sa.Intersect(sb).Cardinality() > 0
}

// Entries returns the mapping as a sorted list, for presenters.
func (m *AffiliationMap) Entries() []AuthorAffiliations {
	out := make([]AuthorAffiliations, 0, len(m.authors))
	for _, name := range m.authors {
		out = append(out, AuthorAffiliations{
			Name:         name,
			Affiliations: m.Affiliations(name),
		})
	}
	return out
}
