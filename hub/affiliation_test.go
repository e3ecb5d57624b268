package hub

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeUnionsAffiliations(t *testing.T) {
	b := NewAffiliationMapBuilder()
	require.NoError(t, b.Merge([]AuthorAffiliations{
		{Name: "Alice Smith", Affiliations: []string{"MIT", "Stanford"}},
	}))
	require.NoError(t, b.Merge([]AuthorAffiliations{
		{Name: "Alice Smith", Affiliations: []string{"Stanford", "Oxford"}},
		{Name: "Bob Jones", Affiliations: nil},
	}))

	m := b.Freeze()
	assert.Equal(t, []string{"Alice Smith", "Bob Jones"}, m.Authors())
	assert.Equal(t, []string{"MIT", "Oxford", "Stanford"}, m.Affiliations("Alice Smith"))
	assert.Empty(t, m.Affiliations("Bob Jones"))
	assert.Contains(t, m.Authors(), "Bob Jones")
	assert.Nil(t, m.Affiliations("Carol"))
}

func TestMergeIsOrderIndependent(t *testing.T) {
	batches := [][]AuthorAffiliations{
		{{Name: "A", Affiliations: []string{"X", "Y"}}},
		{{Name: "A", Affiliations: []string{"Z"}}, {Name: "B", Affiliations: []string{"X"}}},
		{{Name: "B", Affiliations: []string{"W", "X"}}},
	}

	forward := NewAffiliationMapBuilder()
	for _, batch := range batches {
		require.NoError(t, forward.Merge(batch))
	}
	reverse := NewAffiliationMapBuilder()
	for i := len(batches) - 1; i >= 0; i-- {
		require.NoError(t, reverse.Merge(batches[i]))
	}

	assert.Equal(t, forward.Freeze().Entries(), reverse.Freeze().Entries())
}

func TestFreezeRejectsFurtherMerges(t *testing.T) {
	b := NewAffiliationMapBuilder()
	require.NoError(t, b.Merge([]AuthorAffiliations{{Name: "A", Affiliations: []string{"X"}}}))
	m := b.Freeze()

	err := b.Merge([]AuthorAffiliations{{Name: "A", Affiliations: []string{"Y"}}})
	assert.ErrorIs(t, err, ErrFrozen)
	assert.Equal(t, []string{"X"}, m.Affiliations("A"))
}

func TestIntersectsUsesExactMatching(t *testing.T) {
	b := NewAffiliationMapBuilder()
	require.NoError(t, b.Merge([]AuthorAffiliations{
		{Name: "A", Affiliations: []string{"MIT"}},
		{Name: "B", Affiliations: []string{"MIT CSAIL", "mit"}},
		{Name: "C", Affiliations: []string{"Harvard", "MIT"}},
	}))
	m := b.Freeze()

	assert.False(t, m.Intersects("A", "B"))
	assert.True(t, m.Intersects("A", "C"))
	assert.Equal(t, []string{"MIT"}, m.Shared("C", "A"))
	assert.False(t, m.Intersects("A", "missing"))
}

func TestAffiliationsReturnsCopy(t *testing.T) {
	b := NewAffiliationMapBuilder()
	require.NoError(t, b.Merge([]AuthorAffiliations{{Name: "A", Affiliations: []string{"X"}}}))
	m := b.Freeze()

	affs := m.Affiliations("A")
	affs[0] = "changed"
	assert.Equal(t, []string{"X"}, m.Affiliations("A"))
}

func TestHasAffiliations(t *testing.T) {
	assert.False(t, HasAffiliations(nil))
	assert.False(t, HasAffiliations([]AuthorAffiliations{{Name: "A"}}))
	assert.True(t, HasAffiliations([]AuthorAffiliations{{Name: "A"}, {Name: "B", Affiliations: []string{"X"}}}))
}
