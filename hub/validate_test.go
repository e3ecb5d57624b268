package hub

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEntries(t *testing.T) {
	entries := []*Entry{
		{CitationKey: "smith2020", Authors: "Alice Smith", DOI: "10.1234/abc"},
		{CitationKey: "smith2020", Authors: "Bob Jones"},
		{CitationKey: "", Authors: "Carol White"},
		{CitationKey: "nobody", DOI: "not-a-doi"},
		nil,
	}

	result := ValidateEntries(entries)
	require.False(t, result.IsValid())
	require.Len(t, result.Errors, 2)
	assert.Equal(t, "duplicate", result.Errors[0].Code)
	assert.Equal(t, "required", result.Errors[1].Code)

	require.True(t, result.HasWarnings())
	require.Len(t, result.Warnings, 2)
	assert.Equal(t, "author", result.Warnings[0].Field)
	assert.Equal(t, "doi", result.Warnings[1].Field)

	err := result.Error()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "smith2020.key")
}

func TestValidateEntriesClean(t *testing.T) {
	result := ValidateEntries([]*Entry{
		{CitationKey: "a", Authors: "Alice Smith", DOI: "https://doi.org/10.1234/abc"},
		{CitationKey: "b", Authors: "Bob Jones"},
	})
	assert.True(t, result.IsValid())
	assert.False(t, result.HasWarnings())
	assert.NoError(t, result.Error())
}

func TestCleanDOI(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"10.1234/abc", "10.1234/abc"},
		{" https://doi.org/10.1234/abc ", "10.1234/abc"},
		{"HTTPS://DX.DOI.ORG/10.1234/abc", "10.1234/abc"},
		{"doi:10.1234/abc", "10.1234/abc"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanDOI(tt.in), tt.in)
	}

	assert.True(t, IsDOI("doi:10.1000/182"))
	assert.False(t, IsDOI("10.12/short"))
	assert.False(t, IsDOI("hello"))
}
