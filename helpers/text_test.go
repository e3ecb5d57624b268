package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeWhitespace(t *testing.T) {
	assert.Equal(t, "Alice Smith", NormalizeWhitespace("  Alice \n\t Smith "))
	assert.Equal(t, "", NormalizeWhitespace(" \n "))
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "Dept. of Physics & Astronomy", CleanText("Dept. of <i>Physics</i> &amp;  Astronomy"))
	assert.Equal(t, "", CleanText(""))
}

func TestStripBraces(t *testing.T) {
	assert.Equal(t, "MIT", StripBraces("{MIT}"))
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "short", TruncateText("short", 10))
	assert.Equal(t, "Massachusetts...", TruncateText("Massachusetts Institute of Technology", 20))
	assert.Equal(t, "ab", TruncateText("abcdef", 2))
}
