package helpers

import (
	"html"
	"regexp"
	"strings"
)

var (
	htmlTagRegex    = regexp.MustCompile(`<[^>]*>`)
	multiSpaceRegex = regexp.MustCompile(`\s+`)

	// BibTeX protects capitalization with braces, e.g. "{MIT}".
	braceRegex = regexp.MustCompile(`[{}]`)
)

// NormalizeWhitespace collapses all whitespace runs, including line breaks,
// to single spaces and trims.
func NormalizeWhitespace(s string) string {
	s = multiSpaceRegex.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// StripBraces removes BibTeX grouping braces.
func StripBraces(s string) string {
	return braceRegex.ReplaceAllString(s, "")
}

// CleanText removes HTML tags, decodes entities and normalizes whitespace.
// Metadata services occasionally return marked-up institution names.
func CleanText(s string) string {
	if s == "" {
		return ""
	}
	s = htmlTagRegex.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	return NormalizeWhitespace(s)
}

// TruncateText truncates text to a maximum length, adding ellipsis if needed.
func TruncateText(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}

	// Try to truncate at a word boundary
	truncated := s[:maxLen-3]
	lastSpace := strings.LastIndex(truncated, " ")
	if lastSpace > maxLen/2 {
		truncated = truncated[:lastSpace]
	}

	return truncated + "..."
}
