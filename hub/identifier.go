package hub

import (
	"regexp"
	"strings"
)

var doiRegex = regexp.MustCompile(`^10\.\d{4,}/\S+$`)

// doiPrefixes are resolver and scheme prefixes stripped from DOIs.
var doiPrefixes = []string{
	"https://doi.org/",
	"http://doi.org/",
	"https://dx.doi.org/",
	"http://dx.doi.org/",
	"doi:",
}

// CleanDOI strips resolver prefixes and surrounding whitespace, returning
// the bare "10.xxxx/suffix" form.
func CleanDOI(value string) string {
	value = strings.TrimSpace(value)
	lower := strings.ToLower(value)
	for _, prefix := range doiPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return strings.TrimSpace(value[len(prefix):])
		}
	}
	return value
}

// IsDOI reports whether value is a DOI, with or without a resolver prefix.
func IsDOI(value string) bool {
	return doiRegex.MatchString(CleanDOI(value))
}

