// Package helpers holds small text utilities shared across packages.
package helpers

import (
	"regexp"
	"strings"

	"github.com/lehigh-university-libraries/affilnet/hub"
)

// NameParser parses personal names into components.
type NameParser struct{}

var (
	// Suffixes that appear after a name
	suffixes = []string{"Jr.", "Jr", "Sr.", "Sr", "III", "II", "IV", "PhD", "Ph.D.", "MD", "M.D."}

	// Name prefixes (nobiliary particles)
	prefixes = []string{"van", "von", "de", "del", "della", "di", "da", "le", "la", "du", "des", "den", "der", "ter", "ten", "mc", "mac", "o'", "d'", "al-", "el-", "ibn"}

	// Pattern for "Last, First Middle" format
	invertedNameRegex = regexp.MustCompile(`^([^,]+),\s*(.+)$`)
)

// Parse parses a name string into its components.
// Handles both "First Last" and "Last, First" formats.
func (p *NameParser) Parse(name string) *hub.ParsedName {
	name = NormalizeWhitespace(StripBraces(name))
	if name == "" {
		return nil
	}

	result := &hub.ParsedName{
		FullName: name,
	}

	if matches := invertedNameRegex.FindStringSubmatch(name); matches != nil {
		result.Family = strings.TrimSpace(matches[1])
		rest := strings.TrimSpace(matches[2])

		rest, result.Suffix = extractSuffix(rest)

		parts := strings.Fields(rest)
		if len(parts) > 0 {
			result.Given = parts[0]
		}
		if len(parts) > 1 {
			result.Middle = strings.Join(parts[1:], " ")
		}
	} else {
		name, result.Suffix = extractSuffix(name)
		parts := strings.Fields(name)

		if len(parts) == 0 {
			return nil
		}

		if len(parts) == 1 {
			// Single name - treat as family name
			result.Family = parts[0]
		} else {
			familyStart := len(parts) - 1
			if familyStart > 1 && isPrefix(parts[familyStart-1]) {
				result.Prefix = parts[familyStart-1]
				familyStart--
			}

			result.Family = strings.Join(parts[familyStart:], " ")
			result.Given = parts[0]
			if familyStart > 1 {
				result.Middle = strings.Join(parts[1:familyStart], " ")
			}
		}
	}

	result.Normalized = hub.ParsedNameInverted(result)

	return result
}

// extractSuffix extracts a suffix from a name string.
func extractSuffix(name string) (string, string) {
	for _, suffix := range suffixes {
		if strings.HasSuffix(name, ", "+suffix) {
			return strings.TrimSuffix(name, ", "+suffix), suffix
		}
		if strings.HasSuffix(name, " "+suffix) {
			return strings.TrimSuffix(name, " "+suffix), suffix
		}
	}
	return name, ""
}

// isPrefix checks if a word is a nobiliary particle.
func isPrefix(word string) bool {
	lower := strings.ToLower(word)
	for _, prefix := range prefixes {
		if lower == prefix || lower == strings.TrimSuffix(prefix, "'") {
			return true
		}
	}
	return false
}

// ParseName is a convenience function to parse a name string.
func ParseName(name string) *hub.ParsedName {
	parser := &NameParser{}
	return parser.Parse(name)
}

// NormalizeName maps "Given Family" and "Family, Given" spellings of the
// same person to one "Family, Given" key. Names that cannot be parsed are
// returned whitespace-normalized.
func NormalizeName(name string) string {
	parsed := ParseName(name)
	if parsed == nil {
		return NormalizeWhitespace(name)
	}
	return parsed.Normalized
}
