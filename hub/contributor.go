package hub

// AuthorAffiliations is one author together with the affiliations a single
// source (metadata lookup or bibliography fields) attributes to them.
type AuthorAffiliations struct {
	Name         string   `json:"name" yaml:"name"`
	Affiliations []string `json:"affiliations" yaml:"affiliations"`
}

// HasAffiliations reports whether any author in the list has at least one
// affiliation.
func HasAffiliations(authors []AuthorAffiliations) bool {
	for _, a := range authors {
		if len(a.Affiliations) > 0 {
			return true
		}
	}
	return false
}

// ParsedName holds the components of a personal name.
type ParsedName struct {
	FullName   string
	Given      string
	Middle     string
	Family     string
	Prefix     string
	Suffix     string
	Normalized string
}

// ParsedNameInverted returns the name in "Family, Given Middle Suffix" format.
func ParsedNameInverted(p *ParsedName) string {
	if p == nil {
		return ""
	}
	result := p.Family
	if p.Given != "" {
		result += ", " + p.Given
	}
	if p.Middle != "" {
		result += " " + p.Middle
	}
	if p.Suffix != "" {
		result += " " + p.Suffix
	}
	return result
}

