package format

import "github.com/lehigh-university-libraries/affilnet/hub"

// Document is the structured view of a result shared by the JSON and YAML
// presenters.
type Document struct {
	Authors []hub.AuthorAffiliations `json:"authors" yaml:"authors"`
	Graph   *hub.Graph               `json:"graph,omitempty" yaml:"graph,omitempty"`
}

// NewDocument builds the structured view. The graph is left out when
// opts.AffiliationsOnly is set.
func NewDocument(result *hub.Result, opts *SerializeOptions) *Document {
	doc := &Document{Authors: []hub.AuthorAffiliations{}}
	if result == nil {
		return doc
	}
	if result.Affiliations != nil {
		doc.Authors = result.Affiliations.Entries()
	}
	if opts == nil || !opts.AffiliationsOnly {
		doc.Graph = result.Graph
	}
	return doc
}
