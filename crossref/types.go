package crossref

// WorkResponse is the envelope returned by GET /works/{doi}.
type WorkResponse struct {
	Status         string `json:"status" validate:"required,eq=ok"`
	MessageType    string `json:"message-type" validate:"omitempty,eq=work"`
	MessageVersion string `json:"message-version"`
	Message        Work   `json:"message"`
}

// Work is the subset of a Crossref work record this project reads.
// Every field is optional in the upstream schema; missing values decode to
// their zero value.
type Work struct {
	DOI    string   `json:"DOI"`
	Title  []string `json:"title"`
	Author []Author `json:"author"`
}

// Author is a contributor on a work. Organizational authors carry Name
// instead of Given/Family.
type Author struct {
	Given       string        `json:"given"`
	Family      string        `json:"family"`
	Name        string        `json:"name"`
	Sequence    string        `json:"sequence"`
	ORCID       string        `json:"ORCID"`
	Affiliation []Affiliation `json:"affiliation"`
}

// Affiliation is one institution attached to an author.
type Affiliation struct {
	Name string `json:"name"`
}
