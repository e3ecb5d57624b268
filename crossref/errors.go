package crossref

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrLookupUnavailable wraps network-level failures reaching the API.
	ErrLookupUnavailable = errors.New("lookup unavailable")

	// ErrNotFound indicates the DOI is unknown to Crossref.
	ErrNotFound = errors.New("work not found")

	// ErrInvalidResponse indicates a 200 response whose body did not match
	// the expected schema.
	ErrInvalidResponse = errors.New("invalid response")
)

// StatusError is returned for any non-200 response.
type StatusError struct {
	DOI        string
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("crossref: %s: status %d", e.DOI, e.StatusCode)
}

// Is lets errors.Is(err, ErrNotFound) match 404 responses.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}
