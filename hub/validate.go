package hub

import (
	"fmt"
	"strings"
)

// ValidationError represents a validation failure with context.
type ValidationError struct {
	CitationKey string // Entry the issue belongs to
	Field       string // Field name (e.g., "doi")
	Code        string // Error code (e.g., "required", "invalid_format")
	Message     string // Human-readable message
}

func (e ValidationError) Error() string {
	if e.CitationKey == "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("%s.%s: %s", e.CitationKey, e.Field, e.Message)
}

// ValidationResult contains all validation issues for a bibliography.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError // Non-fatal issues the pipeline tolerates
}

// IsValid returns true if there are no errors.
func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// Error returns a combined error message, or nil if valid.
func (r *ValidationResult) Error() error {
	if r.IsValid() {
		return nil
	}
	var msgs []string
	for _, e := range r.Errors {
		msgs = append(msgs, e.Error())
	}
	return fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
}

// ValidateEntries checks a parsed bibliography. Missing or duplicate
// citation keys are errors. Entries without authors and malformed DOIs are
// warnings: the pipeline handles them, but they usually point at an export
// problem.
func ValidateEntries(entries []*Entry) *ValidationResult {
	result := &ValidationResult{}
	seen := make(map[string]int, len(entries))

	for i, entry := range entries {
		if entry == nil {
			continue
		}
		key := strings.TrimSpace(entry.CitationKey)

		if key == "" {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("entries[%d].key", i),
				Code:    "required",
				Message: "citation key is required",
			})
		} else if first, dup := seen[key]; dup {
			result.Errors = append(result.Errors, ValidationError{
				CitationKey: key,
				Field:       "key",
				Code:        "duplicate",
				Message:     fmt.Sprintf("duplicate citation key (first used by entry %d)", first),
			})
		} else {
			seen[key] = i
		}

		if strings.TrimSpace(entry.Authors) == "" {
			result.Warnings = append(result.Warnings, ValidationError{
				CitationKey: key,
				Field:       "author",
				Code:        "required",
				Message:     "entry has no authors",
			})
		}

		if entry.HasDOI() && !IsDOI(entry.DOI) {
			result.Warnings = append(result.Warnings, ValidationError{
				CitationKey: key,
				Field:       "doi",
				Code:        "invalid_format",
				Message:     fmt.Sprintf("invalid DOI format: %s", entry.DOI),
			})
		}
	}

	return result
}
