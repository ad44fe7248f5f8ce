package validation

import "strings"

// maxQueryLength caps free-text query size.
const maxQueryLength = 500

// ValidateQueryRequest validates a natural-language query request.
func ValidateQueryRequest(query string) []FieldError {
	var errs []FieldError

	if strings.TrimSpace(query) == "" {
		errs = append(errs, FieldError{Field: "query", Message: "query is required"})
	} else if len(query) > maxQueryLength {
		errs = append(errs, FieldError{Field: "query", Message: "query must be at most 500 characters"})
	}

	return errs
}
