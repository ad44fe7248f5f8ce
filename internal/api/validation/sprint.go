package validation

import (
	"strings"
	"time"
)

// CreateSprintRequest mirrors the fields needed for create sprint validation.
// Dates are the raw request strings in YYYY-MM-DD form.
type CreateSprintRequest struct {
	Name      string
	StartDate string
	EndDate   string
}

// ValidateCreateSprintRequest validates the fields of a create sprint request.
func ValidateCreateSprintRequest(req CreateSprintRequest) []FieldError {
	var errs []FieldError

	if strings.TrimSpace(req.Name) == "" {
		errs = append(errs, FieldError{Field: "name", Message: "name is required"})
	}

	start, startErr := time.Parse("2006-01-02", req.StartDate)
	if req.StartDate == "" {
		errs = append(errs, FieldError{Field: "startDate", Message: "startDate is required"})
	} else if startErr != nil {
		errs = append(errs, FieldError{Field: "startDate", Message: "startDate must be a date in YYYY-MM-DD form"})
	}

	end, endErr := time.Parse("2006-01-02", req.EndDate)
	if req.EndDate == "" {
		errs = append(errs, FieldError{Field: "endDate", Message: "endDate is required"})
	} else if endErr != nil {
		errs = append(errs, FieldError{Field: "endDate", Message: "endDate must be a date in YYYY-MM-DD form"})
	}

	if startErr == nil && endErr == nil && end.Before(start) {
		errs = append(errs, FieldError{Field: "endDate", Message: "endDate must not be before startDate"})
	}

	return errs
}
