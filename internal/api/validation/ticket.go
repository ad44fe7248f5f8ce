package validation

import (
	"strings"

	"github.com/sprintlens/sprintlens/internal/ticket"
)

// CreateTicketRequest mirrors the fields needed for create ticket validation.
type CreateTicketRequest struct {
	Title       string
	Type        string
	Status      string
	Priority    string
	StoryPoints *int
}

// ValidateCreateTicketRequest validates the fields of a create ticket request.
// Status and Priority are optional; the handler applies defaults.
func ValidateCreateTicketRequest(req CreateTicketRequest) []FieldError {
	var errs []FieldError

	if strings.TrimSpace(req.Title) == "" {
		errs = append(errs, FieldError{Field: "title", Message: "title is required"})
	}

	if req.Type == "" {
		errs = append(errs, FieldError{Field: "type", Message: "type is required"})
	} else if !ticket.ValidType(ticket.Type(req.Type)) {
		errs = append(errs, FieldError{Field: "type", Message: "type must be one of FEATURE, BUG, TASK, EPIC"})
	}

	if req.Status != "" && !ticket.ValidStatus(ticket.Status(req.Status)) {
		errs = append(errs, FieldError{Field: "status", Message: "status must be one of TODO, IN_PROGRESS, IN_REVIEW, TESTING, DONE"})
	}

	if req.Priority != "" && !ticket.ValidPriority(ticket.Priority(req.Priority)) {
		errs = append(errs, FieldError{Field: "priority", Message: "priority must be one of LOW, MEDIUM, HIGH, CRITICAL"})
	}

	if req.StoryPoints != nil && *req.StoryPoints < 0 {
		errs = append(errs, FieldError{Field: "storyPoints", Message: "storyPoints must not be negative"})
	}

	return errs
}

// ValidateTicketStatus validates a status transition request.
func ValidateTicketStatus(status string) []FieldError {
	var errs []FieldError

	if status == "" {
		errs = append(errs, FieldError{Field: "status", Message: "status is required"})
	} else if !ticket.ValidStatus(ticket.Status(status)) {
		errs = append(errs, FieldError{Field: "status", Message: "status must be one of TODO, IN_PROGRESS, IN_REVIEW, TESTING, DONE"})
	}

	return errs
}
