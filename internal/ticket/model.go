package ticket

import (
	"time"

	"github.com/google/uuid"
)

// Type classifies what kind of work a ticket represents.
type Type string

// Ticket types.
const (
	TypeFeature Type = "FEATURE"
	TypeBug     Type = "BUG"
	TypeTask    Type = "TASK"
	TypeEpic    Type = "EPIC"
)

// Status is the workflow state of a ticket.
type Status string

// Ticket statuses.
const (
	StatusTodo       Status = "TODO"
	StatusInProgress Status = "IN_PROGRESS"
	StatusInReview   Status = "IN_REVIEW"
	StatusTesting    Status = "TESTING"
	StatusDone       Status = "DONE"
)

// Priority is the urgency of a ticket.
type Priority string

// Ticket priorities.
const (
	PriorityLow      Priority = "LOW"
	PriorityMedium   Priority = "MEDIUM"
	PriorityHigh     Priority = "HIGH"
	PriorityCritical Priority = "CRITICAL"
)

// ValidType reports whether t is a known ticket type.
func ValidType(t Type) bool {
	switch t {
	case TypeFeature, TypeBug, TypeTask, TypeEpic:
		return true
	}
	return false
}

// ValidStatus reports whether s is a known ticket status.
func ValidStatus(s Status) bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusInReview, StatusTesting, StatusDone:
		return true
	}
	return false
}

// ValidPriority reports whether p is a known ticket priority.
func ValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Ticket represents a row in the tickets table.
// ResolvedAt is non-nil exactly when Status is DONE; the repository's
// status transition maintains that invariant.
type Ticket struct {
	ID             uuid.UUID
	TeamID         uuid.UUID
	MemberID       *uuid.UUID
	SprintID       *uuid.UUID
	Title          string
	Type           Type
	Status         Status
	Priority       Priority
	StoryPoints    *int
	EstimatedHours *float64
	ActualHours    *float64
	CreatedAt      time.Time
	ResolvedAt     *time.Time
}
