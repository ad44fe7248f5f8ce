package ticket

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrTicketNotFound is returned when a ticket record is not found.
var ErrTicketNotFound = errors.New("ticket not found")

// ErrReferenceNotFound is returned when a referenced team, member, or sprint
// does not exist.
var ErrReferenceNotFound = errors.New("referenced team, member, or sprint not found")

// ListFilter narrows List results. Zero-value fields are ignored.
type ListFilter struct {
	TeamID *uuid.UUID
	Status *Status
	Type   *Type
}

// Repository provides operations on the tickets table.
type Repository interface {
	Create(ctx context.Context, ticket *Ticket) error
	GetByID(ctx context.Context, id uuid.UUID) (*Ticket, error)
	List(ctx context.Context, filter ListFilter) ([]Ticket, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*Ticket, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
