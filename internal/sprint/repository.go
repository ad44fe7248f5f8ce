package sprint

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrSprintNotFound is returned when a sprint record is not found.
var ErrSprintNotFound = errors.New("sprint not found")

// ErrTeamNotFound is returned when the referenced team does not exist.
var ErrTeamNotFound = errors.New("team not found")

// Repository provides operations on the sprints table.
type Repository interface {
	Create(ctx context.Context, sprint *Sprint) error
	GetByID(ctx context.Context, id uuid.UUID) (*Sprint, error)
	ListByTeam(ctx context.Context, teamID uuid.UUID) ([]Sprint, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
