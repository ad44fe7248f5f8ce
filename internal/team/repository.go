package team

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrTeamNotFound is returned when a team record is not found.
var ErrTeamNotFound = errors.New("team not found")

// ErrDuplicateTeamName is returned when a team with the same name already exists,
// compared case-insensitively.
var ErrDuplicateTeamName = errors.New("team name already exists")

// ErrTeamInUse is returned when attempting to delete a team that still has
// members, sprints, or tickets referencing it.
var ErrTeamInUse = errors.New("team has members, sprints, or tickets")

// ErrMemberNotFound is returned when a member record is not found.
var ErrMemberNotFound = errors.New("member not found")

// ErrDuplicateEmail is returned when a member with the same email already exists.
var ErrDuplicateEmail = errors.New("member email already exists")

// Repository provides operations on the teams and members tables.
type Repository interface {
	Create(ctx context.Context, team *Team) error
	GetByID(ctx context.Context, id uuid.UUID) (*Team, error)
	GetByName(ctx context.Context, name string) (*Team, error)
	List(ctx context.Context) ([]Team, error)
	Delete(ctx context.Context, id uuid.UUID) error

	CreateMember(ctx context.Context, member *Member) error
	ListMembers(ctx context.Context, teamID uuid.UUID) ([]Member, error)
}
