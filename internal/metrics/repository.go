package metrics

import (
	"context"

	"github.com/google/uuid"

	"github.com/sprintlens/sprintlens/internal/team"
)

// Repository provides the read-only aggregate queries over the metrics store.
// A nil teamID means no team filter.
type Repository interface {
	FindTeamByName(ctx context.Context, name string) (*team.Team, error)
	RecentSprints(ctx context.Context, teamID *uuid.UUID, limit int) ([]SprintVelocity, error)
	CountTickets(ctx context.Context, filter TicketFilter) (int, error)
	ListDoneTickets(ctx context.Context, teamID *uuid.UUID) ([]DoneTicket, error)
	ListTeamOverviews(ctx context.Context) ([]TeamOverview, error)
}
