package metrics

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sprintlens/sprintlens/internal/team"
)

// PostgresRepository implements Repository using pgxpool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new Repository backed by the given connection pool.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &PostgresRepository{pool: pool}
}

// FindTeamByName retrieves a team by exact name, compared case-insensitively.
func (r *PostgresRepository) FindTeamByName(ctx context.Context, name string) (*team.Team, error) {
	query := `
		SELECT id, name, description, created_at, updated_at
		FROM teams
		WHERE LOWER(name) = LOWER($1)`

	var t team.Team
	err := r.pool.QueryRow(ctx, query, name).Scan(&t.ID, &t.Name, &t.Description, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, team.ErrTeamNotFound
		}
		return nil, fmt.Errorf("querying team by name: %w", err)
	}

	return &t, nil
}

// RecentSprints retrieves the most recently ended sprints with the story
// points completed in each (sum of DONE ticket points).
func (r *PostgresRepository) RecentSprints(ctx context.Context, teamID *uuid.UUID, limit int) ([]SprintVelocity, error) {
	query := `
		SELECT s.id, s.team_id, t.name, s.name, s.end_date,
			COALESCE(SUM(tk.story_points) FILTER (WHERE tk.status = 'DONE'), 0)
		FROM sprints s
		JOIN teams t ON t.id = s.team_id
		LEFT JOIN tickets tk ON tk.sprint_id = s.id
		WHERE ($1::uuid IS NULL OR s.team_id = $1)
		GROUP BY s.id, s.team_id, t.name, s.name, s.end_date
		ORDER BY s.end_date DESC
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, teamID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent sprints: %w", err)
	}
	defer rows.Close()

	var sprints []SprintVelocity
	for rows.Next() {
		var s SprintVelocity
		err := rows.Scan(&s.SprintID, &s.TeamID, &s.TeamName, &s.Name, &s.EndDate, &s.CompletedPoints)
		if err != nil {
			return nil, fmt.Errorf("scanning sprint velocity row: %w", err)
		}
		sprints = append(sprints, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sprint velocity rows: %w", err)
	}

	return sprints, nil
}

// CountTickets counts tickets matching the filter.
func (r *PostgresRepository) CountTickets(ctx context.Context, filter TicketFilter) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM tickets
		WHERE ($1::uuid IS NULL OR team_id = $1)
			AND ($2::text IS NULL OR type = $2)
			AND ($3::timestamptz IS NULL OR created_at >= $3)`

	var count int
	err := r.pool.QueryRow(ctx, query, filter.TeamID, filter.Type, filter.CreatedAfter).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting tickets: %w", err)
	}

	return count, nil
}

// ListDoneTickets retrieves all DONE tickets that carry a resolution
// timestamp, with the owning team's name.
func (r *PostgresRepository) ListDoneTickets(ctx context.Context, teamID *uuid.UUID) ([]DoneTicket, error) {
	query := `
		SELECT tk.id, t.name, tk.type, tk.story_points, tk.created_at, tk.resolved_at
		FROM tickets tk
		JOIN teams t ON t.id = tk.team_id
		WHERE tk.status = 'DONE'
			AND tk.resolved_at IS NOT NULL
			AND ($1::uuid IS NULL OR tk.team_id = $1)
		ORDER BY tk.resolved_at DESC`

	rows, err := r.pool.Query(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("querying done tickets: %w", err)
	}
	defer rows.Close()

	var tickets []DoneTicket
	for rows.Next() {
		var dt DoneTicket
		err := rows.Scan(&dt.ID, &dt.TeamName, &dt.Type, &dt.StoryPoints, &dt.CreatedAt, &dt.ResolvedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning done ticket row: %w", err)
		}
		tickets = append(tickets, dt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating done ticket rows: %w", err)
	}

	return tickets, nil
}

// ListTeamOverviews retrieves one aggregate row per team: ticket, done, bug,
// and member counts.
func (r *PostgresRepository) ListTeamOverviews(ctx context.Context) ([]TeamOverview, error) {
	query := `
		SELECT t.id, t.name,
			COUNT(DISTINCT tk.id),
			COUNT(DISTINCT tk.id) FILTER (WHERE tk.status = 'DONE'),
			COUNT(DISTINCT tk.id) FILTER (WHERE tk.type = 'BUG'),
			COUNT(DISTINCT m.id)
		FROM teams t
		LEFT JOIN tickets tk ON tk.team_id = t.id
		LEFT JOIN members m ON m.team_id = t.id
		GROUP BY t.id, t.name
		ORDER BY t.name ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying team overviews: %w", err)
	}
	defer rows.Close()

	var overviews []TeamOverview
	for rows.Next() {
		var o TeamOverview
		err := rows.Scan(&o.TeamID, &o.TeamName, &o.TotalTickets, &o.DoneTickets, &o.BugTickets, &o.Members)
		if err != nil {
			return nil, fmt.Errorf("scanning team overview row: %w", err)
		}
		overviews = append(overviews, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating team overview rows: %w", err)
	}

	return overviews, nil
}
