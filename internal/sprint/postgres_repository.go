package sprint

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements Repository using pgxpool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new Repository backed by the given connection pool.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &PostgresRepository{pool: pool}
}

// Create inserts a new sprint record.
func (r *PostgresRepository) Create(ctx context.Context, s *Sprint) error {
	query := `
		INSERT INTO sprints (team_id, name, start_date, end_date, velocity)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.pool.QueryRow(ctx, query, s.TeamID, s.Name, s.StartDate, s.EndDate, s.Velocity).
		Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrTeamNotFound
		}
		return fmt.Errorf("inserting sprint: %w", err)
	}

	return nil
}

// GetByID retrieves a single sprint by its UUID.
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Sprint, error) {
	query := `
		SELECT id, team_id, name, start_date, end_date, velocity, created_at
		FROM sprints
		WHERE id = $1`

	var s Sprint
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&s.ID, &s.TeamID, &s.Name, &s.StartDate, &s.EndDate, &s.Velocity, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSprintNotFound
		}
		return nil, fmt.Errorf("querying sprint: %w", err)
	}

	return &s, nil
}

// ListByTeam retrieves all sprints of a team, most recently ended first.
func (r *PostgresRepository) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]Sprint, error) {
	query := `
		SELECT id, team_id, name, start_date, end_date, velocity, created_at
		FROM sprints
		WHERE team_id = $1
		ORDER BY end_date DESC`

	rows, err := r.pool.Query(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("listing sprints: %w", err)
	}
	defer rows.Close()

	var sprints []Sprint
	for rows.Next() {
		var s Sprint
		err := rows.Scan(&s.ID, &s.TeamID, &s.Name, &s.StartDate, &s.EndDate, &s.Velocity, &s.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning sprint row: %w", err)
		}
		sprints = append(sprints, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sprint rows: %w", err)
	}

	if sprints == nil {
		sprints = []Sprint{}
	}

	return sprints, nil
}

// Delete removes a sprint by its UUID. Tickets assigned to it are detached
// by the schema (ON DELETE SET NULL), not deleted.
func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM sprints WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting sprint: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrSprintNotFound
	}

	return nil
}
