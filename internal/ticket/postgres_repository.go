package ticket

import (
	"context"
	"errors"
	"fmt"
	"strings"

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

const ticketColumns = `id, team_id, member_id, sprint_id, title, type, status, priority,
	story_points, estimated_hours, actual_hours, created_at, resolved_at`

func scanTicket(row pgx.Row, t *Ticket) error {
	return row.Scan(&t.ID, &t.TeamID, &t.MemberID, &t.SprintID, &t.Title, &t.Type,
		&t.Status, &t.Priority, &t.StoryPoints, &t.EstimatedHours, &t.ActualHours,
		&t.CreatedAt, &t.ResolvedAt)
}

// Create inserts a new ticket record. A ticket created directly in DONE
// status gets its resolution timestamp set by the insert.
func (r *PostgresRepository) Create(ctx context.Context, t *Ticket) error {
	query := `
		INSERT INTO tickets (team_id, member_id, sprint_id, title, type, status, priority,
			story_points, estimated_hours, actual_hours, resolved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			CASE WHEN $6 = 'DONE' THEN now() END)
		RETURNING id, created_at, resolved_at`

	err := r.pool.QueryRow(ctx, query, t.TeamID, t.MemberID, t.SprintID, t.Title, t.Type,
		t.Status, t.Priority, t.StoryPoints, t.EstimatedHours, t.ActualHours).
		Scan(&t.ID, &t.CreatedAt, &t.ResolvedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrReferenceNotFound
		}
		return fmt.Errorf("inserting ticket: %w", err)
	}

	return nil
}

// GetByID retrieves a single ticket by its UUID.
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id = $1`

	var t Ticket
	if err := scanTicket(r.pool.QueryRow(ctx, query, id), &t); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTicketNotFound
		}
		return nil, fmt.Errorf("querying ticket: %w", err)
	}

	return &t, nil
}

// List retrieves tickets matching the filter, newest first.
func (r *PostgresRepository) List(ctx context.Context, filter ListFilter) ([]Ticket, error) {
	var (
		conditions []string
		args       []any
	)

	if filter.TeamID != nil {
		args = append(args, *filter.TeamID)
		conditions = append(conditions, fmt.Sprintf("team_id = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Type != nil {
		args = append(args, *filter.Type)
		conditions = append(conditions, fmt.Sprintf("type = $%d", len(args)))
	}

	query := `SELECT ` + ticketColumns + ` FROM tickets`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tickets: %w", err)
	}
	defer rows.Close()

	var tickets []Ticket
	for rows.Next() {
		var t Ticket
		if err := scanTicket(rows, &t); err != nil {
			return nil, fmt.Errorf("scanning ticket row: %w", err)
		}
		tickets = append(tickets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ticket rows: %w", err)
	}

	if tickets == nil {
		tickets = []Ticket{}
	}

	return tickets, nil
}

// UpdateStatus transitions a ticket to the given status. The resolution
// timestamp is set when the ticket enters DONE and cleared when it leaves.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*Ticket, error) {
	query := `
		UPDATE tickets
		SET status = $2,
			resolved_at = CASE WHEN $2 = 'DONE' THEN COALESCE(resolved_at, now()) END
		WHERE id = $1
		RETURNING ` + ticketColumns

	var t Ticket
	if err := scanTicket(r.pool.QueryRow(ctx, query, id, status), &t); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTicketNotFound
		}
		return nil, fmt.Errorf("updating ticket status: %w", err)
	}

	return &t, nil
}

// Delete removes a ticket by its UUID.
func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM tickets WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting ticket: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrTicketNotFound
	}

	return nil
}
