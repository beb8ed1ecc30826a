package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/kanban-service/internal/domain"
)

// ErrDuplicateTicketNumber reports an insert that lost the per-project
// number allocation race. It is the only storage failure the create flow
// retries; everything else propagates as-is.
var ErrDuplicateTicketNumber = errors.New("duplicate ticket number for project")

const (
	uniqueViolationCode    = "23505"
	ticketNumberConstraint = "tickets_project_id_number_key"
)

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Insert(ctx context.Context, ticket *domain.Ticket) error
	Update(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	GetByNumber(ctx context.Context, projectID string, number int) (*domain.Ticket, error)
	ListByProject(ctx context.Context, projectID string, limit, offset int) ([]domain.Ticket, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

func (r *ticketRepository) Insert(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (project_id, number, title, description, status_column_id,
                             assignee_id, reporter_id, tags, created_at, updated_at, closed_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id`
	err := r.pool.QueryRow(ctx, query,
		ticket.ProjectID,
		ticket.Number,
		ticket.Title,
		ticket.Description,
		ticket.StatusColumnID,
		ticket.AssigneeID,
		ticket.ReporterID,
		ticket.Tags,
		ticket.CreatedAt,
		ticket.UpdatedAt,
		ticket.ClosedAt,
	).Scan(&ticket.ID)
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode && pgErr.ConstraintName == ticketNumberConstraint {
		return ErrDuplicateTicketNumber
	}
	return err
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        UPDATE tickets SET title=$1, description=$2, status_column_id=$3, assignee_id=$4,
            tags=$5, updated_at=$6, closed_at=$7
        WHERE id=$8`
	cmd, err := r.pool.Exec(ctx, query,
		ticket.Title,
		ticket.Description,
		ticket.StatusColumnID,
		ticket.AssigneeID,
		ticket.Tags,
		ticket.UpdatedAt,
		ticket.ClosedAt,
		ticket.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	const query = ticketSelect + ` WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *ticketRepository) GetByNumber(ctx context.Context, projectID string, number int) (*domain.Ticket, error) {
	const query = ticketSelect + ` WHERE project_id=$1 AND number=$2`
	return r.fetchSingle(ctx, query, projectID, number)
}

const ticketSelect = `
        SELECT id, project_id, number, title, description, status_column_id,
               assignee_id, reporter_id, tags, created_at, updated_at, closed_at
        FROM tickets`

func (r *ticketRepository) fetchSingle(ctx context.Context, query string, args ...any) (*domain.Ticket, error) {
	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&ticket.ID,
		&ticket.ProjectID,
		&ticket.Number,
		&ticket.Title,
		&ticket.Description,
		&ticket.StatusColumnID,
		&ticket.AssigneeID,
		&ticket.ReporterID,
		&ticket.Tags,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
		&ticket.ClosedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) ListByProject(ctx context.Context, projectID string, limit, offset int) ([]domain.Ticket, error) {
	if limit <= 0 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}
	const query = ticketSelect + `
        WHERE project_id=$1
        ORDER BY updated_at DESC, number DESC
        LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, projectID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.ProjectID,
			&ticket.Number,
			&ticket.Title,
			&ticket.Description,
			&ticket.StatusColumnID,
			&ticket.AssigneeID,
			&ticket.ReporterID,
			&ticket.Tags,
			&ticket.CreatedAt,
			&ticket.UpdatedAt,
			&ticket.ClosedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
