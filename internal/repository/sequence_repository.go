package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NumberAllocator mints the next ticket number for a project. Allocations
// are atomic and strictly increasing per project; a number handed out is
// consumed whether or not the caller ever inserts a ticket with it, so
// losing the insert race burns the number and leaves a gap.
type NumberAllocator interface {
	NextNumber(ctx context.Context, projectID string) (int, error)
}

type sequenceRepository struct {
	pool *pgxpool.Pool
}

// NewNumberAllocator returns a Postgres-backed allocator. The upsert is
// serialized by row locking on the per-project sequence row, so concurrent
// callers each receive a distinct number.
func NewNumberAllocator(pool *pgxpool.Pool) NumberAllocator {
	return &sequenceRepository{pool: pool}
}

func (r *sequenceRepository) NextNumber(ctx context.Context, projectID string) (int, error) {
	const query = `
        INSERT INTO ticket_sequences (project_id, next_number)
        VALUES ($1, 1)
        ON CONFLICT (project_id)
        DO UPDATE SET next_number = ticket_sequences.next_number + 1
        RETURNING next_number`
	var number int
	if err := r.pool.QueryRow(ctx, query, projectID).Scan(&number); err != nil {
		return 0, err
	}
	return number, nil
}
