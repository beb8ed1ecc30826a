package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/kanban-service/internal/domain"
)

// ColumnRepository encapsulates workflow column persistence.
type ColumnRepository interface {
	Create(ctx context.Context, column *domain.WorkflowColumn) error
	GetByID(ctx context.Context, id string) (*domain.WorkflowColumn, error)
	ListByProject(ctx context.Context, projectID string) ([]domain.WorkflowColumn, error)
}

type columnRepository struct {
	pool *pgxpool.Pool
}

// NewColumnRepository instantiates repository.
func NewColumnRepository(pool *pgxpool.Pool) ColumnRepository {
	return &columnRepository{pool: pool}
}

func (r *columnRepository) Create(ctx context.Context, column *domain.WorkflowColumn) error {
	const query = `
        INSERT INTO workflow_columns (project_id, name, position)
        VALUES ($1,$2,$3)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		column.ProjectID,
		column.Name,
		column.Position,
	).Scan(&column.ID, &column.CreatedAt, &column.UpdatedAt)
}

func (r *columnRepository) GetByID(ctx context.Context, id string) (*domain.WorkflowColumn, error) {
	const query = `
        SELECT id, project_id, name, position, created_at, updated_at
        FROM workflow_columns WHERE id=$1`
	var column domain.WorkflowColumn
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&column.ID,
		&column.ProjectID,
		&column.Name,
		&column.Position,
		&column.CreatedAt,
		&column.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &column, nil
}

func (r *columnRepository) ListByProject(ctx context.Context, projectID string) ([]domain.WorkflowColumn, error) {
	const query = `
        SELECT id, project_id, name, position, created_at, updated_at
        FROM workflow_columns WHERE project_id=$1 ORDER BY position ASC`
	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.WorkflowColumn
	for rows.Next() {
		var column domain.WorkflowColumn
		if err := rows.Scan(
			&column.ID,
			&column.ProjectID,
			&column.Name,
			&column.Position,
			&column.CreatedAt,
			&column.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, column)
	}
	return result, rows.Err()
}
