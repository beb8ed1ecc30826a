package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/kanban-service/internal/domain"
)

// ProjectRepository encapsulates project persistence.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetByKeyPrefix(ctx context.Context, prefix string) (*domain.Project, error)
	ListByOrganization(ctx context.Context, organizationID string) ([]domain.Project, error)
}

type projectRepository struct {
	pool *pgxpool.Pool
}

// NewProjectRepository instantiates repository.
func NewProjectRepository(pool *pgxpool.Pool) ProjectRepository {
	return &projectRepository{pool: pool}
}

func (r *projectRepository) Create(ctx context.Context, project *domain.Project) error {
	const query = `
        INSERT INTO projects (organization_id, name, key_prefix)
        VALUES ($1,$2,$3)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		project.OrganizationID,
		project.Name,
		project.KeyPrefix,
	).Scan(&project.ID, &project.CreatedAt, &project.UpdatedAt)
}

const projectSelect = `
        SELECT id, organization_id, name, key_prefix, created_at, updated_at
        FROM projects`

func (r *projectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return r.fetchSingle(ctx, projectSelect+` WHERE id=$1`, id)
}

func (r *projectRepository) GetByKeyPrefix(ctx context.Context, prefix string) (*domain.Project, error) {
	return r.fetchSingle(ctx, projectSelect+` WHERE key_prefix=$1`, prefix)
}

func (r *projectRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Project, error) {
	var project domain.Project
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&project.ID,
		&project.OrganizationID,
		&project.Name,
		&project.KeyPrefix,
		&project.CreatedAt,
		&project.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) ListByOrganization(ctx context.Context, organizationID string) ([]domain.Project, error) {
	const query = projectSelect + ` WHERE organization_id=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProjects(rows)
}

func scanProjects(rows pgx.Rows) ([]domain.Project, error) {
	var result []domain.Project
	for rows.Next() {
		var project domain.Project
		if err := rows.Scan(
			&project.ID,
			&project.OrganizationID,
			&project.Name,
			&project.KeyPrefix,
			&project.CreatedAt,
			&project.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, project)
	}
	return result, rows.Err()
}
