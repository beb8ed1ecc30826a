package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/kanban-service/internal/domain"
)

// TagRepository maintains the project-scoped tag catalog. The catalog only
// grows through Ensure; removing a tag from every ticket never deletes the
// catalog entry.
type TagRepository interface {
	Ensure(ctx context.Context, projectID, value string) error
	ListByProject(ctx context.Context, projectID string) ([]domain.Tag, error)
}

type tagRepository struct {
	pool *pgxpool.Pool
}

// NewTagRepository instantiates repository.
func NewTagRepository(pool *pgxpool.Pool) TagRepository {
	return &tagRepository{pool: pool}
}

func (r *tagRepository) Ensure(ctx context.Context, projectID, value string) error {
	const query = `
        INSERT INTO tags (project_id, value)
        VALUES ($1,$2)
        ON CONFLICT (project_id, value) DO NOTHING`
	_, err := r.pool.Exec(ctx, query, projectID, domain.NormalizeTag(value))
	return err
}

func (r *tagRepository) ListByProject(ctx context.Context, projectID string) ([]domain.Tag, error) {
	const query = `
        SELECT id, project_id, value, created_at
        FROM tags WHERE project_id=$1 ORDER BY value ASC`
	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Tag
	for rows.Next() {
		var tag domain.Tag
		if err := rows.Scan(&tag.ID, &tag.ProjectID, &tag.Value, &tag.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, tag)
	}
	return result, rows.Err()
}
