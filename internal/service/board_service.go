package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/kanban-service/internal/domain"
	"github.com/spec-kit/kanban-service/internal/persistence"
	"github.com/spec-kit/kanban-service/internal/repository"
)

const columnCacheKeyPrefix = "kanban:columns:"

// BoardService serves project board reads with a cache-aside layer over
// the column repository. Cache misses and failures fall through to
// Postgres; the cache is invalidated on column writes.
type BoardService struct {
	columns repository.ColumnRepository
	cache   *persistence.Redis
	ttl     time.Duration
	logger  *zap.Logger
}

// NewBoardService constructs the service.
func NewBoardService(columns repository.ColumnRepository, cache *persistence.Redis, ttl time.Duration, logger *zap.Logger) *BoardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BoardService{columns: columns, cache: cache, ttl: ttl, logger: logger}
}

// Columns returns the project's columns ordered by position.
func (s *BoardService) Columns(ctx context.Context, projectID string) ([]domain.WorkflowColumn, error) {
	if cached, ok := s.cachedColumns(ctx, projectID); ok {
		return cached, nil
	}

	columns, err := s.columns.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	sorted := domain.SortColumns(columns)
	s.storeColumns(ctx, projectID, sorted)
	return sorted, nil
}

// CreateColumn validates and persists a new column, then invalidates the
// project's cache entry.
func (s *BoardService) CreateColumn(ctx context.Context, projectID, name string, position int) (*domain.WorkflowColumn, error) {
	column := &domain.WorkflowColumn{
		ProjectID: projectID,
		Name:      name,
		Position:  position,
	}
	if err := domain.ValidateColumn(column); err != nil {
		return nil, err
	}
	if err := s.columns.Create(ctx, column); err != nil {
		return nil, err
	}
	s.invalidate(ctx, projectID)
	return column, nil
}

func (s *BoardService) cachedColumns(ctx context.Context, projectID string) ([]domain.WorkflowColumn, bool) {
	if s.cache == nil || s.cache.Client == nil || s.ttl <= 0 {
		return nil, false
	}
	raw, err := s.cache.Client.Get(ctx, columnCacheKeyPrefix+projectID).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("column cache read failed", zap.String("project_id", projectID), zap.Error(err))
		}
		return nil, false
	}
	var columns []domain.WorkflowColumn
	if err := json.Unmarshal(raw, &columns); err != nil {
		s.logger.Warn("column cache entry corrupt", zap.String("project_id", projectID), zap.Error(err))
		s.invalidate(ctx, projectID)
		return nil, false
	}
	return columns, true
}

func (s *BoardService) storeColumns(ctx context.Context, projectID string, columns []domain.WorkflowColumn) {
	if s.cache == nil || s.cache.Client == nil || s.ttl <= 0 {
		return
	}
	raw, err := json.Marshal(columns)
	if err != nil {
		return
	}
	if err := s.cache.Client.Set(ctx, columnCacheKeyPrefix+projectID, raw, s.ttl).Err(); err != nil {
		s.logger.Warn("column cache write failed", zap.String("project_id", projectID), zap.Error(err))
	}
}

func (s *BoardService) invalidate(ctx context.Context, projectID string) {
	if s.cache == nil || s.cache.Client == nil {
		return
	}
	if err := s.cache.Client.Del(ctx, columnCacheKeyPrefix+projectID).Err(); err != nil {
		s.logger.Warn("column cache invalidation failed", zap.String("project_id", projectID), zap.Error(err))
	}
}
