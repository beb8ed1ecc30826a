package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/kanban-service/internal/domain"
	"github.com/spec-kit/kanban-service/internal/repository"
	apperrors "github.com/spec-kit/kanban-service/pkg/util/errorutil"
)

// defaultColumns seeds a new project's board. The last entry is the
// terminal column driving auto-close on move.
var defaultColumns = []string{"To Do", "In Progress", domain.TerminalColumnName}

// ProjectService manages organizations, memberships and projects.
type ProjectService struct {
	organizations repository.OrganizationRepository
	projects      repository.ProjectRepository
	columns       repository.ColumnRepository
}

// NewProjectService constructs the service.
func NewProjectService(orgs repository.OrganizationRepository, projects repository.ProjectRepository, columns repository.ColumnRepository) *ProjectService {
	return &ProjectService{organizations: orgs, projects: projects, columns: columns}
}

// CreateOrganization creates an organization with the creator as admin.
func (s *ProjectService) CreateOrganization(ctx context.Context, creatorID, name string) (*domain.Organization, error) {
	org := &domain.Organization{Name: strings.TrimSpace(name)}
	if err := domain.ValidateOrganization(org); err != nil {
		return nil, err
	}
	if err := s.organizations.Create(ctx, org); err != nil {
		return nil, err
	}
	membership := &domain.Membership{
		OrganizationID: org.ID,
		UserID:         creatorID,
		Role:           domain.MemberRoleAdmin,
	}
	if err := s.organizations.AddMember(ctx, membership); err != nil {
		return nil, err
	}
	return org, nil
}

// AddMember grants a user a role in the organization.
func (s *ProjectService) AddMember(ctx context.Context, organizationID, userID string, role domain.MemberRole) (*domain.Membership, error) {
	membership := &domain.Membership{
		OrganizationID: organizationID,
		UserID:         userID,
		Role:           role,
	}
	if err := domain.ValidateMembership(membership); err != nil {
		return nil, err
	}
	if err := s.organizations.AddMember(ctx, membership); err != nil {
		return nil, err
	}
	return membership, nil
}

// CreateProject creates a project and seeds its default board columns.
func (s *ProjectService) CreateProject(ctx context.Context, organizationID, name, keyPrefix string) (*domain.Project, error) {
	project := &domain.Project{
		OrganizationID: organizationID,
		Name:           strings.TrimSpace(name),
		KeyPrefix:      strings.ToUpper(strings.TrimSpace(keyPrefix)),
	}
	if err := domain.ValidateProject(project); err != nil {
		return nil, err
	}
	if _, err := s.projects.GetByKeyPrefix(ctx, project.KeyPrefix); err == nil {
		return nil, apperrors.NewConflict("key prefix already in use", map[string]any{"key_prefix": project.KeyPrefix})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}
	for position, columnName := range defaultColumns {
		column := &domain.WorkflowColumn{
			ProjectID: project.ID,
			Name:      columnName,
			Position:  position,
		}
		if err := s.columns.Create(ctx, column); err != nil {
			return nil, err
		}
	}
	return project, nil
}

// GetProject fetches a project by id.
func (s *ProjectService) GetProject(ctx context.Context, projectID string) (*domain.Project, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("project", map[string]any{"project_id": projectID})
		}
		return nil, err
	}
	return project, nil
}

// ListProjects returns the organization's projects.
func (s *ProjectService) ListProjects(ctx context.Context, organizationID string) ([]domain.Project, error) {
	return s.projects.ListByOrganization(ctx, organizationID)
}

// Membership resolves the caller's membership in an organization.
func (s *ProjectService) Membership(ctx context.Context, organizationID, userID string) (*domain.Membership, error) {
	membership, err := s.organizations.GetMembership(ctx, organizationID, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewForbidden("not a member of this organization")
		}
		return nil, err
	}
	return membership, nil
}
