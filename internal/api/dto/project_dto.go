package dto

import (
	"time"

	"github.com/spec-kit/kanban-service/internal/domain"
)

// CreateOrganizationRequest payload.
type CreateOrganizationRequest struct {
	Name string `json:"name"`
}

// AddMemberRequest payload.
type AddMemberRequest struct {
	UserID string            `json:"user_id"`
	Role   domain.MemberRole `json:"role"`
}

// CreateProjectRequest payload.
type CreateProjectRequest struct {
	Name      string `json:"name"`
	KeyPrefix string `json:"key_prefix"`
}

// CreateColumnRequest payload.
type CreateColumnRequest struct {
	Name     string `json:"name"`
	Position int    `json:"position"`
}

// ProjectResponse response.
type ProjectResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Name           string    `json:"name"`
	KeyPrefix      string    `json:"key_prefix"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewProjectResponse maps a project.
func NewProjectResponse(project *domain.Project) ProjectResponse {
	return ProjectResponse{
		ID:             project.ID,
		OrganizationID: project.OrganizationID,
		Name:           project.Name,
		KeyPrefix:      project.KeyPrefix,
		CreatedAt:      project.CreatedAt,
		UpdatedAt:      project.UpdatedAt,
	}
}

// ColumnResponse response.
type ColumnResponse struct {
	ID        string `json:"id"`
	ProjectID string `json:"project_id"`
	Name      string `json:"name"`
	Position  int    `json:"position"`
	Terminal  bool   `json:"terminal"`
}

// NewColumnResponse maps a workflow column.
func NewColumnResponse(column domain.WorkflowColumn) ColumnResponse {
	return ColumnResponse{
		ID:        column.ID,
		ProjectID: column.ProjectID,
		Name:      column.Name,
		Position:  column.Position,
		Terminal:  column.IsTerminal(),
	}
}

// TagResponse response.
type TagResponse struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// OrganizationResponse response.
type OrganizationResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// NewOrganizationResponse maps an organization.
func NewOrganizationResponse(org *domain.Organization) OrganizationResponse {
	return OrganizationResponse{ID: org.ID, Name: org.Name, CreatedAt: org.CreatedAt}
}

// MembershipResponse response.
type MembershipResponse struct {
	OrganizationID string            `json:"organization_id"`
	UserID         string            `json:"user_id"`
	Role           domain.MemberRole `json:"role"`
}

// NewMembershipResponse maps a membership.
func NewMembershipResponse(m *domain.Membership) MembershipResponse {
	return MembershipResponse{OrganizationID: m.OrganizationID, UserID: m.UserID, Role: m.Role}
}
