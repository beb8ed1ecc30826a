package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/kanban-service/internal/api/dto"
	"github.com/spec-kit/kanban-service/internal/auth"
	"github.com/spec-kit/kanban-service/internal/domain"
	"github.com/spec-kit/kanban-service/internal/service"
	apperrors "github.com/spec-kit/kanban-service/pkg/util/errorutil"
)

// ProjectsHandler exposes organization and project management endpoints.
type ProjectsHandler struct {
	service *service.ProjectService
}

// NewProjectsHandler constructs handler.
func NewProjectsHandler(projectService *service.ProjectService) *ProjectsHandler {
	return &ProjectsHandler{service: projectService}
}

// CreateOrganization POST /organizations. The creator becomes an admin
// member of the new organization.
func (h *ProjectsHandler) CreateOrganization(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateOrganizationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" {
		return apperrors.NewValidationError("name required", nil)
	}
	org, err := h.service.CreateOrganization(c.UserContext(), principal.User.ID, req.Name)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewOrganizationResponse(org)})
}

// AddMember POST /organizations/:orgID/members. Only admins may add members.
func (h *ProjectsHandler) AddMember(c *fiber.Ctx) error {
	if _, err := h.requireAdmin(c); err != nil {
		return err
	}
	var req dto.AddMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.UserID == "" {
		return apperrors.NewValidationError("user_id required", nil)
	}
	if req.Role == "" {
		req.Role = domain.MemberRoleMember
	}
	membership, err := h.service.AddMember(c.UserContext(), c.Params("orgID"), req.UserID, req.Role)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewMembershipResponse(membership)})
}

// CreateProject POST /organizations/:orgID/projects.
func (h *ProjectsHandler) CreateProject(c *fiber.Ctx) error {
	if _, err := h.requireAdmin(c); err != nil {
		return err
	}
	var req dto.CreateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.KeyPrefix == "" {
		return apperrors.NewValidationError("name and key_prefix required", nil)
	}
	project, err := h.service.CreateProject(c.UserContext(), c.Params("orgID"), req.Name, req.KeyPrefix)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewProjectResponse(project)})
}

// ListProjects GET /organizations/:orgID/projects.
func (h *ProjectsHandler) ListProjects(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	if _, err := h.service.Membership(c.UserContext(), c.Params("orgID"), principal.User.ID); err != nil {
		return apperrors.NewForbidden("not a member of this organization")
	}
	projects, err := h.service.ListProjects(c.UserContext(), c.Params("orgID"))
	if err != nil {
		return err
	}
	items := make([]dto.ProjectResponse, 0, len(projects))
	for i := range projects {
		items = append(items, dto.NewProjectResponse(&projects[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetProject GET /projects/:projectID.
func (h *ProjectsHandler) GetProject(c *fiber.Ctx) error {
	project, ok := auth.ProjectFromContext(c)
	if !ok {
		return apperrors.NewForbidden("project scope required")
	}
	return c.JSON(fiber.Map{"data": dto.NewProjectResponse(project)})
}

func (h *ProjectsHandler) requireAdmin(c *fiber.Ctx) (*auth.Principal, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	membership, err := h.service.Membership(c.UserContext(), c.Params("orgID"), principal.User.ID)
	if err != nil {
		return nil, apperrors.NewForbidden("not a member of this organization")
	}
	if membership.Role != domain.MemberRoleAdmin {
		return nil, apperrors.NewForbidden("admin role required")
	}
	return principal, nil
}
