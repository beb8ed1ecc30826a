package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/kanban-service/internal/domain"
	"github.com/spec-kit/kanban-service/internal/repository"
	apperrors "github.com/spec-kit/kanban-service/pkg/util/errorutil"
)

const (
	projectKey    = "scope_project"
	membershipKey = "scope_membership"
)

// ProjectScope loads the :projectID route parameter, verifies the caller
// is a member of the owning organization, and stashes both in locals for
// downstream handlers.
func ProjectScope(projects repository.ProjectRepository, orgs repository.OrganizationRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.User == nil {
			return apperrors.NewUnauthorized("authentication required")
		}
		project, err := projects.GetByID(c.UserContext(), c.Params("projectID"))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewNotFound("project", map[string]any{"project_id": c.Params("projectID")})
			}
			return apperrors.MapError(err)
		}
		membership, err := orgs.GetMembership(c.UserContext(), project.OrganizationID, principal.User.ID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewForbidden("not a member of this organization")
			}
			return apperrors.MapError(err)
		}
		c.Locals(projectKey, project)
		c.Locals(membershipKey, membership)
		return c.Next()
	}
}

// RequireWriter rejects callers whose membership role cannot mutate
// tickets.
func RequireWriter() fiber.Handler {
	return func(c *fiber.Ctx) error {
		membership, ok := MembershipFromContext(c)
		if !ok || !membership.CanWrite() {
			return apperrors.NewForbidden("write access required")
		}
		return c.Next()
	}
}

// ProjectFromContext retrieves the scoped project.
func ProjectFromContext(c *fiber.Ctx) (*domain.Project, bool) {
	project, ok := c.Locals(projectKey).(*domain.Project)
	return project, ok
}

// MembershipFromContext retrieves the caller's membership in the scoped
// project's organization.
func MembershipFromContext(c *fiber.Ctx) (*domain.Membership, bool) {
	membership, ok := c.Locals(membershipKey).(*domain.Membership)
	return membership, ok
}
