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

// TicketsHandler exposes ticket lifecycle endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// CreateTicket POST /projects/:projectID/tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	principal, project, err := requireScope(c)
	if err != nil {
		return err
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Title == "" {
		return apperrors.NewValidationError("title required", nil)
	}

	ticket, err := h.service.CreateTicket(c.UserContext(), principal.User.ID, service.TicketCreateInput{
		ProjectID:   project.ID,
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
		AssigneeID:  req.AssigneeID,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewTicketResponse(ticket, project.KeyPrefix)})
}

// ListTickets GET /projects/:projectID/tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	_, project, err := requireScope(c)
	if err != nil {
		return err
	}
	tickets, err := h.service.ListTickets(c.UserContext(), project.ID, parseTicketFilter(c))
	if err != nil {
		return err
	}
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, dto.NewTicketResponse(&tickets[i], project.KeyPrefix))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetTicket GET /projects/:projectID/tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	_, project, err := requireScope(c)
	if err != nil {
		return err
	}
	ticket, err := h.getScopedTicket(c, project)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket, project.KeyPrefix)})
}

// GetTicketByKey GET /projects/:projectID/tickets/key/:key resolves a
// human-facing key such as "PAY-42".
func (h *TicketsHandler) GetTicketByKey(c *fiber.Ctx) error {
	_, project, err := requireScope(c)
	if err != nil {
		return err
	}
	ticket, err := h.service.GetTicketByKey(c.UserContext(), c.Params("key"))
	if err != nil {
		return err
	}
	if ticket.ProjectID != project.ID {
		return apperrors.NewNotFound("ticket", map[string]any{"key": c.Params("key")})
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket, project.KeyPrefix)})
}

// UpdateTicket PATCH /projects/:projectID/tickets/:id.
func (h *TicketsHandler) UpdateTicket(c *fiber.Ctx) error {
	principal, project, err := requireScope(c)
	if err != nil {
		return err
	}
	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if _, err := h.getScopedTicket(c, project); err != nil {
		return err
	}
	ticket, err := h.service.UpdateTicket(c.UserContext(), principal.User.ID, c.Params("id"), req.Title, req.Description)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket, project.KeyPrefix)})
}

// MoveTicket POST /projects/:projectID/tickets/:id/move.
func (h *TicketsHandler) MoveTicket(c *fiber.Ctx) error {
	principal, project, err := requireScope(c)
	if err != nil {
		return err
	}
	var req dto.MoveTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.ToColumnID == "" {
		return apperrors.NewValidationError("to_column_id required", nil)
	}
	if _, err := h.getScopedTicket(c, project); err != nil {
		return err
	}
	ticket, err := h.service.MoveTicket(c.UserContext(), principal.User.ID, c.Params("id"), req.ToColumnID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket, project.KeyPrefix)})
}

// AssignTicket POST /projects/:projectID/tickets/:id/assign.
func (h *TicketsHandler) AssignTicket(c *fiber.Ctx) error {
	principal, project, err := requireScope(c)
	if err != nil {
		return err
	}
	var req dto.AssignTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if _, err := h.getScopedTicket(c, project); err != nil {
		return err
	}
	ticket, err := h.service.AssignTicket(c.UserContext(), principal.User.ID, c.Params("id"), req.AssigneeID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket, project.KeyPrefix)})
}

// CloseTicket POST /projects/:projectID/tickets/:id/close.
func (h *TicketsHandler) CloseTicket(c *fiber.Ctx) error {
	principal, project, err := requireScope(c)
	if err != nil {
		return err
	}
	if _, err := h.getScopedTicket(c, project); err != nil {
		return err
	}
	ticket, err := h.service.CloseTicket(c.UserContext(), principal.User.ID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket, project.KeyPrefix)})
}

// ReopenTicket POST /projects/:projectID/tickets/:id/reopen.
func (h *TicketsHandler) ReopenTicket(c *fiber.Ctx) error {
	principal, project, err := requireScope(c)
	if err != nil {
		return err
	}
	var req dto.ReopenTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.ToColumnID == "" {
		return apperrors.NewValidationError("to_column_id required", nil)
	}
	if _, err := h.getScopedTicket(c, project); err != nil {
		return err
	}
	ticket, err := h.service.ReopenTicket(c.UserContext(), principal.User.ID, c.Params("id"), req.ToColumnID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket, project.KeyPrefix)})
}

// AddTag POST /projects/:projectID/tickets/:id/tags.
func (h *TicketsHandler) AddTag(c *fiber.Ctx) error {
	principal, project, err := requireScope(c)
	if err != nil {
		return err
	}
	var req dto.TagRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if _, err := h.getScopedTicket(c, project); err != nil {
		return err
	}
	ticket, err := h.service.AddTag(c.UserContext(), principal.User.ID, c.Params("id"), req.Tag)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket, project.KeyPrefix)})
}

// RemoveTag DELETE /projects/:projectID/tickets/:id/tags/:tag.
func (h *TicketsHandler) RemoveTag(c *fiber.Ctx) error {
	principal, project, err := requireScope(c)
	if err != nil {
		return err
	}
	if _, err := h.getScopedTicket(c, project); err != nil {
		return err
	}
	ticket, err := h.service.RemoveTag(c.UserContext(), principal.User.ID, c.Params("id"), c.Params("tag"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket, project.KeyPrefix)})
}

// ListActivity GET /projects/:projectID/tickets/:id/activity.
func (h *TicketsHandler) ListActivity(c *fiber.Ctx) error {
	_, project, err := requireScope(c)
	if err != nil {
		return err
	}
	if _, err := h.getScopedTicket(c, project); err != nil {
		return err
	}
	activity, err := h.service.ListActivity(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.ActivityResponse, 0, len(activity))
	for _, event := range activity {
		items = append(items, dto.NewActivityResponse(event))
	}
	return c.JSON(fiber.Map{"data": items})
}

// ListTags GET /projects/:projectID/tags.
func (h *TicketsHandler) ListTags(c *fiber.Ctx) error {
	_, project, err := requireScope(c)
	if err != nil {
		return err
	}
	tags, err := h.service.ListProjectTags(c.UserContext(), project.ID)
	if err != nil {
		return err
	}
	items := make([]dto.TagResponse, 0, len(tags))
	for _, tag := range tags {
		items = append(items, dto.TagResponse{ID: tag.ID, Value: tag.Value})
	}
	return c.JSON(fiber.Map{"data": items})
}

// getScopedTicket loads the :id ticket and rejects cross-project access.
func (h *TicketsHandler) getScopedTicket(c *fiber.Ctx, project *domain.Project) (*domain.Ticket, error) {
	ticket, err := h.service.GetTicket(c.UserContext(), c.Params("id"))
	if err != nil {
		return nil, err
	}
	if ticket.ProjectID != project.ID {
		return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticket.ID})
	}
	return ticket, nil
}

func requireScope(c *fiber.Ctx) (*auth.Principal, *domain.Project, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return nil, nil, apperrors.NewUnauthorized("authentication required")
	}
	project, ok := auth.ProjectFromContext(c)
	if !ok {
		return nil, nil, apperrors.NewForbidden("project scope required")
	}
	return principal, project, nil
}

// parseTicketFilter builds a domain filter from query parameters. The
// literal value "none" for assignee matches only unassigned tickets.
func parseTicketFilter(c *fiber.Ctx) domain.TicketFilter {
	var filter domain.TicketFilter
	if column := c.Query("column"); column != "" {
		filter.StatusColumnID = &column
	}
	if assignee := c.Query("assignee"); assignee != "" {
		if assignee == "none" {
			filter.Assignee = &domain.AssigneeFilter{}
		} else {
			filter.Assignee = &domain.AssigneeFilter{ID: &assignee}
		}
	}
	if tag := c.Query("tag"); tag != "" {
		filter.Tag = &tag
	}
	filter.Search = c.Query("search")
	return filter
}
