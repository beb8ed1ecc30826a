package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/kanban-service/internal/api/dto"
	"github.com/spec-kit/kanban-service/internal/auth"
	"github.com/spec-kit/kanban-service/internal/service"
	apperrors "github.com/spec-kit/kanban-service/pkg/util/errorutil"
)

// BoardsHandler exposes workflow column endpoints.
type BoardsHandler struct {
	service *service.BoardService
}

// NewBoardsHandler constructs handler.
func NewBoardsHandler(boardService *service.BoardService) *BoardsHandler {
	return &BoardsHandler{service: boardService}
}

// ListColumns GET /projects/:projectID/columns. Columns come back in
// board order.
func (h *BoardsHandler) ListColumns(c *fiber.Ctx) error {
	project, ok := auth.ProjectFromContext(c)
	if !ok {
		return apperrors.NewForbidden("project scope required")
	}
	columns, err := h.service.Columns(c.UserContext(), project.ID)
	if err != nil {
		return err
	}
	items := make([]dto.ColumnResponse, 0, len(columns))
	for _, column := range columns {
		items = append(items, dto.NewColumnResponse(column))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateColumn POST /projects/:projectID/columns.
func (h *BoardsHandler) CreateColumn(c *fiber.Ctx) error {
	project, ok := auth.ProjectFromContext(c)
	if !ok {
		return apperrors.NewForbidden("project scope required")
	}
	var req dto.CreateColumnRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" {
		return apperrors.NewValidationError("name required", nil)
	}
	column, err := h.service.CreateColumn(c.UserContext(), project.ID, req.Name, req.Position)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewColumnResponse(*column)})
}
