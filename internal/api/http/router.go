package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/kanban-service/internal/api/http/handlers"
	"github.com/spec-kit/kanban-service/internal/auth"
	"github.com/spec-kit/kanban-service/internal/repository"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Projects       *handlers.ProjectsHandler
	Boards         *handlers.BoardsHandler
	Tickets        *handlers.TicketsHandler
	AuthMiddleware *auth.AuthMiddleware
	ProjectRepo    repository.ProjectRepository
	OrgRepo        repository.OrganizationRepository
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)

	authed := app.Group("", cfg.AuthMiddleware.Handle)

	orgs := authed.Group("/organizations")
	orgs.Post("", cfg.Projects.CreateOrganization)
	orgs.Post("/:orgID/members", cfg.Projects.AddMember)
	orgs.Post("/:orgID/projects", cfg.Projects.CreateProject)
	orgs.Get("/:orgID/projects", cfg.Projects.ListProjects)

	// Everything below is scoped to one project and requires membership.
	project := authed.Group("/projects/:projectID", auth.ProjectScope(cfg.ProjectRepo, cfg.OrgRepo))
	project.Get("", cfg.Projects.GetProject)
	project.Get("/columns", cfg.Boards.ListColumns)
	project.Post("/columns", auth.RequireWriter(), cfg.Boards.CreateColumn)
	project.Get("/tags", cfg.Tickets.ListTags)

	tickets := project.Group("/tickets")
	tickets.Get("", cfg.Tickets.ListTickets)
	tickets.Post("", auth.RequireWriter(), cfg.Tickets.CreateTicket)
	tickets.Get("/key/:key", cfg.Tickets.GetTicketByKey)
	tickets.Get("/:id", cfg.Tickets.GetTicket)
	tickets.Patch("/:id", auth.RequireWriter(), cfg.Tickets.UpdateTicket)
	tickets.Post("/:id/move", auth.RequireWriter(), cfg.Tickets.MoveTicket)
	tickets.Post("/:id/assign", auth.RequireWriter(), cfg.Tickets.AssignTicket)
	tickets.Post("/:id/close", auth.RequireWriter(), cfg.Tickets.CloseTicket)
	tickets.Post("/:id/reopen", auth.RequireWriter(), cfg.Tickets.ReopenTicket)
	tickets.Post("/:id/tags", auth.RequireWriter(), cfg.Tickets.AddTag)
	tickets.Delete("/:id/tags/:tag", auth.RequireWriter(), cfg.Tickets.RemoveTag)
	tickets.Get("/:id/activity", cfg.Tickets.ListActivity)
}
