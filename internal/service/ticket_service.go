package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/kanban-service/internal/domain"
	"github.com/spec-kit/kanban-service/internal/events"
	"github.com/spec-kit/kanban-service/internal/observability"
	"github.com/spec-kit/kanban-service/internal/repository"
	apperrors "github.com/spec-kit/kanban-service/pkg/util/errorutil"
)

// maxCreateAttempts bounds the allocate-then-insert retry loop. A losing
// race burns its number; five attempts is far beyond any realistic
// contention on a single project.
const maxCreateAttempts = 5

// ErrNumberExhausted reports that every create attempt lost the allocation
// race.
var ErrNumberExhausted = errors.New("failed to allocate a unique ticket number")

// TicketService coordinates ticket lifecycle commands: it loads current
// state, invokes the pure command, persists the result, and records the
// returned activity events. Event recording and dispatch are best-effort
// relative to the ticket mutation.
type TicketService struct {
	tickets    repository.TicketRepository
	columns    repository.ColumnRepository
	projects   repository.ProjectRepository
	tags       repository.TagRepository
	activity   repository.ActivityRepository
	sequences  repository.NumberAllocator
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
	now        func() time.Time
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo   repository.TicketRepository
	ColumnRepo   repository.ColumnRepository
	ProjectRepo  repository.ProjectRepository
	TagRepo      repository.TagRepository
	ActivityRepo repository.ActivityRepository
	Allocator    repository.NumberAllocator
	Dispatcher   events.Dispatcher
	Metrics      *observability.Metrics
	Logger       *zap.Logger
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	ProjectID   string
	Title       string
	Description string
	Tags        []string
	AssigneeID  *string
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TicketService{
		tickets:    deps.TicketRepo,
		columns:    deps.ColumnRepo,
		projects:   deps.ProjectRepo,
		tags:       deps.TagRepo,
		activity:   deps.ActivityRepo,
		sequences:  deps.Allocator,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     logger,
		now:        time.Now,
	}
}

// CreateTicket mints a per-project ticket number and creates the ticket.
// Allocation and insert are two separate steps, so two concurrent requests
// can both allocate before either commits; the unique constraint on
// (project_id, number) detects the loser, whose number is skipped and
// whose attempt is retried with a fresh allocation.
func (s *TicketService) CreateTicket(ctx context.Context, actorID string, input TicketCreateInput) (*domain.Ticket, error) {
	columns, err := s.columns.ListByProject(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= maxCreateAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		number, err := s.sequences.NextNumber(ctx, input.ProjectID)
		if err != nil {
			return nil, err
		}

		result, err := domain.CreateTicket(domain.CreateTicketInput{
			ProjectID:   input.ProjectID,
			Number:      number,
			Title:       input.Title,
			Description: input.Description,
			Tags:        input.Tags,
			ReporterID:  actorID,
			AssigneeID:  input.AssigneeID,
			ActorID:     actorID,
			Now:         s.now(),
		}, columns)
		if err != nil {
			s.recordCommand("create", false)
			return nil, err
		}

		ticket := result.Ticket
		err = s.tickets.Insert(ctx, &ticket)
		if errors.Is(err, repository.ErrDuplicateTicketNumber) {
			s.logger.Warn("ticket number collision, retrying",
				zap.String("project_id", input.ProjectID),
				zap.Int("number", number),
				zap.Int("attempt", attempt),
			)
			continue
		}
		if err != nil {
			return nil, err
		}

		s.ensureTags(ctx, ticket.ProjectID, ticket.Tags)
		s.recordActivity(ctx, ticket, result.Events)
		s.recordCommand("create", true)
		return &ticket, nil
	}

	return nil, ErrNumberExhausted
}

// GetTicket fetches a ticket by id.
func (s *TicketService) GetTicket(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, err
	}
	return ticket, nil
}

// GetTicketByKey resolves a human-facing key such as "PAY-42".
func (s *TicketService) GetTicketByKey(ctx context.Context, key string) (*domain.Ticket, error) {
	prefix, number, ok := domain.ParseTicketKey(key)
	if !ok {
		return nil, apperrors.NewNotFound("ticket", map[string]any{"key": key})
	}
	project, err := s.projects.GetByKeyPrefix(ctx, prefix)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"key": key})
		}
		return nil, err
	}
	ticket, err := s.tickets.GetByNumber(ctx, project.ID, number)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"key": key})
		}
		return nil, err
	}
	return ticket, nil
}

// ListTickets returns project tickets matching the merged filters, most
// recently updated first.
func (s *TicketService) ListTickets(ctx context.Context, projectID string, filters ...domain.TicketFilter) ([]domain.Ticket, error) {
	tickets, err := s.tickets.ListByProject(ctx, projectID, 0, 0)
	if err != nil {
		return nil, err
	}
	filtered := domain.FilterTickets(tickets, domain.MergeFilters(filters...))
	return domain.SortTickets(filtered), nil
}

// UpdateTicket changes title and description.
func (s *TicketService) UpdateTicket(ctx context.Context, actorID, ticketID, title, description string) (*domain.Ticket, error) {
	ticket, err := s.GetTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	result, err := domain.UpdateTicket(*ticket, domain.UpdateTicketInput{
		Title:       title,
		Description: description,
		ActorID:     actorID,
		Now:         s.now(),
	})
	return s.applyResult(ctx, "update", result, err)
}

// MoveTicket relocates a ticket to another column, auto-closing on entry
// to the terminal column and auto-reopening on leaving it.
func (s *TicketService) MoveTicket(ctx context.Context, actorID, ticketID, toColumnID string) (*domain.Ticket, error) {
	ticket, err := s.GetTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	columns, err := s.columns.ListByProject(ctx, ticket.ProjectID)
	if err != nil {
		return nil, err
	}
	result, err := domain.MoveTicket(*ticket, domain.MoveTicketInput{
		ToColumnID: toColumnID,
		ActorID:    actorID,
		Now:        s.now(),
	}, columns)
	return s.applyResult(ctx, "move", result, err)
}

// AssignTicket sets or clears the assignee.
func (s *TicketService) AssignTicket(ctx context.Context, actorID, ticketID string, assigneeID *string) (*domain.Ticket, error) {
	ticket, err := s.GetTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	result, err := domain.AssignTicket(*ticket, domain.AssignTicketInput{
		AssigneeID: assigneeID,
		ActorID:    actorID,
		Now:        s.now(),
	})
	return s.applyResult(ctx, "assign", result, err)
}

// CloseTicket closes the ticket without moving it.
func (s *TicketService) CloseTicket(ctx context.Context, actorID, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.GetTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	result, err := domain.CloseTicket(*ticket, domain.CloseTicketInput{
		ActorID: actorID,
		Now:     s.now(),
	})
	return s.applyResult(ctx, "close", result, err)
}

// ReopenTicket reopens a closed ticket into the target column.
func (s *TicketService) ReopenTicket(ctx context.Context, actorID, ticketID, toColumnID string) (*domain.Ticket, error) {
	ticket, err := s.GetTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	columns, err := s.columns.ListByProject(ctx, ticket.ProjectID)
	if err != nil {
		return nil, err
	}
	result, err := domain.ReopenTicket(*ticket, domain.ReopenTicketInput{
		ToColumnID: toColumnID,
		ActorID:    actorID,
		Now:        s.now(),
	}, columns)
	return s.applyResult(ctx, "reopen", result, err)
}

// AddTag appends a tag to the ticket and ensures the catalog entry exists.
func (s *TicketService) AddTag(ctx context.Context, actorID, ticketID, tag string) (*domain.Ticket, error) {
	ticket, err := s.GetTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	result, err := domain.AddTag(*ticket, domain.TagInput{
		Tag:     tag,
		ActorID: actorID,
		Now:     s.now(),
	})
	updated, err := s.applyResult(ctx, "add_tag", result, err)
	if err != nil {
		return nil, err
	}
	s.ensureTags(ctx, updated.ProjectID, []string{domain.NormalizeTag(tag)})
	return updated, nil
}

// RemoveTag drops a tag from the ticket. The catalog entry stays.
func (s *TicketService) RemoveTag(ctx context.Context, actorID, ticketID, tag string) (*domain.Ticket, error) {
	ticket, err := s.GetTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	result, err := domain.RemoveTag(*ticket, domain.TagInput{
		Tag:     tag,
		ActorID: actorID,
		Now:     s.now(),
	})
	return s.applyResult(ctx, "remove_tag", result, err)
}

// ListActivity returns the ticket's activity log, oldest first.
func (s *TicketService) ListActivity(ctx context.Context, ticketID string) ([]domain.ActivityEvent, error) {
	if _, err := s.GetTicket(ctx, ticketID); err != nil {
		return nil, err
	}
	return s.activity.ListByTicket(ctx, ticketID)
}

// ListProjectTags returns the project's tag catalog.
func (s *TicketService) ListProjectTags(ctx context.Context, projectID string) ([]domain.Tag, error) {
	return s.tags.ListByProject(ctx, projectID)
}

// applyResult persists a successful command outcome and records its
// events.
func (s *TicketService) applyResult(ctx context.Context, command string, result domain.CommandResult, err error) (*domain.Ticket, error) {
	if err != nil {
		s.recordCommand(command, false)
		return nil, err
	}
	ticket := result.Ticket
	if err := s.tickets.Update(ctx, &ticket); err != nil {
		return nil, err
	}
	s.recordActivity(ctx, ticket, result.Events)
	s.recordCommand(command, true)
	return &ticket, nil
}

// recordActivity appends events to the activity log and publishes them on
// the dispatcher. Both are best-effort: a failure here is logged and never
// rolls back the ticket mutation that already succeeded.
func (s *TicketService) recordActivity(ctx context.Context, ticket domain.Ticket, newEvents []domain.NewActivityEvent) {
	for i := range newEvents {
		newEvents[i].TicketID = ticket.ID
	}
	if s.activity != nil {
		if _, err := s.activity.Append(ctx, newEvents); err != nil {
			s.logger.Error("failed to append activity events",
				zap.String("ticket_id", ticket.ID),
				zap.Error(err),
			)
		}
	}
	if s.dispatcher == nil {
		return
	}
	for _, event := range newEvents {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Kind:      event.Payload.Kind(),
			TicketID:  ticket.ID,
			ProjectID: ticket.ProjectID,
			ActorID:   event.ActorID,
			Timestamp: s.now(),
			Payload:   event.Payload,
		})
	}
}

func (s *TicketService) ensureTags(ctx context.Context, projectID string, tags []string) {
	if s.tags == nil {
		return
	}
	for _, tag := range tags {
		if err := s.tags.Ensure(ctx, projectID, tag); err != nil {
			s.logger.Warn("failed to ensure tag catalog entry",
				zap.String("project_id", projectID),
				zap.String("tag", tag),
				zap.Error(err),
			)
		}
	}
}

func (s *TicketService) recordCommand(command string, ok bool) {
	if s.metrics != nil {
		s.metrics.RecordCommand(command, ok)
	}
}
