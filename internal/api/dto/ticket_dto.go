package dto

import (
	"time"

	"github.com/spec-kit/kanban-service/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	AssigneeID  *string  `json:"assignee_id"`
}

// UpdateTicketRequest payload.
type UpdateTicketRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// MoveTicketRequest payload.
type MoveTicketRequest struct {
	ToColumnID string `json:"to_column_id"`
}

// AssignTicketRequest payload. A null assignee_id unassigns.
type AssignTicketRequest struct {
	AssigneeID *string `json:"assignee_id"`
}

// ReopenTicketRequest payload.
type ReopenTicketRequest struct {
	ToColumnID string `json:"to_column_id"`
}

// TagRequest payload.
type TagRequest struct {
	Tag string `json:"tag"`
}

// TicketResponse is the full ticket representation.
type TicketResponse struct {
	ID             string     `json:"id"`
	ProjectID      string     `json:"project_id"`
	Key            string     `json:"key"`
	Number         int        `json:"number"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	StatusColumnID string     `json:"status_column_id"`
	AssigneeID     *string    `json:"assignee_id"`
	ReporterID     string     `json:"reporter_id"`
	Tags           []string   `json:"tags"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	ClosedAt       *time.Time `json:"closed_at"`
}

// NewTicketResponse maps a ticket to its response form.
func NewTicketResponse(ticket *domain.Ticket, keyPrefix string) TicketResponse {
	tags := ticket.Tags
	if tags == nil {
		tags = []string{}
	}
	return TicketResponse{
		ID:             ticket.ID,
		ProjectID:      ticket.ProjectID,
		Key:            ticket.Key(keyPrefix),
		Number:         ticket.Number,
		Title:          ticket.Title,
		Description:    ticket.Description,
		StatusColumnID: ticket.StatusColumnID,
		AssigneeID:     ticket.AssigneeID,
		ReporterID:     ticket.ReporterID,
		Tags:           tags,
		CreatedAt:      ticket.CreatedAt,
		UpdatedAt:      ticket.UpdatedAt,
		ClosedAt:       ticket.ClosedAt,
	}
}

// ActivityResponse is one activity log entry.
type ActivityResponse struct {
	ID        string                 `json:"id"`
	TicketID  string                 `json:"ticket_id"`
	ActorID   string                 `json:"actor_id"`
	Kind      domain.ActivityKind    `json:"kind"`
	Payload   domain.ActivityPayload `json:"payload"`
	CreatedAt time.Time              `json:"created_at"`
}

// NewActivityResponse maps an activity event to its response form.
func NewActivityResponse(event domain.ActivityEvent) ActivityResponse {
	return ActivityResponse{
		ID:        event.ID,
		TicketID:  event.TicketID,
		ActorID:   event.ActorID,
		Kind:      event.Payload.Kind(),
		Payload:   event.Payload,
		CreatedAt: event.CreatedAt,
	}
}
