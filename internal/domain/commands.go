package domain

import (
	"strings"
	"time"
)

// Command functions are the only way ticket state changes. Each takes the
// current ticket value (and the project's columns where relevant) plus an
// input carrying the acting user and the caller-supplied instant, and
// returns the new ticket value with the ordered events describing the
// change, or a domain error. Inputs are never mutated and no clock or I/O
// is touched inside a command.

// CommandResult pairs the new ticket state with the events it produced.
type CommandResult struct {
	Ticket Ticket
	Events []NewActivityEvent
}

// CreateTicketInput carries everything needed to mint a ticket. Number
// must already be allocated by the caller (see service.TicketService).
type CreateTicketInput struct {
	ProjectID   string
	Number      int
	Title       string
	Description string
	Tags        []string
	ReporterID  string
	AssigneeID  *string
	ActorID     string
	Now         time.Time
}

// UpdateTicketInput carries new title and description values.
type UpdateTicketInput struct {
	Title       string
	Description string
	ActorID     string
	Now         time.Time
}

// MoveTicketInput targets a column within the ticket's project.
type MoveTicketInput struct {
	ToColumnID string
	ActorID    string
	Now        time.Time
}

// AssignTicketInput sets or clears the assignee.
type AssignTicketInput struct {
	AssigneeID *string
	ActorID    string
	Now        time.Time
}

// CloseTicketInput closes the ticket where it stands.
type CloseTicketInput struct {
	ActorID string
	Now     time.Time
}

// ReopenTicketInput reopens a closed ticket into a column.
type ReopenTicketInput struct {
	ToColumnID string
	ActorID    string
	Now        time.Time
}

// TagInput adds or removes a single tag.
type TagInput struct {
	Tag     string
	ActorID string
	Now     time.Time
}

// CreateTicket builds a new ticket in the project's initial column with
// ClosedAt unset and both timestamps at Now. The ID stays empty until the
// persistence layer assigns one at insert.
func CreateTicket(input CreateTicketInput, columns []WorkflowColumn) (CommandResult, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return CommandResult{}, NewError(CodeInvalidInput, "title must not be empty")
	}
	if len(title) > TitleMaxLength {
		return CommandResult{}, NewError(CodeInvalidInput, "title exceeds maximum length")
	}
	if len(input.Description) > DescriptionMaxLength {
		return CommandResult{}, NewError(CodeInvalidInput, "description exceeds maximum length")
	}
	if input.Number <= 0 {
		return CommandResult{}, NewError(CodeInvalidInput, "ticket number must be positive")
	}
	initial, ok := InitialColumn(columns)
	if !ok {
		return CommandResult{}, NewError(CodeInvalidInput, "project has no workflow columns")
	}

	ticket := Ticket{
		ProjectID:      input.ProjectID,
		Number:         input.Number,
		Title:          title,
		Description:    input.Description,
		StatusColumnID: initial.ID,
		ReporterID:     input.ReporterID,
		Tags:           NormalizeTags(input.Tags),
		CreatedAt:      input.Now,
		UpdatedAt:      input.Now,
	}
	if input.AssigneeID != nil {
		id := *input.AssigneeID
		ticket.AssigneeID = &id
	}

	return CommandResult{
		Ticket: ticket,
		Events: []NewActivityEvent{
			{ActorID: input.ActorID, Payload: TicketCreatedPayload{}},
		},
	}, nil
}

// UpdateTicket changes title and description. An update that changes
// neither field is rejected rather than silently accepted.
func UpdateTicket(ticket Ticket, input UpdateTicketInput) (CommandResult, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return CommandResult{}, NewError(CodeInvalidInput, "title must not be empty")
	}
	if len(title) > TitleMaxLength {
		return CommandResult{}, NewError(CodeInvalidInput, "title exceeds maximum length")
	}
	if len(input.Description) > DescriptionMaxLength {
		return CommandResult{}, NewError(CodeInvalidInput, "description exceeds maximum length")
	}
	if title == ticket.Title && input.Description == ticket.Description {
		return CommandResult{}, NewError(CodeInvalidInput, "nothing to update")
	}

	updated := ticket.clone()
	fromTitle := updated.Title
	descriptionChanged := input.Description != updated.Description
	updated.Title = title
	updated.Description = input.Description
	updated.UpdatedAt = input.Now

	return CommandResult{
		Ticket: updated,
		Events: []NewActivityEvent{
			{TicketID: ticket.ID, ActorID: input.ActorID, Payload: TicketUpdatedPayload{
				FromTitle:          fromTitle,
				ToTitle:            title,
				DescriptionChanged: descriptionChanged,
			}},
		},
	}, nil
}

// MoveTicket relocates the ticket to another column of its project. Moving
// into the terminal column closes an open ticket; moving a closed ticket
// out of the terminal column reopens it. The two side effects are mutually
// exclusive for a single move, and each appends its event after the
// status_changed event.
func MoveTicket(ticket Ticket, input MoveTicketInput, columns []WorkflowColumn) (CommandResult, error) {
	if input.ToColumnID == ticket.StatusColumnID {
		return CommandResult{}, NewError(CodeSameColumn, "ticket is already in this column")
	}
	target, ok := FindColumn(columns, input.ToColumnID)
	if !ok {
		return CommandResult{}, NewError(CodeColumnNotFound, "target column not found")
	}

	updated := ticket.clone()
	fromColumnID := updated.StatusColumnID
	updated.StatusColumnID = target.ID
	updated.UpdatedAt = input.Now

	events := []NewActivityEvent{
		{TicketID: ticket.ID, ActorID: input.ActorID, Payload: StatusChangedPayload{
			FromColumnID: fromColumnID,
			ToColumnID:   target.ID,
		}},
	}

	previous, hadPrevious := FindColumn(columns, fromColumnID)
	switch {
	case target.IsTerminal() && !ticket.IsClosed():
		now := input.Now
		updated.ClosedAt = &now
		events = append(events, NewActivityEvent{
			TicketID: ticket.ID, ActorID: input.ActorID, Payload: TicketClosedPayload{},
		})
	case hadPrevious && previous.IsTerminal() && ticket.IsClosed() && !target.IsTerminal():
		updated.ClosedAt = nil
		events = append(events, NewActivityEvent{
			TicketID: ticket.ID, ActorID: input.ActorID, Payload: TicketReopenedPayload{ToColumnID: target.ID},
		})
	}

	return CommandResult{Ticket: updated, Events: events}, nil
}

// AssignTicket sets or clears the assignee. Assigning the current assignee
// (including nil to nil) is rejected.
func AssignTicket(ticket Ticket, input AssignTicketInput) (CommandResult, error) {
	if sameAssignee(ticket.AssigneeID, input.AssigneeID) {
		return CommandResult{}, NewError(CodeSameAssignee, "ticket already has this assignee")
	}

	updated := ticket.clone()
	from := updated.AssigneeID
	if input.AssigneeID != nil {
		id := *input.AssigneeID
		updated.AssigneeID = &id
	} else {
		updated.AssigneeID = nil
	}
	updated.UpdatedAt = input.Now

	return CommandResult{
		Ticket: updated,
		Events: []NewActivityEvent{
			{TicketID: ticket.ID, ActorID: input.ActorID, Payload: AssigneeChangedPayload{
				FromAssigneeID: from,
				ToAssigneeID:   updated.AssigneeID,
			}},
		},
	}, nil
}

func sameAssignee(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// CloseTicket closes the ticket in place. Column placement is untouched:
// closing is independent of where the ticket sits on the board.
func CloseTicket(ticket Ticket, input CloseTicketInput) (CommandResult, error) {
	if ticket.IsClosed() {
		return CommandResult{}, NewError(CodeTicketAlreadyClosed, "ticket is already closed")
	}

	updated := ticket.clone()
	now := input.Now
	updated.ClosedAt = &now
	updated.UpdatedAt = input.Now

	return CommandResult{
		Ticket: updated,
		Events: []NewActivityEvent{
			{TicketID: ticket.ID, ActorID: input.ActorID, Payload: TicketClosedPayload{}},
		},
	}, nil
}

// ReopenTicket clears ClosedAt and places the ticket in the target column.
func ReopenTicket(ticket Ticket, input ReopenTicketInput, columns []WorkflowColumn) (CommandResult, error) {
	if !ticket.IsClosed() {
		return CommandResult{}, NewError(CodeTicketNotClosed, "ticket is not closed")
	}
	target, ok := FindColumn(columns, input.ToColumnID)
	if !ok {
		return CommandResult{}, NewError(CodeColumnNotFound, "target column not found")
	}

	updated := ticket.clone()
	updated.ClosedAt = nil
	updated.StatusColumnID = target.ID
	updated.UpdatedAt = input.Now

	return CommandResult{
		Ticket: updated,
		Events: []NewActivityEvent{
			{TicketID: ticket.ID, ActorID: input.ActorID, Payload: TicketReopenedPayload{ToColumnID: target.ID}},
		},
	}, nil
}

// AddTag appends the normalized tag unless a case variant already exists.
func AddTag(ticket Ticket, input TagInput) (CommandResult, error) {
	normalized := NormalizeTag(input.Tag)
	if normalized == "" {
		return CommandResult{}, NewError(CodeInvalidInput, "tag must not be empty")
	}
	if HasTag(ticket.Tags, normalized) {
		return CommandResult{}, NewError(CodeTagAlreadyExists, "tag already present on ticket")
	}

	updated := ticket.clone()
	updated.Tags = AddTagToList(updated.Tags, normalized)
	updated.UpdatedAt = input.Now

	return CommandResult{
		Ticket: updated,
		Events: []NewActivityEvent{
			{TicketID: ticket.ID, ActorID: input.ActorID, Payload: TagAddedPayload{Tag: normalized}},
		},
	}, nil
}

// RemoveTag drops any case variant of the tag from the ticket. The project
// tag catalog is untouched.
func RemoveTag(ticket Ticket, input TagInput) (CommandResult, error) {
	normalized := NormalizeTag(input.Tag)
	if !HasTag(ticket.Tags, normalized) {
		return CommandResult{}, NewError(CodeTagNotFound, "tag not present on ticket")
	}

	updated := ticket.clone()
	updated.Tags = RemoveTagFromList(updated.Tags, normalized)
	updated.UpdatedAt = input.Now

	return CommandResult{
		Ticket: updated,
		Events: []NewActivityEvent{
			{TicketID: ticket.ID, ActorID: input.ActorID, Payload: TagRemovedPayload{Tag: normalized}},
		},
	}, nil
}
