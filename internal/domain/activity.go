package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// ActivityKind discriminates activity event payloads.
type ActivityKind string

const (
	ActivityTicketCreated   ActivityKind = "ticket_created"
	ActivityStatusChanged   ActivityKind = "status_changed"
	ActivityAssigneeChanged ActivityKind = "assignee_changed"
	ActivityTicketUpdated   ActivityKind = "ticket_updated"
	ActivityTagAdded        ActivityKind = "tag_added"
	ActivityTagRemoved      ActivityKind = "tag_removed"
	ActivityTicketClosed    ActivityKind = "ticket_closed"
	ActivityTicketReopened  ActivityKind = "ticket_reopened"
)

// ActivityPayload is the tagged union of per-kind event payloads.
type ActivityPayload interface {
	Kind() ActivityKind
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct{}

// StatusChangedPayload payload.
type StatusChangedPayload struct {
	FromColumnID string `json:"from_column_id"`
	ToColumnID   string `json:"to_column_id"`
}

// AssigneeChangedPayload payload.
type AssigneeChangedPayload struct {
	FromAssigneeID *string `json:"from_assignee_id"`
	ToAssigneeID   *string `json:"to_assignee_id"`
}

// TicketUpdatedPayload payload.
type TicketUpdatedPayload struct {
	FromTitle          string `json:"from_title"`
	ToTitle            string `json:"to_title"`
	DescriptionChanged bool   `json:"description_changed"`
}

// TagAddedPayload payload.
type TagAddedPayload struct {
	Tag string `json:"tag"`
}

// TagRemovedPayload payload.
type TagRemovedPayload struct {
	Tag string `json:"tag"`
}

// TicketClosedPayload payload.
type TicketClosedPayload struct{}

// TicketReopenedPayload payload.
type TicketReopenedPayload struct {
	ToColumnID string `json:"to_column_id"`
}

func (TicketCreatedPayload) Kind() ActivityKind   { return ActivityTicketCreated }
func (StatusChangedPayload) Kind() ActivityKind   { return ActivityStatusChanged }
func (AssigneeChangedPayload) Kind() ActivityKind { return ActivityAssigneeChanged }
func (TicketUpdatedPayload) Kind() ActivityKind   { return ActivityTicketUpdated }
func (TagAddedPayload) Kind() ActivityKind        { return ActivityTagAdded }
func (TagRemovedPayload) Kind() ActivityKind      { return ActivityTagRemoved }
func (TicketClosedPayload) Kind() ActivityKind    { return ActivityTicketClosed }
func (TicketReopenedPayload) Kind() ActivityKind  { return ActivityTicketReopened }

// NewActivityEvent is an event produced by a command. The persistence
// layer assigns ID and CreatedAt at write time; until then the event only
// carries who did what to which ticket.
type NewActivityEvent struct {
	TicketID string
	ActorID  string
	Payload  ActivityPayload
}

// ActivityEvent is a persisted, append-only activity log entry. Entries
// are never mutated or deleted once written.
type ActivityEvent struct {
	ID        string
	TicketID  string
	ActorID   string
	CreatedAt time.Time
	Payload   ActivityPayload
}

// UnmarshalActivityPayload decodes a persisted payload by kind. The switch
// is exhaustive over ActivityKind; an unknown kind is a storage corruption
// error, not a silently ignored row.
func UnmarshalActivityPayload(kind ActivityKind, data []byte) (ActivityPayload, error) {
	var (
		payload ActivityPayload
		err     error
	)
	switch kind {
	case ActivityTicketCreated:
		payload = TicketCreatedPayload{}
	case ActivityStatusChanged:
		var p StatusChangedPayload
		err = json.Unmarshal(data, &p)
		payload = p
	case ActivityAssigneeChanged:
		var p AssigneeChangedPayload
		err = json.Unmarshal(data, &p)
		payload = p
	case ActivityTicketUpdated:
		var p TicketUpdatedPayload
		err = json.Unmarshal(data, &p)
		payload = p
	case ActivityTagAdded:
		var p TagAddedPayload
		err = json.Unmarshal(data, &p)
		payload = p
	case ActivityTagRemoved:
		var p TagRemovedPayload
		err = json.Unmarshal(data, &p)
		payload = p
	case ActivityTicketClosed:
		payload = TicketClosedPayload{}
	case ActivityTicketReopened:
		var p TicketReopenedPayload
		err = json.Unmarshal(data, &p)
		payload = p
	default:
		return nil, fmt.Errorf("unknown activity kind %q", kind)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", kind, err)
	}
	return payload, nil
}
