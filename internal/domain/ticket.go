package domain

import "time"

// Field limits enforced on tickets.
const (
	TitleMaxLength       = 200
	DescriptionMaxLength = 10000
)

// Ticket is the aggregate for a unit of work on a project board.
// Number is assigned once at creation, unique per project, and never
// reassigned. ClosedAt is non-nil exactly when the ticket is closed and is
// maintained only by commands, never inferred from the column at read time:
// a ticket closed via CloseTicket may sit in a non-terminal column.
type Ticket struct {
	ID             string
	ProjectID      string
	Number         int
	Title          string
	Description    string
	StatusColumnID string
	AssigneeID     *string
	ReporterID     string
	Tags           []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	ClosedAt       *time.Time
}

// IsClosed reports whether the ticket is currently closed.
func (t Ticket) IsClosed() bool {
	return t.ClosedAt != nil
}

// Key renders the human-facing ticket key for the given project prefix.
func (t Ticket) Key(prefix string) string {
	return GenerateTicketKey(prefix, t.Number)
}

// clone returns a deep copy so commands never mutate their input.
func (t Ticket) clone() Ticket {
	out := t
	if t.AssigneeID != nil {
		id := *t.AssigneeID
		out.AssigneeID = &id
	}
	if t.ClosedAt != nil {
		at := *t.ClosedAt
		out.ClosedAt = &at
	}
	out.Tags = append([]string(nil), t.Tags...)
	return out
}
