package domain

import "time"

// Project groups workflow columns and tickets inside an organization.
// KeyPrefix is the uppercase alphanumeric prefix used for human-facing
// ticket keys such as "PAY-42".
type Project struct {
	ID             string
	OrganizationID string
	Name           string
	KeyPrefix      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// WorkflowColumn is a single pipeline stage within a project board.
// Position orders columns left to right; the minimum position is the
// initial column for newly created tickets.
type WorkflowColumn struct {
	ID        string
	ProjectID string
	Name      string
	Position  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TerminalColumnName identifies the pipeline's terminal column. Detection
// is by exact name equality: renaming the column disables the auto-close
// and auto-reopen behavior of MoveTicket.
const TerminalColumnName = "Done"

// IsTerminal reports whether the column is the terminal "Done" stage.
func (c WorkflowColumn) IsTerminal() bool {
	return c.Name == TerminalColumnName
}
