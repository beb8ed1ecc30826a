package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTicket() Ticket {
	now := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	return Ticket{
		ID:             "tic-1",
		ProjectID:      "proj-1",
		Number:         1,
		Title:          "A ticket",
		StatusColumnID: "col-todo",
		ReporterID:     "user-rep",
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func TestValidateTicket(t *testing.T) {
	ticket := validTicket()
	ticket.Tags = []string{" Bug ", "BUG", ""}

	require.NoError(t, ValidateTicket(&ticket))
	assert.Equal(t, []string{"bug"}, ticket.Tags, "tags are normalized in place")
	assert.Equal(t, "", ticket.Description)
}

func TestValidateTicketRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Ticket)
		field  string
	}{
		{"blank title", func(tk *Ticket) { tk.Title = "  " }, "title"},
		{"long title", func(tk *Ticket) { tk.Title = strings.Repeat("x", TitleMaxLength+1) }, "title"},
		{"long description", func(tk *Ticket) { tk.Description = strings.Repeat("x", DescriptionMaxLength+1) }, "description"},
		{"zero number", func(tk *Ticket) { tk.Number = 0 }, "number"},
		{"no column", func(tk *Ticket) { tk.StatusColumnID = "" }, "status_column_id"},
		{"updated before created", func(tk *Ticket) { tk.UpdatedAt = tk.CreatedAt.Add(-time.Second) }, "updated_at"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ticket := validTicket()
			tc.mutate(&ticket)
			err := ValidateTicket(&ticket)
			require.Error(t, err)
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tc.field, validationErr.Field)
		})
	}
}

func TestValidateProject(t *testing.T) {
	require.NoError(t, ValidateProject(&Project{Name: "Payments", KeyPrefix: "PAY"}))

	err := ValidateProject(&Project{Name: "Payments", KeyPrefix: "pay"})
	require.Error(t, err)

	err = ValidateProject(&Project{Name: " ", KeyPrefix: "PAY"})
	require.Error(t, err)
}

func TestValidateColumn(t *testing.T) {
	require.NoError(t, ValidateColumn(&WorkflowColumn{Name: "To Do", Position: 0}))
	require.Error(t, ValidateColumn(&WorkflowColumn{Name: "", Position: 0}))
	require.Error(t, ValidateColumn(&WorkflowColumn{Name: "To Do", Position: -1}))
}

func TestValidateMembership(t *testing.T) {
	for _, role := range []MemberRole{MemberRoleAdmin, MemberRoleMember, MemberRoleViewer} {
		require.NoError(t, ValidateMembership(&Membership{Role: role}))
	}
	require.Error(t, ValidateMembership(&Membership{Role: "OWNER"}))
}

func TestMembershipCanWrite(t *testing.T) {
	assert.True(t, Membership{Role: MemberRoleAdmin}.CanWrite())
	assert.True(t, Membership{Role: MemberRoleMember}.CanWrite())
	assert.False(t, Membership{Role: MemberRoleViewer}.CanWrite())
}
