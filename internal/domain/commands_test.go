package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func testColumns() []WorkflowColumn {
	return []WorkflowColumn{
		{ID: "col-todo", ProjectID: "proj-1", Name: "To Do", Position: 0},
		{ID: "col-doing", ProjectID: "proj-1", Name: "In Progress", Position: 1},
		{ID: "col-done", ProjectID: "proj-1", Name: TerminalColumnName, Position: 2},
	}
}

func openTicket() Ticket {
	return Ticket{
		ID:             "tic-1",
		ProjectID:      "proj-1",
		Number:         7,
		Title:          "Fix login redirect",
		Description:    "Redirect loops on expired session",
		StatusColumnID: "col-todo",
		ReporterID:     "user-rep",
		Tags:           []string{"bug"},
		CreatedAt:      testNow.Add(-48 * time.Hour),
		UpdatedAt:      testNow.Add(-24 * time.Hour),
	}
}

func closedTicket() Ticket {
	ticket := openTicket()
	closedAt := testNow.Add(-12 * time.Hour)
	ticket.ClosedAt = &closedAt
	ticket.StatusColumnID = "col-done"
	return ticket
}

func assertCode(t *testing.T, err error, want ErrorCode) {
	t.Helper()
	require.Error(t, err)
	code, ok := CodeOf(err)
	require.True(t, ok, "expected a domain error, got %v", err)
	assert.Equal(t, want, code)
}

func TestCreateTicket(t *testing.T) {
	assignee := "user-a"
	result, err := CreateTicket(CreateTicketInput{
		ProjectID:   "proj-1",
		Number:      1,
		Title:       "  First ticket  ",
		Description: "details",
		Tags:        []string{"Bug", "bug", " ", "infra"},
		ReporterID:  "user-rep",
		AssigneeID:  &assignee,
		ActorID:     "user-rep",
		Now:         testNow,
	}, testColumns())
	require.NoError(t, err)

	ticket := result.Ticket
	assert.Equal(t, "First ticket", ticket.Title)
	assert.Equal(t, "col-todo", ticket.StatusColumnID, "new tickets start in the lowest-position column")
	assert.Nil(t, ticket.ClosedAt)
	assert.Equal(t, []string{"bug", "infra"}, ticket.Tags)
	assert.Equal(t, testNow, ticket.CreatedAt)
	assert.Equal(t, testNow, ticket.UpdatedAt)
	require.NotNil(t, ticket.AssigneeID)
	assert.Equal(t, "user-a", *ticket.AssigneeID)

	require.Len(t, result.Events, 1)
	assert.Equal(t, ActivityTicketCreated, result.Events[0].Payload.Kind())
	assert.Equal(t, "user-rep", result.Events[0].ActorID)
}

func TestCreateTicketValidation(t *testing.T) {
	columns := testColumns()
	base := CreateTicketInput{
		ProjectID:  "proj-1",
		Number:     1,
		Title:      "ok",
		ReporterID: "user-rep",
		ActorID:    "user-rep",
		Now:        testNow,
	}

	t.Run("blank title", func(t *testing.T) {
		input := base
		input.Title = "   "
		_, err := CreateTicket(input, columns)
		assertCode(t, err, CodeInvalidInput)
	})

	t.Run("title too long", func(t *testing.T) {
		input := base
		input.Title = strings.Repeat("x", TitleMaxLength+1)
		_, err := CreateTicket(input, columns)
		assertCode(t, err, CodeInvalidInput)
	})

	t.Run("description too long", func(t *testing.T) {
		input := base
		input.Description = strings.Repeat("x", DescriptionMaxLength+1)
		_, err := CreateTicket(input, columns)
		assertCode(t, err, CodeInvalidInput)
	})

	t.Run("non-positive number", func(t *testing.T) {
		input := base
		input.Number = 0
		_, err := CreateTicket(input, columns)
		assertCode(t, err, CodeInvalidInput)
	})

	t.Run("no columns", func(t *testing.T) {
		_, err := CreateTicket(base, nil)
		assertCode(t, err, CodeInvalidInput)
	})
}

func TestUpdateTicket(t *testing.T) {
	ticket := openTicket()

	result, err := UpdateTicket(ticket, UpdateTicketInput{
		Title:       "Fix login redirect loop",
		Description: ticket.Description,
		ActorID:     "user-b",
		Now:         testNow,
	})
	require.NoError(t, err)
	assert.Equal(t, "Fix login redirect loop", result.Ticket.Title)
	assert.Equal(t, testNow, result.Ticket.UpdatedAt)

	require.Len(t, result.Events, 1)
	payload, ok := result.Events[0].Payload.(TicketUpdatedPayload)
	require.True(t, ok)
	assert.Equal(t, "Fix login redirect", payload.FromTitle)
	assert.Equal(t, "Fix login redirect loop", payload.ToTitle)
	assert.False(t, payload.DescriptionChanged)

	// Original value untouched.
	assert.Equal(t, "Fix login redirect", ticket.Title)
}

func TestUpdateTicketNoop(t *testing.T) {
	ticket := openTicket()
	_, err := UpdateTicket(ticket, UpdateTicketInput{
		Title:       ticket.Title,
		Description: ticket.Description,
		ActorID:     "user-b",
		Now:         testNow,
	})
	assertCode(t, err, CodeInvalidInput)
}

func TestMoveTicket(t *testing.T) {
	ticket := openTicket()

	result, err := MoveTicket(ticket, MoveTicketInput{
		ToColumnID: "col-doing",
		ActorID:    "user-b",
		Now:        testNow,
	}, testColumns())
	require.NoError(t, err)
	assert.Equal(t, "col-doing", result.Ticket.StatusColumnID)
	assert.Nil(t, result.Ticket.ClosedAt)

	require.Len(t, result.Events, 1)
	payload, ok := result.Events[0].Payload.(StatusChangedPayload)
	require.True(t, ok)
	assert.Equal(t, "col-todo", payload.FromColumnID)
	assert.Equal(t, "col-doing", payload.ToColumnID)
}

func TestMoveTicketSameColumn(t *testing.T) {
	_, err := MoveTicket(openTicket(), MoveTicketInput{
		ToColumnID: "col-todo",
		ActorID:    "user-b",
		Now:        testNow,
	}, testColumns())
	assertCode(t, err, CodeSameColumn)
}

func TestMoveTicketUnknownColumn(t *testing.T) {
	_, err := MoveTicket(openTicket(), MoveTicketInput{
		ToColumnID: "col-missing",
		ActorID:    "user-b",
		Now:        testNow,
	}, testColumns())
	assertCode(t, err, CodeColumnNotFound)
}

func TestMoveTicketIntoTerminalCloses(t *testing.T) {
	result, err := MoveTicket(openTicket(), MoveTicketInput{
		ToColumnID: "col-done",
		ActorID:    "user-b",
		Now:        testNow,
	}, testColumns())
	require.NoError(t, err)

	require.NotNil(t, result.Ticket.ClosedAt)
	assert.Equal(t, testNow, *result.Ticket.ClosedAt)

	require.Len(t, result.Events, 2)
	assert.Equal(t, ActivityStatusChanged, result.Events[0].Payload.Kind())
	assert.Equal(t, ActivityTicketClosed, result.Events[1].Payload.Kind())
}

func TestMoveClosedTicketIntoTerminalDoesNotClockAgain(t *testing.T) {
	ticket := closedTicket()
	ticket.StatusColumnID = "col-doing" // closed where it stood, then moved

	result, err := MoveTicket(ticket, MoveTicketInput{
		ToColumnID: "col-done",
		ActorID:    "user-b",
		Now:        testNow,
	}, testColumns())
	require.NoError(t, err)

	require.NotNil(t, result.Ticket.ClosedAt)
	assert.Equal(t, *ticket.ClosedAt, *result.Ticket.ClosedAt, "already-closed ticket keeps its close time")
	require.Len(t, result.Events, 1)
	assert.Equal(t, ActivityStatusChanged, result.Events[0].Payload.Kind())
}

func TestMoveTicketOutOfTerminalReopens(t *testing.T) {
	result, err := MoveTicket(closedTicket(), MoveTicketInput{
		ToColumnID: "col-doing",
		ActorID:    "user-b",
		Now:        testNow,
	}, testColumns())
	require.NoError(t, err)

	assert.Nil(t, result.Ticket.ClosedAt)
	assert.Equal(t, "col-doing", result.Ticket.StatusColumnID)

	require.Len(t, result.Events, 2)
	assert.Equal(t, ActivityStatusChanged, result.Events[0].Payload.Kind())
	payload, ok := result.Events[1].Payload.(TicketReopenedPayload)
	require.True(t, ok)
	assert.Equal(t, "col-doing", payload.ToColumnID)
}

func TestMoveOpenTicketOutOfTerminalColumn(t *testing.T) {
	// Closed manually then reopened elsewhere can leave an open ticket
	// sitting in the terminal column; moving it out is a plain move.
	ticket := openTicket()
	ticket.StatusColumnID = "col-done"

	result, err := MoveTicket(ticket, MoveTicketInput{
		ToColumnID: "col-todo",
		ActorID:    "user-b",
		Now:        testNow,
	}, testColumns())
	require.NoError(t, err)
	assert.Nil(t, result.Ticket.ClosedAt)
	require.Len(t, result.Events, 1)
	assert.Equal(t, ActivityStatusChanged, result.Events[0].Payload.Kind())
}

func TestAssignTicket(t *testing.T) {
	assignee := "user-a"
	result, err := AssignTicket(openTicket(), AssignTicketInput{
		AssigneeID: &assignee,
		ActorID:    "user-b",
		Now:        testNow,
	})
	require.NoError(t, err)
	require.NotNil(t, result.Ticket.AssigneeID)
	assert.Equal(t, "user-a", *result.Ticket.AssigneeID)

	require.Len(t, result.Events, 1)
	payload, ok := result.Events[0].Payload.(AssigneeChangedPayload)
	require.True(t, ok)
	assert.Nil(t, payload.FromAssigneeID)
	require.NotNil(t, payload.ToAssigneeID)
	assert.Equal(t, "user-a", *payload.ToAssigneeID)
}

func TestAssignTicketUnassign(t *testing.T) {
	assignee := "user-a"
	ticket := openTicket()
	ticket.AssigneeID = &assignee

	result, err := AssignTicket(ticket, AssignTicketInput{
		AssigneeID: nil,
		ActorID:    "user-b",
		Now:        testNow,
	})
	require.NoError(t, err)
	assert.Nil(t, result.Ticket.AssigneeID)
}

func TestAssignTicketSameAssignee(t *testing.T) {
	assignee := "user-a"
	ticket := openTicket()
	ticket.AssigneeID = &assignee

	same := "user-a"
	_, err := AssignTicket(ticket, AssignTicketInput{AssigneeID: &same, ActorID: "user-b", Now: testNow})
	assertCode(t, err, CodeSameAssignee)

	// nil to nil is the same assignee too.
	_, err = AssignTicket(openTicket(), AssignTicketInput{AssigneeID: nil, ActorID: "user-b", Now: testNow})
	assertCode(t, err, CodeSameAssignee)
}

func TestCloseTicket(t *testing.T) {
	ticket := openTicket()
	ticket.StatusColumnID = "col-doing"

	result, err := CloseTicket(ticket, CloseTicketInput{ActorID: "user-b", Now: testNow})
	require.NoError(t, err)
	require.NotNil(t, result.Ticket.ClosedAt)
	assert.Equal(t, testNow, *result.Ticket.ClosedAt)
	assert.Equal(t, "col-doing", result.Ticket.StatusColumnID, "closing does not move the ticket")

	require.Len(t, result.Events, 1)
	assert.Equal(t, ActivityTicketClosed, result.Events[0].Payload.Kind())
}

func TestCloseTicketAlreadyClosed(t *testing.T) {
	_, err := CloseTicket(closedTicket(), CloseTicketInput{ActorID: "user-b", Now: testNow})
	assertCode(t, err, CodeTicketAlreadyClosed)
}

func TestReopenTicket(t *testing.T) {
	result, err := ReopenTicket(closedTicket(), ReopenTicketInput{
		ToColumnID: "col-todo",
		ActorID:    "user-b",
		Now:        testNow,
	}, testColumns())
	require.NoError(t, err)
	assert.Nil(t, result.Ticket.ClosedAt)
	assert.Equal(t, "col-todo", result.Ticket.StatusColumnID)

	require.Len(t, result.Events, 1)
	payload, ok := result.Events[0].Payload.(TicketReopenedPayload)
	require.True(t, ok)
	assert.Equal(t, "col-todo", payload.ToColumnID)
}

func TestReopenTicketNotClosed(t *testing.T) {
	_, err := ReopenTicket(openTicket(), ReopenTicketInput{
		ToColumnID: "col-todo",
		ActorID:    "user-b",
		Now:        testNow,
	}, testColumns())
	assertCode(t, err, CodeTicketNotClosed)
}

func TestReopenTicketUnknownColumn(t *testing.T) {
	_, err := ReopenTicket(closedTicket(), ReopenTicketInput{
		ToColumnID: "col-missing",
		ActorID:    "user-b",
		Now:        testNow,
	}, testColumns())
	assertCode(t, err, CodeColumnNotFound)
}

func TestAddTag(t *testing.T) {
	result, err := AddTag(openTicket(), TagInput{Tag: "  Backend ", ActorID: "user-b", Now: testNow})
	require.NoError(t, err)
	assert.Equal(t, []string{"bug", "backend"}, result.Ticket.Tags)

	require.Len(t, result.Events, 1)
	payload, ok := result.Events[0].Payload.(TagAddedPayload)
	require.True(t, ok)
	assert.Equal(t, "backend", payload.Tag)
}

func TestAddTagCaseVariantExists(t *testing.T) {
	_, err := AddTag(openTicket(), TagInput{Tag: "BUG", ActorID: "user-b", Now: testNow})
	assertCode(t, err, CodeTagAlreadyExists)
}

func TestAddTagEmpty(t *testing.T) {
	_, err := AddTag(openTicket(), TagInput{Tag: "   ", ActorID: "user-b", Now: testNow})
	assertCode(t, err, CodeInvalidInput)
}

func TestRemoveTag(t *testing.T) {
	result, err := RemoveTag(openTicket(), TagInput{Tag: "Bug", ActorID: "user-b", Now: testNow})
	require.NoError(t, err)
	assert.Empty(t, result.Ticket.Tags)

	require.Len(t, result.Events, 1)
	payload, ok := result.Events[0].Payload.(TagRemovedPayload)
	require.True(t, ok)
	assert.Equal(t, "bug", payload.Tag)
}

func TestRemoveTagNotPresent(t *testing.T) {
	_, err := RemoveTag(openTicket(), TagInput{Tag: "missing", ActorID: "user-b", Now: testNow})
	assertCode(t, err, CodeTagNotFound)
}

func TestCommandsDoNotMutateInput(t *testing.T) {
	ticket := openTicket()
	original := ticket
	originalTags := append([]string(nil), ticket.Tags...)

	_, err := AddTag(ticket, TagInput{Tag: "new", ActorID: "user-b", Now: testNow})
	require.NoError(t, err)
	_, err = MoveTicket(ticket, MoveTicketInput{ToColumnID: "col-done", ActorID: "user-b", Now: testNow}, testColumns())
	require.NoError(t, err)

	assert.Equal(t, original, ticket)
	assert.Equal(t, originalTags, ticket.Tags)
}
