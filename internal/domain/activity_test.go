package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalActivityPayload(t *testing.T) {
	payload, err := UnmarshalActivityPayload(ActivityStatusChanged, []byte(`{"from_column_id":"a","to_column_id":"b"}`))
	require.NoError(t, err)
	statusChanged, ok := payload.(StatusChangedPayload)
	require.True(t, ok)
	assert.Equal(t, "a", statusChanged.FromColumnID)
	assert.Equal(t, "b", statusChanged.ToColumnID)

	payload, err = UnmarshalActivityPayload(ActivityAssigneeChanged, []byte(`{"from_assignee_id":null,"to_assignee_id":"user-a"}`))
	require.NoError(t, err)
	assigneeChanged, ok := payload.(AssigneeChangedPayload)
	require.True(t, ok)
	assert.Nil(t, assigneeChanged.FromAssigneeID)
	require.NotNil(t, assigneeChanged.ToAssigneeID)
	assert.Equal(t, "user-a", *assigneeChanged.ToAssigneeID)

	payload, err = UnmarshalActivityPayload(ActivityTicketClosed, []byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, ActivityTicketClosed, payload.Kind())
}

func TestUnmarshalActivityPayloadUnknownKind(t *testing.T) {
	_, err := UnmarshalActivityPayload("ticket_exploded", []byte(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown activity kind")
}

func TestUnmarshalActivityPayloadBadJSON(t *testing.T) {
	_, err := UnmarshalActivityPayload(ActivityTagAdded, []byte(`{`))
	require.Error(t, err)
}
