package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/kanban-service/internal/domain"
)

func TestDispatcherDeliversByKind(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var closed, moved []Event
	dispatcher.Subscribe(domain.ActivityTicketClosed, func(ctx context.Context, event Event) error {
		closed = append(closed, event)
		return nil
	})
	dispatcher.Subscribe(domain.ActivityStatusChanged, func(ctx context.Context, event Event) error {
		moved = append(moved, event)
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{
		ID:      "evt-1",
		Kind:    domain.ActivityTicketClosed,
		Payload: domain.TicketClosedPayload{},
	})
	require.NoError(t, err)

	require.Len(t, closed, 1)
	assert.Equal(t, "evt-1", closed[0].ID)
	assert.Empty(t, moved)
}

func TestDispatcherHandlerErrorDoesNotStopDelivery(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var secondCalled bool
	dispatcher.Subscribe(domain.ActivityTagAdded, func(ctx context.Context, event Event) error {
		return errors.New("handler failed")
	})
	dispatcher.Subscribe(domain.ActivityTagAdded, func(ctx context.Context, event Event) error {
		secondCalled = true
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{
		Kind:    domain.ActivityTagAdded,
		Payload: domain.TagAddedPayload{Tag: "bug"},
	})
	require.NoError(t, err)
	assert.True(t, secondCalled)
}

func TestDispatcherNoSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()
	err := dispatcher.Publish(context.Background(), Event{Kind: domain.ActivityTicketCreated})
	require.NoError(t, err)
}
