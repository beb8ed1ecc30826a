package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/kanban-service/internal/domain"
	"github.com/spec-kit/kanban-service/internal/events"
)

// NotificationService reacts to published activity with notification
// stubs. Delivery is fire-and-forget: a failed notification never affects
// the command that produced the event.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(domain.ActivityTicketCreated, n.handleActivity)
	n.dispatcher.Subscribe(domain.ActivityStatusChanged, n.handleActivity)
	n.dispatcher.Subscribe(domain.ActivityAssigneeChanged, n.handleActivity)
	n.dispatcher.Subscribe(domain.ActivityTicketClosed, n.handleActivity)
	n.dispatcher.Subscribe(domain.ActivityTicketReopened, n.handleActivity)
}

func (n *NotificationService) handleActivity(ctx context.Context, event events.Event) error {
	n.logger.Info("activity notification",
		zap.String("kind", string(event.Kind)),
		zap.String("ticket_id", event.TicketID),
		zap.String("project_id", event.ProjectID),
		zap.String("actor_id", event.ActorID),
	)
	return nil
}
