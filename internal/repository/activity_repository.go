package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/kanban-service/internal/domain"
)

// ActivityRepository stores the append-only activity log. There are no
// update or delete operations here, and the backing table rejects both at
// the schema level.
type ActivityRepository interface {
	Append(ctx context.Context, events []domain.NewActivityEvent) ([]domain.ActivityEvent, error)
	ListByTicket(ctx context.Context, ticketID string) ([]domain.ActivityEvent, error)
}

type activityRepository struct {
	pool *pgxpool.Pool
}

// NewActivityRepository builds repository.
func NewActivityRepository(pool *pgxpool.Pool) ActivityRepository {
	return &activityRepository{pool: pool}
}

func (r *activityRepository) Append(ctx context.Context, events []domain.NewActivityEvent) ([]domain.ActivityEvent, error) {
	const query = `
        INSERT INTO ticket_activity (ticket_id, actor_id, kind, payload)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`

	persisted := make([]domain.ActivityEvent, 0, len(events))
	for _, event := range events {
		payload, err := json.Marshal(event.Payload)
		if err != nil {
			return persisted, fmt.Errorf("encode %s payload: %w", event.Payload.Kind(), err)
		}
		entry := domain.ActivityEvent{
			TicketID: event.TicketID,
			ActorID:  event.ActorID,
			Payload:  event.Payload,
		}
		if err := r.pool.QueryRow(ctx, query,
			event.TicketID,
			event.ActorID,
			string(event.Payload.Kind()),
			payload,
		).Scan(&entry.ID, &entry.CreatedAt); err != nil {
			return persisted, err
		}
		persisted = append(persisted, entry)
	}
	return persisted, nil
}

func (r *activityRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.ActivityEvent, error) {
	const query = `
        SELECT id, ticket_id, actor_id, kind, payload, created_at
        FROM ticket_activity WHERE ticket_id=$1 ORDER BY created_at ASC, id ASC`
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ActivityEvent
	for rows.Next() {
		var (
			entry   domain.ActivityEvent
			kind    string
			payload []byte
		)
		if err := rows.Scan(
			&entry.ID,
			&entry.TicketID,
			&entry.ActorID,
			&kind,
			&payload,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		decoded, err := domain.UnmarshalActivityPayload(domain.ActivityKind(kind), payload)
		if err != nil {
			return nil, err
		}
		entry.Payload = decoded
		result = append(result, entry)
	}
	return result, rows.Err()
}
