package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/db"
	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/repository"
)

// enqueueEvent writes the event to the outbox inside the caller's transaction.
// Events are keyed by user so the consumer sees one user's changes in order.
func (s *Storage) enqueueEvent(ctx context.Context, q db.Querier, event repository.DeliveryEventPayload) error {
	event.OccurredAt = s.timeNow().UTC()
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", event.Event, err)
	}

	key := event.UserID
	if key == "" {
		key = event.Event
	}
	task := &repository.OutboxTask{
		Payload: payload,
		Topic:   s.eventsTopic,
		Key:     key,
	}
	if err := s.outbox.Create(ctx, q, task); err != nil {
		return fmt.Errorf("failed to enqueue %s event: %w", event.Event, err)
	}
	return nil
}
