package postgresql

import (
	"context"
	"fmt"

	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/db"
	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/repository"
	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/storage"
)

const slotColumns = `id, subscription_id, slot_type, milk_type, quantity, time_slot, frequency, days, is_enabled`

type SlotRepo struct{}

func NewSlotRepo() storage.SlotRepository {
	return &SlotRepo{}
}

func (r *SlotRepo) Create(ctx context.Context, q db.Querier, slot *repository.Slot) (int64, error) {
	var id int64
	err := q.Get(ctx, &id, `
        INSERT INTO subscription_slots (
            subscription_id, slot_type, milk_type, quantity, time_slot, frequency, days, is_enabled
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id
    `, slot.SubscriptionID, slot.SlotType, slot.MilkType, slot.Quantity, slot.TimeSlot, slot.Frequency, days(slot.Days), slot.IsEnabled)
	if err != nil {
		return 0, fmt.Errorf("failed to insert %s slot: %w", slot.SlotType, err)
	}
	return id, nil
}

// Upsert rewrites the slot of the given type, creating it when the subscription has none.
func (r *SlotRepo) Upsert(ctx context.Context, q db.Querier, slot *repository.Slot) error {
	_, err := q.Exec(ctx, `
        INSERT INTO subscription_slots (
            subscription_id, slot_type, milk_type, quantity, time_slot, frequency, days, is_enabled
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        ON CONFLICT (subscription_id, slot_type) DO UPDATE SET
            milk_type = EXCLUDED.milk_type,
            quantity = EXCLUDED.quantity,
            time_slot = EXCLUDED.time_slot,
            frequency = EXCLUDED.frequency,
            days = EXCLUDED.days,
            is_enabled = EXCLUDED.is_enabled
    `, slot.SubscriptionID, slot.SlotType, slot.MilkType, slot.Quantity, slot.TimeSlot, slot.Frequency, days(slot.Days), slot.IsEnabled)
	if err != nil {
		return fmt.Errorf("failed to upsert %s slot of subscription %d: %w", slot.SlotType, slot.SubscriptionID, err)
	}
	return nil
}

func (r *SlotRepo) ListBySubscriptions(ctx context.Context, q db.Querier, subscriptionIDs []int64) ([]*repository.Slot, error) {
	var slots []*repository.Slot
	if len(subscriptionIDs) == 0 {
		return slots, nil
	}
	err := q.Select(ctx, &slots, `
        SELECT `+slotColumns+`
        FROM subscription_slots
        WHERE subscription_id = ANY($1)
        ORDER BY subscription_id, slot_type DESC
    `, subscriptionIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}
	return slots, nil
}

// days keeps NULL out of the TEXT[] column.
func days(d []string) []string {
	if d == nil {
		return []string{}
	}
	return d
}
