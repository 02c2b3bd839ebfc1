package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/db"
	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/metrics"
	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/repository"
	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/schedule"
)

// Schedule is the customer's calendar for the next days with skips applied.
func (s *Storage) Schedule(ctx context.Context, userID string, days int) ([]schedule.PlannedDelivery, error) {
	if days <= 0 {
		days = schedule.DefaultPlanDays
	}
	stored, err := s.storedSubscription(ctx, userID)
	if err != nil {
		return nil, err
	}
	plan := stored.Active()
	if plan == nil {
		return []schedule.PlannedDelivery{}, nil
	}

	now := s.now()
	from := dayOf(now).AddDate(0, 0, 1)
	to := from.AddDate(0, 0, days-1)
	rows, err := s.deliveries.ListBySubscriptionRange(ctx, s.db, stored.ID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load skipped deliveries: %w", err)
	}
	skipped := make(map[string]bool)
	for _, row := range rows {
		if row.Status != repository.DeliverySkipped {
			continue
		}
		day := time.Date(row.DeliveryDate.Year(), row.DeliveryDate.Month(), row.DeliveryDate.Day(), 0, 0, 0, 0, s.loc)
		skipped[schedule.SkipKey(day, schedule.SlotName(row.SlotType))] = true
	}

	out := schedule.PlanDays(plan, now, days, skipped)
	if out == nil {
		out = []schedule.PlannedDelivery{}
	}
	return out, nil
}

// SkipDelivery marks the slot named by key as skipped. Skipping twice is a no-op.
func (s *Storage) SkipDelivery(ctx context.Context, userID, key string) error {
	date, slotName, stored, err := s.modifiable(ctx, userID, key)
	if err != nil {
		return err
	}

	changed := false
	err = db.WithTx(ctx, s.db, func(tx db.Tx) error {
		existing, err := s.deliveries.GetBySlotDate(ctx, tx, stored.ID, string(slotName), date)
		switch {
		case errors.Is(err, repository.ErrObjectNotFound):
			slots, err := s.slots.ListBySubscriptions(ctx, tx, []int64{stored.ID})
			if err != nil {
				return err
			}
			row := findSlot(slots, slotName)
			if row == nil {
				return ErrNotScheduled
			}
			rec := &repository.Subscription{
				ID:           stored.ID,
				UserID:       userID,
				Address:      stored.Address,
				CustomerName: stored.CustomerName,
			}
			if _, err := s.deliveries.CreateIfAbsent(ctx, tx, newDelivery(rec, row, date, repository.DeliverySkipped)); err != nil {
				return err
			}
		case err != nil:
			return err
		case existing.Status == repository.DeliverySkipped:
			return nil
		case existing.Status != repository.DeliveryPending:
			return ErrDeliveryLocked
		default:
			if err := s.deliveries.UpdateStatus(ctx, tx, existing.ID, repository.DeliverySkipped, nil, nil); err != nil {
				return err
			}
		}

		changed = true
		return s.enqueueEvent(ctx, tx, repository.DeliveryEventPayload{
			Event:          repository.EventDeliverySkipped,
			UserID:         userID,
			SubscriptionID: stored.ID,
			DeliveryDate:   date.Format(dateLayout),
			Slot:           string(slotName),
			NewStatus:      repository.DeliverySkipped,
		})
	})
	if err != nil {
		if errors.Is(err, ErrNotScheduled) || errors.Is(err, ErrDeliveryLocked) {
			return err
		}
		return fmt.Errorf("failed to skip delivery: %w", err)
	}
	if changed {
		metrics.DeliveriesSkippedTotal.Inc()
	}
	return nil
}

// UnskipDelivery puts a skipped slot back on the route. Restoring a slot that
// was never skipped is a no-op.
func (s *Storage) UnskipDelivery(ctx context.Context, userID, key string) error {
	date, slotName, stored, err := s.modifiable(ctx, userID, key)
	if err != nil {
		return err
	}

	err = db.WithTx(ctx, s.db, func(tx db.Tx) error {
		existing, err := s.deliveries.GetBySlotDate(ctx, tx, stored.ID, string(slotName), date)
		if err != nil {
			if errors.Is(err, repository.ErrObjectNotFound) {
				return nil
			}
			return err
		}
		if existing.Status != repository.DeliverySkipped {
			return nil
		}
		if err := s.deliveries.UpdateStatus(ctx, tx, existing.ID, repository.DeliveryPending, nil, nil); err != nil {
			return err
		}
		return s.enqueueEvent(ctx, tx, repository.DeliveryEventPayload{
			Event:          repository.EventDeliveryRestored,
			UserID:         userID,
			SubscriptionID: stored.ID,
			DeliveryID:     existing.ID,
			DeliveryDate:   date.Format(dateLayout),
			Slot:           string(slotName),
			OldStatus:      repository.DeliverySkipped,
			NewStatus:      repository.DeliveryPending,
		})
	})
	if err != nil {
		return fmt.Errorf("failed to restore delivery: %w", err)
	}
	return nil
}

// modifiable resolves a skip key and checks that the slot can still be changed.
func (s *Storage) modifiable(ctx context.Context, userID, key string) (time.Time, schedule.SlotName, *StoredSubscription, error) {
	date, slotName, err := schedule.ParseSkipKey(key, s.loc)
	if err != nil {
		return time.Time{}, "", nil, fmt.Errorf("%w: %w", ErrInvalidSkipKey, err)
	}
	if !schedule.CanModify(date, s.now()) {
		return time.Time{}, "", nil, ErrDeliveryLocked
	}

	stored, err := s.storedSubscription(ctx, userID)
	if err != nil {
		return time.Time{}, "", nil, err
	}
	plan := stored.Active()
	if plan == nil {
		return time.Time{}, "", nil, ErrSubscriptionNotFound
	}
	if !schedule.IsScheduled(plan.Slot(slotName), date) {
		return time.Time{}, "", nil, ErrNotScheduled
	}
	return date, slotName, stored, nil
}

func (s *Storage) ListDeliveries(ctx context.Context, date time.Time) ([]Delivery, error) {
	rows, err := s.deliveries.ListByDate(ctx, s.db, dayOf(date.In(s.loc)))
	if err != nil {
		return nil, err
	}
	out := make([]Delivery, 0, len(rows))
	for _, row := range rows {
		out = append(out, deliveryFromRow(row))
	}
	return out, nil
}

// UpdateDeliveryStatus records the outcome of a delivery. Marking it delivered
// stamps the time and courier and books the litres as sold.
func (s *Storage) UpdateDeliveryStatus(ctx context.Context, id int64, status, deliveredBy string) (*Delivery, error) {
	switch status {
	case repository.DeliveryPending, repository.DeliveryDelivered, repository.DeliverySkipped:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	var result Delivery
	err := db.WithTx(ctx, s.db, func(tx db.Tx) error {
		row, err := s.deliveries.GetByID(ctx, tx, id)
		if err != nil {
			if errors.Is(err, repository.ErrObjectNotFound) {
				return ErrDeliveryNotFound
			}
			return err
		}
		old := row.Status
		if old == status {
			result = deliveryFromRow(row)
			return nil
		}

		var at *time.Time
		var by *string
		if status == repository.DeliveryDelivered {
			now := s.timeNow().UTC()
			at = &now
			if deliveredBy != "" {
				by = &deliveredBy
			}
			if err := s.inventory.RecordSale(ctx, tx, row.DeliveryDate, row.MilkType, row.Quantity); err != nil {
				return err
			}
		} else if old == repository.DeliveryDelivered {
			if err := s.inventory.RecordSale(ctx, tx, row.DeliveryDate, row.MilkType, row.Quantity.Neg()); err != nil {
				return err
			}
		}

		if err := s.deliveries.UpdateStatus(ctx, tx, id, status, at, by); err != nil {
			return err
		}
		row.Status, row.DeliveredAt, row.DeliveredBy = status, at, by
		result = deliveryFromRow(row)

		return s.enqueueEvent(ctx, tx, repository.DeliveryEventPayload{
			Event:          repository.EventDeliveryStatusChanged,
			UserID:         row.UserID,
			SubscriptionID: row.SubscriptionID,
			DeliveryID:     id,
			DeliveryDate:   row.DeliveryDate.Format(dateLayout),
			Slot:           row.SlotType,
			OldStatus:      old,
			NewStatus:      status,
		})
	})
	if err != nil {
		if errors.Is(err, ErrDeliveryNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update delivery %d: %w", id, err)
	}

	metrics.DeliveryStatusTotal.WithLabelValues(status).Inc()
	return &result, nil
}

// GenerateDeliveries books pending deliveries for every active subscription in
// [from, from+days). Existing rows are left alone, so repeated runs are safe.
func (s *Storage) GenerateDeliveries(ctx context.Context, from time.Time, days int) (int, error) {
	if days <= 0 {
		days = schedule.LookaheadDays
	}
	from = dayOf(from.In(s.loc))

	subs, err := s.subscriptions.ListByStatus(ctx, s.db, repository.SubscriptionActive)
	if err != nil {
		return 0, fmt.Errorf("failed to list active subscriptions: %w", err)
	}
	slots, err := s.slots.ListBySubscriptions(ctx, s.db, subscriptionIDs(subs))
	if err != nil {
		return 0, fmt.Errorf("failed to list slots: %w", err)
	}

	total := 0
	for _, sub := range subs {
		var created int
		err := db.WithTx(ctx, s.db, func(tx db.Tx) error {
			var err error
			created, err = s.generateFor(ctx, tx, sub, slots, from, days)
			return err
		})
		if err != nil {
			metrics.OperationErrorsTotal.WithLabelValues("generate_deliveries").Inc()
			return total, fmt.Errorf("failed to generate deliveries of subscription %d: %w", sub.ID, err)
		}
		total += created
	}

	metrics.DeliveriesGeneratedTotal.Add(float64(total))
	s.logger.Info("deliveries generated",
		zap.String("from", from.Format(dateLayout)),
		zap.Int("days", days),
		zap.Int("subscriptions", len(subs)),
		zap.Int("created", total))
	return total, nil
}

func (s *Storage) generateFor(ctx context.Context, q db.Querier, sub *repository.Subscription, slots []*repository.Slot, from time.Time, days int) (int, error) {
	created := 0
	for _, row := range slots {
		if row.SubscriptionID != sub.ID {
			continue
		}
		for _, day := range schedule.Occurrences(slotConfigFromRow(row), from, days) {
			ok, err := s.deliveries.CreateIfAbsent(ctx, q, newDelivery(sub, row, day, repository.DeliveryPending))
			if err != nil {
				return created, err
			}
			if ok {
				created++
			}
		}
	}
	return created, nil
}

func newDelivery(sub *repository.Subscription, slot *repository.Slot, day time.Time, status string) *repository.Delivery {
	return &repository.Delivery{
		SubscriptionID: sub.ID,
		SlotID:         slot.ID,
		UserID:         sub.UserID,
		DeliveryDate:   day,
		SlotType:       slot.SlotType,
		Quantity:       slot.Quantity,
		MilkType:       slot.MilkType,
		Address:        sub.Address,
		CustomerName:   sub.CustomerName,
		Status:         status,
	}
}

func findSlot(slots []*repository.Slot, name schedule.SlotName) *repository.Slot {
	for _, row := range slots {
		if row.SlotType == string(name) {
			return row
		}
	}
	return nil
}
