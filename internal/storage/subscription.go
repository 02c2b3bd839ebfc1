package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/db"
	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/metrics"
	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/repository"
	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/schedule"
)

// CreateSubscription replaces the user's current subscription with a new active one
// and books its deliveries for the lookahead window.
func (s *Storage) CreateSubscription(ctx context.Context, userID string, doc SubscriptionDoc) (*SubscriptionDoc, error) {
	plan, err := ParseSubscription(doc)
	if err != nil {
		return nil, err
	}

	now := s.now()
	open := firstOpenDay(now)
	var created SubscriptionDoc
	var booked int

	err = db.WithTx(ctx, s.db, func(tx db.Tx) error {
		if _, err := s.subscriptions.CancelByUser(ctx, tx, userID); err != nil {
			return err
		}
		if _, err := s.deliveries.DeletePendingFrom(ctx, tx, userID, open); err != nil {
			return err
		}

		rec := &repository.Subscription{
			UserID:       userID,
			CustomerName: doc.CustomerName,
			Address:      doc.Address,
			AddressID:    doc.AddressID,
			Status:       repository.SubscriptionActive,
			AutoPay:      doc.AutoPay,
			CreatedAt:    now.UTC(),
			UpdatedAt:    now.UTC(),
		}
		id, err := s.subscriptions.Create(ctx, tx, rec)
		if err != nil {
			return err
		}
		rec.ID = id

		slots := make([]*repository.Slot, 0, 2)
		for _, name := range []schedule.SlotName{schedule.Morning, schedule.Evening} {
			row := slotRow(id, name, plan.Slot(name))
			slotID, err := s.slots.Create(ctx, tx, row)
			if err != nil {
				return err
			}
			row.ID = slotID
			slots = append(slots, row)
		}

		booked, err = s.generateFor(ctx, tx, rec, slots, open, schedule.LookaheadDays)
		if err != nil {
			return err
		}

		created = docFromRecord(rec, slots)
		return s.enqueueEvent(ctx, tx, repository.DeliveryEventPayload{
			Event:          repository.EventSubscriptionCreated,
			UserID:         userID,
			SubscriptionID: id,
			NewStatus:      repository.SubscriptionActive,
		})
	})
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("create_subscription").Inc()
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	metrics.SubscriptionsCreatedTotal.Inc()
	metrics.DeliveriesGeneratedTotal.Add(float64(booked))
	s.putSnapshot(ctx, userID, created)
	s.logger.Info("subscription created",
		zap.String("user_id", userID),
		zap.Int64("subscription_id", created.ID),
		zap.Int("deliveries", booked))
	return &created, nil
}

// UpdateSubscription rewrites the slots of the current subscription and rebooks
// every delivery that can still be changed. Skipped days stay skipped.
func (s *Storage) UpdateSubscription(ctx context.Context, userID string, doc SubscriptionDoc) (*SubscriptionDoc, error) {
	plan, err := ParseSubscription(doc)
	if err != nil {
		return nil, err
	}

	now := s.now()
	open := firstOpenDay(now)
	var updated SubscriptionDoc

	err = db.WithTx(ctx, s.db, func(tx db.Tx) error {
		rec, err := s.subscriptions.GetCurrentByUser(ctx, tx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrObjectNotFound) {
				return ErrSubscriptionNotFound
			}
			return err
		}

		rec.CustomerName = doc.CustomerName
		rec.Address = doc.Address
		rec.AddressID = doc.AddressID
		rec.AutoPay = doc.AutoPay
		rec.UpdatedAt = now.UTC()
		if err := s.subscriptions.Update(ctx, tx, rec); err != nil {
			return err
		}

		for _, name := range []schedule.SlotName{schedule.Morning, schedule.Evening} {
			if err := s.slots.Upsert(ctx, tx, slotRow(rec.ID, name, plan.Slot(name))); err != nil {
				return err
			}
		}
		slots, err := s.slots.ListBySubscriptions(ctx, tx, []int64{rec.ID})
		if err != nil {
			return err
		}

		if _, err := s.deliveries.DeletePendingFrom(ctx, tx, userID, open); err != nil {
			return err
		}
		if rec.Status == repository.SubscriptionActive {
			if _, err := s.generateFor(ctx, tx, rec, slots, open, schedule.LookaheadDays); err != nil {
				return err
			}
		}

		updated = docFromRecord(rec, slots)
		return s.enqueueEvent(ctx, tx, repository.DeliveryEventPayload{
			Event:          repository.EventSubscriptionUpdated,
			UserID:         userID,
			SubscriptionID: rec.ID,
		})
	})
	if err != nil {
		if errors.Is(err, ErrSubscriptionNotFound) {
			return nil, err
		}
		metrics.OperationErrorsTotal.WithLabelValues("update_subscription").Inc()
		return nil, fmt.Errorf("failed to update subscription: %w", err)
	}

	s.putSnapshot(ctx, userID, updated)
	return &updated, nil
}

func (s *Storage) GetSubscription(ctx context.Context, userID string) (*SubscriptionDoc, error) {
	data, err := s.loadSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, ErrSubscriptionNotFound
	}
	var doc SubscriptionDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		s.logger.Warn("unreadable subscription snapshot", zap.String("user_id", userID), zap.Error(err))
		return nil, ErrSubscriptionNotFound
	}
	return &doc, nil
}

// CancelSubscription cancels the user's subscription and drops its open deliveries.
func (s *Storage) CancelSubscription(ctx context.Context, userID string) error {
	open := firstOpenDay(s.now())
	err := db.WithTx(ctx, s.db, func(tx db.Tx) error {
		cancelled, err := s.subscriptions.CancelByUser(ctx, tx, userID)
		if err != nil {
			return err
		}
		if cancelled == 0 {
			return ErrSubscriptionNotFound
		}
		if _, err := s.deliveries.DeletePendingFrom(ctx, tx, userID, open); err != nil {
			return err
		}
		return s.enqueueEvent(ctx, tx, repository.DeliveryEventPayload{
			Event:     repository.EventSubscriptionStatus,
			UserID:    userID,
			NewStatus: repository.SubscriptionCancelled,
		})
	})
	if err != nil {
		if errors.Is(err, ErrSubscriptionNotFound) {
			return err
		}
		return fmt.Errorf("failed to cancel subscription: %w", err)
	}
	s.dropSnapshot(ctx, userID)
	return nil
}

// SetSubscriptionStatus moves a subscription between Active, Paused and Cancelled.
// Pausing or cancelling drops open deliveries; resuming books them again.
func (s *Storage) SetSubscriptionStatus(ctx context.Context, id int64, status string) error {
	switch status {
	case repository.SubscriptionActive, repository.SubscriptionPaused, repository.SubscriptionCancelled:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	now := s.now()
	open := firstOpenDay(now)
	var userID string

	err := db.WithTx(ctx, s.db, func(tx db.Tx) error {
		rec, err := s.subscriptions.GetByID(ctx, tx, id)
		if err != nil {
			if errors.Is(err, repository.ErrObjectNotFound) {
				return ErrSubscriptionNotFound
			}
			return err
		}
		userID = rec.UserID
		if rec.Status == status {
			return nil
		}
		if rec.Status == repository.SubscriptionCancelled {
			return fmt.Errorf("%w: cancelled subscriptions cannot be reopened", ErrInvalidStatus)
		}

		if err := s.subscriptions.UpdateStatus(ctx, tx, id, status); err != nil {
			return err
		}
		if status == repository.SubscriptionActive {
			slots, err := s.slots.ListBySubscriptions(ctx, tx, []int64{id})
			if err != nil {
				return err
			}
			if _, err := s.generateFor(ctx, tx, rec, slots, open, schedule.LookaheadDays); err != nil {
				return err
			}
		} else if _, err := s.deliveries.DeletePendingFrom(ctx, tx, rec.UserID, open); err != nil {
			return err
		}

		return s.enqueueEvent(ctx, tx, repository.DeliveryEventPayload{
			Event:          repository.EventSubscriptionStatus,
			UserID:         rec.UserID,
			SubscriptionID: id,
			OldStatus:      rec.Status,
			NewStatus:      status,
		})
	})
	if err != nil {
		if errors.Is(err, ErrSubscriptionNotFound) || errors.Is(err, ErrInvalidStatus) {
			return err
		}
		return fmt.Errorf("failed to set subscription status: %w", err)
	}

	s.dropSnapshot(ctx, userID)
	return nil
}

// ListSubscriptions returns every subscription that is not cancelled, newest first.
func (s *Storage) ListSubscriptions(ctx context.Context) ([]SubscriptionDoc, error) {
	subs, err := s.subscriptions.ListByStatus(ctx, s.db, repository.SubscriptionActive, repository.SubscriptionPaused)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	slots, err := s.slots.ListBySubscriptions(ctx, s.db, subscriptionIDs(subs))
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	docs := make([]SubscriptionDoc, 0, len(subs))
	for _, sub := range subs {
		docs = append(docs, docFromRecord(sub, slots))
	}
	return docs, nil
}

// SnapshotDocs serializes the current subscription of every user, for warming a snapshot store.
func (s *Storage) SnapshotDocs(ctx context.Context) (map[string][]byte, error) {
	docs, err := s.ListSubscriptions(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]byte, len(docs))
	for _, doc := range docs {
		data, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal snapshot of %s: %w", doc.UserID, err)
		}
		out[doc.UserID] = data
	}
	return out, nil
}

func (s *Storage) NextDelivery(ctx context.Context, userID string) (schedule.NextDelivery, error) {
	stored, err := s.storedSubscription(ctx, userID)
	if err != nil {
		return schedule.NextDelivery{}, err
	}
	return s.cutoffs.FindNextDelivery(stored.Active(), s.now()), nil
}

func (s *Storage) Upcoming(ctx context.Context, userID string, opts schedule.UpcomingOptions) ([]schedule.DeliveryOption, error) {
	stored, err := s.storedSubscription(ctx, userID)
	if err != nil {
		return nil, err
	}
	return schedule.FindUpcomingDeliveries(stored.Active(), s.now(), opts), nil
}

// Cost prices one week of the user's plan at current prices, whatever its status.
func (s *Storage) Cost(ctx context.Context, userID string) (*WeeklyCost, error) {
	stored, err := s.storedSubscription(ctx, userID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, ErrSubscriptionNotFound
	}
	prices, err := s.priceTable(ctx)
	if err != nil {
		return nil, err
	}
	morning := schedule.WeeklyCost(stored.Plan.Morning, prices)
	evening := schedule.WeeklyCost(stored.Plan.Evening, prices)
	return &WeeklyCost{
		Morning: morning,
		Evening: evening,
		Total:   schedule.TotalWeeklyCost(&stored.Plan, prices),
	}, nil
}

func (s *Storage) storedSubscription(ctx context.Context, userID string) (*StoredSubscription, error) {
	data, err := s.loadSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	return DecodeStoredSubscription(data), nil
}

// loadSnapshot returns the user's subscription document, reading through to
// Postgres when the snapshot store has no entry. nil means no subscription.
func (s *Storage) loadSnapshot(ctx context.Context, userID string) ([]byte, error) {
	if s.snapshots != nil {
		data, ok, err := s.snapshots.Get(ctx, userID)
		if err != nil {
			s.logger.Warn("snapshot read failed", zap.String("user_id", userID), zap.Error(err))
		} else if ok {
			return data, nil
		}
	}

	rec, err := s.subscriptions.GetCurrentByUser(ctx, s.db, userID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	slots, err := s.slots.ListBySubscriptions(ctx, s.db, []int64{rec.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription slots: %w", err)
	}
	return s.putSnapshot(ctx, userID, docFromRecord(rec, slots)), nil
}

func (s *Storage) putSnapshot(ctx context.Context, userID string, doc SubscriptionDoc) []byte {
	data, err := json.Marshal(doc)
	if err != nil {
		s.logger.Error("failed to marshal subscription snapshot", zap.String("user_id", userID), zap.Error(err))
		return nil
	}
	if s.snapshots == nil {
		return data
	}
	if err := s.snapshots.Put(ctx, userID, data); err != nil {
		s.logger.Warn("snapshot write failed", zap.String("user_id", userID), zap.Error(err))
	}
	return data
}

func (s *Storage) dropSnapshot(ctx context.Context, userID string) {
	if s.snapshots == nil || userID == "" {
		return
	}
	if err := s.snapshots.Delete(ctx, userID); err != nil {
		s.logger.Warn("snapshot delete failed", zap.String("user_id", userID), zap.Error(err))
	}
}

func subscriptionIDs(subs []*repository.Subscription) []int64 {
	ids := make([]int64, 0, len(subs))
	for _, sub := range subs {
		ids = append(ids, sub.ID)
	}
	return ids
}
