package storage

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/db"
	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/repository"
	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/schedule"
)

func TestStorage_CreateSubscription(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := newFixture(t)
		doc := activeDoc(dailySlot("buffalo", "1"), offSlot())

		f.expectTx()
		f.subscriptions.EXPECT().CancelByUser(f.ctx, f.tx, "u1").Return(int64(1), nil)
		f.deliveries.EXPECT().DeletePendingFrom(f.ctx, f.tx, "u1", day(5)).Return(int64(3), nil)
		f.subscriptions.EXPECT().Create(f.ctx, f.tx, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ db.Querier, sub *repository.Subscription) (int64, error) {
				assert.Equal(t, "u1", sub.UserID)
				assert.Equal(t, repository.SubscriptionActive, sub.Status)
				assert.Equal(t, "12 MG Road", sub.Address)
				return 7, nil
			})

		nextSlotID := int64(10)
		f.slots.EXPECT().Create(f.ctx, f.tx, gomock.Any()).Times(2).DoAndReturn(
			func(_ context.Context, _ db.Querier, slot *repository.Slot) (int64, error) {
				assert.Equal(t, int64(7), slot.SubscriptionID)
				nextSlotID++
				return nextSlotID, nil
			})

		var booked []*repository.Delivery
		f.deliveries.EXPECT().CreateIfAbsent(f.ctx, f.tx, gomock.Any()).AnyTimes().DoAndReturn(
			func(_ context.Context, _ db.Querier, d *repository.Delivery) (bool, error) {
				booked = append(booked, d)
				return true, nil
			})

		f.outbox.EXPECT().Create(f.ctx, f.tx, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ db.Querier, task *repository.OutboxTask) error {
				assert.Equal(t, "milk-events", task.Topic)
				assert.Equal(t, "u1", task.Key)

				var event repository.DeliveryEventPayload
				require.NoError(t, json.Unmarshal(task.Payload, &event))
				assert.Equal(t, repository.EventSubscriptionCreated, event.Event)
				assert.Equal(t, int64(7), event.SubscriptionID)
				return nil
			})
		f.snapshots.EXPECT().Put(f.ctx, "u1", gomock.Any()).Return(nil)

		created, err := f.storage.CreateSubscription(f.ctx, "u1", doc)
		require.NoError(t, err)

		assert.Equal(t, int64(7), created.ID)
		assert.Equal(t, "Active", created.Status)
		assert.True(t, created.Morning.Enabled)
		assert.False(t, created.Evening.Enabled)

		require.Len(t, booked, schedule.LookaheadDays)
		assert.Equal(t, day(5), booked[0].DeliveryDate)
		assert.Equal(t, day(11), booked[6].DeliveryDate)
		for _, d := range booked {
			assert.Equal(t, "morning", d.SlotType)
			assert.Equal(t, int64(11), d.SlotID)
			assert.Equal(t, repository.DeliveryPending, d.Status)
		}
	})

	t.Run("invalid document never reaches the database", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.storage.CreateSubscription(f.ctx, "u1", activeDoc(offSlot(), offSlot()))

		assert.ErrorIs(t, err, ErrInvalidSubscription)
	})

	t.Run("repository error rolls back", func(t *testing.T) {
		f := newFixture(t)

		f.expectRollback()
		f.subscriptions.EXPECT().CancelByUser(f.ctx, f.tx, "u1").Return(int64(0), errors.New("connection reset"))

		_, err := f.storage.CreateSubscription(f.ctx, "u1", activeDoc(dailySlot("cow", "1"), offSlot()))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create subscription")
	})
}

func TestStorage_UpdateSubscription(t *testing.T) {
	t.Run("rebooks open days", func(t *testing.T) {
		f := newFixture(t)
		doc := activeDoc(offSlot(), customSlot("cow", "2", "Wed", "Fri"))
		rec := &repository.Subscription{ID: 7, UserID: "u1", Status: repository.SubscriptionActive}

		f.expectTx()
		f.subscriptions.EXPECT().GetCurrentByUser(f.ctx, f.tx, "u1").Return(rec, nil)
		f.subscriptions.EXPECT().Update(f.ctx, f.tx, rec).Return(nil)
		f.slots.EXPECT().Upsert(f.ctx, f.tx, gomock.Any()).Times(2).Return(nil)
		f.slots.EXPECT().ListBySubscriptions(f.ctx, f.tx, []int64{7}).Return([]*repository.Slot{
			{ID: 1, SubscriptionID: 7, SlotType: "morning", MilkType: "cow", Quantity: decimal.NewFromInt(1), Frequency: "daily", IsEnabled: false},
			{ID: 2, SubscriptionID: 7, SlotType: "evening", MilkType: "cow", Quantity: decimal.NewFromInt(2), Frequency: "alternate", Days: []string{"Wed", "Fri"}, IsEnabled: true},
		}, nil)
		f.deliveries.EXPECT().DeletePendingFrom(f.ctx, f.tx, "u1", day(5)).Return(int64(7), nil)

		var dates []int
		f.deliveries.EXPECT().CreateIfAbsent(f.ctx, f.tx, gomock.Any()).Times(2).DoAndReturn(
			func(_ context.Context, _ db.Querier, d *repository.Delivery) (bool, error) {
				dates = append(dates, d.DeliveryDate.Day())
				return true, nil
			})
		f.outbox.EXPECT().Create(f.ctx, f.tx, gomock.Any()).Return(nil)
		f.snapshots.EXPECT().Put(f.ctx, "u1", gomock.Any()).Return(nil)

		updated, err := f.storage.UpdateSubscription(f.ctx, "u1", doc)
		require.NoError(t, err)

		assert.Equal(t, []int{6, 8}, dates)
		assert.Equal(t, "12 MG Road", rec.Address)
		assert.Equal(t, []string{"Wed", "Fri"}, updated.Evening.Days)
	})

	t.Run("no current subscription", func(t *testing.T) {
		f := newFixture(t)

		f.expectRollback()
		f.subscriptions.EXPECT().GetCurrentByUser(f.ctx, f.tx, "u1").Return(nil, repository.ErrObjectNotFound)

		_, err := f.storage.UpdateSubscription(f.ctx, "u1", activeDoc(dailySlot("cow", "1"), offSlot()))

		assert.ErrorIs(t, err, ErrSubscriptionNotFound)
	})
}

func TestStorage_GetSubscription(t *testing.T) {
	t.Run("snapshot hit", func(t *testing.T) {
		f := newFixture(t)
		f.expectSnapshot(t, "u1", activeDoc(dailySlot("cow", "1"), offSlot()))

		doc, err := f.storage.GetSubscription(f.ctx, "u1")

		require.NoError(t, err)
		assert.Equal(t, int64(7), doc.ID)
		assert.Equal(t, "cow", doc.Morning.Type)
	})

	t.Run("miss reads through and fills the snapshot", func(t *testing.T) {
		f := newFixture(t)
		rec := &repository.Subscription{ID: 9, UserID: "u2", Status: repository.SubscriptionPaused, Address: "Domlur"}

		f.snapshots.EXPECT().Get(f.ctx, "u2").Return(nil, false, nil)
		f.subscriptions.EXPECT().GetCurrentByUser(f.ctx, f.db, "u2").Return(rec, nil)
		f.slots.EXPECT().ListBySubscriptions(f.ctx, f.db, []int64{9}).Return([]*repository.Slot{
			{ID: 1, SubscriptionID: 9, SlotType: "evening", MilkType: "buffalo", Quantity: decimal.RequireFromString("0.5"), Frequency: "daily", IsEnabled: true},
		}, nil)
		f.snapshots.EXPECT().Put(f.ctx, "u2", gomock.Any()).Return(nil)

		doc, err := f.storage.GetSubscription(f.ctx, "u2")

		require.NoError(t, err)
		assert.Equal(t, "Paused", doc.Status)
		assert.True(t, doc.Evening.Enabled)
		assert.False(t, doc.Morning.Enabled)
		assert.Equal(t, schedule.DefaultMorningWindow, doc.Morning.Time)
	})

	t.Run("snapshot store failure falls back to postgres", func(t *testing.T) {
		f := newFixture(t)

		f.snapshots.EXPECT().Get(f.ctx, "u3").Return(nil, false, errors.New("redis down"))
		f.subscriptions.EXPECT().GetCurrentByUser(f.ctx, f.db, "u3").Return(nil, repository.ErrObjectNotFound)

		_, err := f.storage.GetSubscription(f.ctx, "u3")

		assert.ErrorIs(t, err, ErrSubscriptionNotFound)
	})
}

func TestStorage_NextDelivery(t *testing.T) {
	t.Run("active subscription", func(t *testing.T) {
		f := newFixture(t)
		f.expectSnapshot(t, "u1", activeDoc(dailySlot("buffalo", "1.5"), offSlot()))

		next, err := f.storage.NextDelivery(f.ctx, "u1")

		require.NoError(t, err)
		assert.Equal(t, schedule.Morning, next.Slot)
		assert.Equal(t, "Tomorrow", next.Label)
		assert.Equal(t, "1.5L Buffalo Milk", next.Detail)
	})

	t.Run("paused subscription", func(t *testing.T) {
		f := newFixture(t)
		doc := activeDoc(dailySlot("buffalo", "1"), offSlot())
		doc.Status = repository.SubscriptionPaused
		f.expectSnapshot(t, "u1", doc)

		next, err := f.storage.NextDelivery(f.ctx, "u1")

		require.NoError(t, err)
		assert.True(t, next.Paused())
	})

	t.Run("no subscription", func(t *testing.T) {
		f := newFixture(t)
		f.snapshots.EXPECT().Get(f.ctx, "u1").Return(nil, false, nil)
		f.subscriptions.EXPECT().GetCurrentByUser(f.ctx, f.db, "u1").Return(nil, repository.ErrObjectNotFound)

		next, err := f.storage.NextDelivery(f.ctx, "u1")

		require.NoError(t, err)
		assert.True(t, next.Paused())
		assert.Equal(t, "Paused", next.Label)
	})
}

func TestStorage_Upcoming(t *testing.T) {
	f := newFixture(t)
	f.expectSnapshot(t, "u1", activeDoc(offSlot(), customSlot("cow", "1", "Wed")))

	options, err := f.storage.Upcoming(f.ctx, "u1", schedule.UpcomingOptions{})

	require.NoError(t, err)
	require.Len(t, options, 1)
	assert.Equal(t, "milk_evening_2", options[0].ID)
	assert.True(t, options[0].Fee.IsZero())
}

func TestStorage_Cost(t *testing.T) {
	f := newFixture(t)
	f.expectSnapshot(t, "u1", activeDoc(dailySlot("buffalo", "1"), customSlot("cow", "0.5", "Mon", "Thu")))
	f.pricing.EXPECT().List(f.ctx, f.db).Return([]*repository.Price{
		{MilkType: "buffalo", Price: decimal.NewFromInt(90)},
		{MilkType: "cow", Price: decimal.NewFromInt(60)},
	}, nil)

	cost, err := f.storage.Cost(f.ctx, "u1")

	require.NoError(t, err)
	assert.True(t, cost.Morning.Equal(decimal.NewFromInt(630)), cost.Morning.String())
	assert.True(t, cost.Evening.Equal(decimal.NewFromInt(60)), cost.Evening.String())
	assert.True(t, cost.Total.Equal(decimal.NewFromInt(690)), cost.Total.String())
}

func TestStorage_CancelSubscription(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := newFixture(t)

		f.expectTx()
		f.subscriptions.EXPECT().CancelByUser(f.ctx, f.tx, "u1").Return(int64(1), nil)
		f.deliveries.EXPECT().DeletePendingFrom(f.ctx, f.tx, "u1", day(5)).Return(int64(5), nil)
		f.outbox.EXPECT().Create(f.ctx, f.tx, gomock.Any()).Return(nil)
		f.snapshots.EXPECT().Delete(f.ctx, "u1").Return(nil)

		assert.NoError(t, f.storage.CancelSubscription(f.ctx, "u1"))
	})

	t.Run("nothing to cancel", func(t *testing.T) {
		f := newFixture(t)

		f.expectRollback()
		f.subscriptions.EXPECT().CancelByUser(f.ctx, f.tx, "u1").Return(int64(0), nil)

		assert.ErrorIs(t, f.storage.CancelSubscription(f.ctx, "u1"), ErrSubscriptionNotFound)
	})
}

func TestStorage_SetSubscriptionStatus(t *testing.T) {
	t.Run("pause drops open deliveries", func(t *testing.T) {
		f := newFixture(t)
		rec := &repository.Subscription{ID: 7, UserID: "u1", Status: repository.SubscriptionActive}

		f.expectTx()
		f.subscriptions.EXPECT().GetByID(f.ctx, f.tx, int64(7)).Return(rec, nil)
		f.subscriptions.EXPECT().UpdateStatus(f.ctx, f.tx, int64(7), repository.SubscriptionPaused).Return(nil)
		f.deliveries.EXPECT().DeletePendingFrom(f.ctx, f.tx, "u1", day(5)).Return(int64(4), nil)
		f.outbox.EXPECT().Create(f.ctx, f.tx, gomock.Any()).Return(nil)
		f.snapshots.EXPECT().Delete(f.ctx, "u1").Return(nil)

		assert.NoError(t, f.storage.SetSubscriptionStatus(f.ctx, 7, repository.SubscriptionPaused))
	})

	t.Run("resume books deliveries again", func(t *testing.T) {
		f := newFixture(t)
		rec := &repository.Subscription{ID: 7, UserID: "u1", Status: repository.SubscriptionPaused}

		f.expectTx()
		f.subscriptions.EXPECT().GetByID(f.ctx, f.tx, int64(7)).Return(rec, nil)
		f.subscriptions.EXPECT().UpdateStatus(f.ctx, f.tx, int64(7), repository.SubscriptionActive).Return(nil)
		f.slots.EXPECT().ListBySubscriptions(f.ctx, f.tx, []int64{7}).Return([]*repository.Slot{
			{ID: 1, SubscriptionID: 7, SlotType: "morning", MilkType: "cow", Quantity: decimal.NewFromInt(1), Frequency: "daily", IsEnabled: true},
		}, nil)
		f.deliveries.EXPECT().CreateIfAbsent(f.ctx, f.tx, gomock.Any()).Times(schedule.LookaheadDays).Return(true, nil)
		f.outbox.EXPECT().Create(f.ctx, f.tx, gomock.Any()).Return(nil)
		f.snapshots.EXPECT().Delete(f.ctx, "u1").Return(nil)

		assert.NoError(t, f.storage.SetSubscriptionStatus(f.ctx, 7, repository.SubscriptionActive))
	})

	t.Run("cancelled cannot be reopened", func(t *testing.T) {
		f := newFixture(t)
		rec := &repository.Subscription{ID: 7, UserID: "u1", Status: repository.SubscriptionCancelled}

		f.expectRollback()
		f.subscriptions.EXPECT().GetByID(f.ctx, f.tx, int64(7)).Return(rec, nil)

		assert.ErrorIs(t, f.storage.SetSubscriptionStatus(f.ctx, 7, repository.SubscriptionActive), ErrInvalidStatus)
	})

	t.Run("unknown status", func(t *testing.T) {
		f := newFixture(t)

		assert.ErrorIs(t, f.storage.SetSubscriptionStatus(f.ctx, 7, "Frozen"), ErrInvalidStatus)
	})
}

func TestStorage_ListSubscriptions(t *testing.T) {
	f := newFixture(t)
	subs := []*repository.Subscription{
		{ID: 2, UserID: "u2", Status: repository.SubscriptionPaused},
		{ID: 1, UserID: "u1", Status: repository.SubscriptionActive},
	}

	f.subscriptions.EXPECT().ListByStatus(f.ctx, f.db, repository.SubscriptionActive, repository.SubscriptionPaused).Return(subs, nil)
	f.slots.EXPECT().ListBySubscriptions(f.ctx, f.db, []int64{2, 1}).Return([]*repository.Slot{
		{ID: 5, SubscriptionID: 1, SlotType: "morning", MilkType: "cow", Quantity: decimal.NewFromInt(1), Frequency: "daily", IsEnabled: true},
	}, nil)

	docs, err := f.storage.ListSubscriptions(f.ctx)

	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "u2", docs[0].UserID)
	assert.False(t, docs[0].Morning.Enabled)
	assert.True(t, docs[1].Morning.Enabled)
}
