package storage

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_database "gitlab.ozon.dev/pupkingeorgij/milkrun/internal/db/mocks"
	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/schedule"
	mock_storage "gitlab.ozon.dev/pupkingeorgij/milkrun/internal/storage/mocks"
)

// Monday 4 March 2024, 10:00.
var fixedNow = time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)

type fixture struct {
	ctx           context.Context
	db            *mock_database.MockDB
	tx            *mock_database.MockTx
	subscriptions *mock_storage.MockSubscriptionRepository
	slots         *mock_storage.MockSlotRepository
	deliveries    *mock_storage.MockDeliveryRepository
	pricing       *mock_storage.MockPricingRepository
	inventory     *mock_storage.MockInventoryRepository
	outbox        *mock_storage.MockOutboxTaskRepository
	snapshots     *mock_storage.MockSnapshotStore
	storage       *Storage
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		ctx:           context.Background(),
		db:            mock_database.NewMockDB(ctrl),
		tx:            mock_database.NewMockTx(ctrl),
		subscriptions: mock_storage.NewMockSubscriptionRepository(ctrl),
		slots:         mock_storage.NewMockSlotRepository(ctrl),
		deliveries:    mock_storage.NewMockDeliveryRepository(ctrl),
		pricing:       mock_storage.NewMockPricingRepository(ctrl),
		inventory:     mock_storage.NewMockInventoryRepository(ctrl),
		outbox:        mock_storage.NewMockOutboxTaskRepository(ctrl),
		snapshots:     mock_storage.NewMockSnapshotStore(ctrl),
	}
	f.storage = NewStorage(f.db, Repositories{
		Subscriptions: f.subscriptions,
		Slots:         f.slots,
		Deliveries:    f.deliveries,
		Pricing:       f.pricing,
		Inventory:     f.inventory,
		Outbox:        f.outbox,
	}, f.snapshots, time.UTC, schedule.DefaultFeePolicy(), "milk-events")
	f.storage.timeNow = func() time.Time { return fixedNow }
	return f
}

// expectTx expects one transaction that ends in a commit.
func (f *fixture) expectTx() {
	f.db.EXPECT().BeginTx(f.ctx).Return(f.tx, nil)
	f.tx.EXPECT().Commit(f.ctx).Return(nil)
}

// expectRollback expects one transaction that is rolled back.
func (f *fixture) expectRollback() {
	f.db.EXPECT().BeginTx(f.ctx).Return(f.tx, nil)
	f.tx.EXPECT().Rollback(f.ctx).Return(nil)
}

func (f *fixture) expectSnapshot(t *testing.T, userID string, doc SubscriptionDoc) {
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	f.snapshots.EXPECT().Get(f.ctx, userID).Return(data, true, nil)
}

func dailySlot(milkType string, quantity string) SlotDoc {
	return SlotDoc{
		Enabled:   true,
		Type:      milkType,
		Quantity:  decimal.RequireFromString(quantity),
		Frequency: "daily",
		Days:      []string{},
	}
}

func customSlot(milkType string, quantity string, days ...string) SlotDoc {
	return SlotDoc{
		Enabled:   true,
		Type:      milkType,
		Quantity:  decimal.RequireFromString(quantity),
		Frequency: "alternate",
		Days:      days,
	}
}

func offSlot() SlotDoc {
	return SlotDoc{Type: "cow", Quantity: decimal.NewFromInt(1), Frequency: "daily", Days: []string{}}
}

func activeDoc(morning, evening SlotDoc) SubscriptionDoc {
	return SubscriptionDoc{
		ID:           7,
		UserID:       "u1",
		Morning:      morning,
		Evening:      evening,
		AddressID:    3,
		Address:      "12 MG Road",
		CustomerName: "Anjali",
		Status:       "Active",
	}
}

func day(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}
