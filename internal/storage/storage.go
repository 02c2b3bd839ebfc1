//go:generate mockgen -source ./storage.go -destination=./mocks/storage.go -package=mock_storage
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/db"
	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/repository"
	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/schedule"
)

var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrInvalidSubscription  = errors.New("invalid subscription")
	ErrDeliveryLocked       = errors.New("delivery can no longer be changed")
	ErrDeliveryNotFound     = errors.New("delivery not found")
	ErrNotScheduled         = errors.New("no delivery is scheduled for that slot")
	ErrInvalidSkipKey       = errors.New("invalid delivery key")
	ErrInvalidStatus        = errors.New("invalid status")
	ErrUnknownOption        = errors.New("unknown delivery option")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrInventoryNotFound    = errors.New("inventory entry not found")
)

type SubscriptionRepository interface {
	Create(ctx context.Context, q db.Querier, sub *repository.Subscription) (int64, error)
	GetByID(ctx context.Context, q db.Querier, id int64) (*repository.Subscription, error)
	GetCurrentByUser(ctx context.Context, q db.Querier, userID string) (*repository.Subscription, error)
	Update(ctx context.Context, q db.Querier, sub *repository.Subscription) error
	UpdateStatus(ctx context.Context, q db.Querier, id int64, status string) error
	CancelByUser(ctx context.Context, q db.Querier, userID string) (int64, error)
	ListByStatus(ctx context.Context, q db.Querier, statuses ...string) ([]*repository.Subscription, error)
	CountByStatus(ctx context.Context, q db.Querier) (*repository.SubscriptionCounts, error)
}

type SlotRepository interface {
	Create(ctx context.Context, q db.Querier, slot *repository.Slot) (int64, error)
	Upsert(ctx context.Context, q db.Querier, slot *repository.Slot) error
	ListBySubscriptions(ctx context.Context, q db.Querier, subscriptionIDs []int64) ([]*repository.Slot, error)
}

type DeliveryRepository interface {
	CreateIfAbsent(ctx context.Context, q db.Querier, d *repository.Delivery) (bool, error)
	GetByID(ctx context.Context, q db.Querier, id int64) (*repository.Delivery, error)
	GetBySlotDate(ctx context.Context, q db.Querier, subscriptionID int64, slotType string, date time.Time) (*repository.Delivery, error)
	ListByDate(ctx context.Context, q db.Querier, date time.Time) ([]*repository.Delivery, error)
	ListBySubscriptionRange(ctx context.Context, q db.Querier, subscriptionID int64, from, to time.Time) ([]*repository.Delivery, error)
	UpdateStatus(ctx context.Context, q db.Querier, id int64, status string, deliveredAt *time.Time, deliveredBy *string) error
	DeletePendingFrom(ctx context.Context, q db.Querier, userID string, from time.Time) (int64, error)
	CountByDate(ctx context.Context, q db.Querier, date time.Time) (*repository.DeliveryCounts, error)
}

type PricingRepository interface {
	List(ctx context.Context, q db.Querier) ([]*repository.Price, error)
	SetPrice(ctx context.Context, q db.Querier, milkType string, price decimal.Decimal) (*repository.Price, error)
	Seed(ctx context.Context, q db.Querier, milkType string, price, previous decimal.Decimal) error
}

type InventoryRepository interface {
	ListRecent(ctx context.Context, q db.Querier, limit int) ([]*repository.Inventory, error)
	AddStock(ctx context.Context, q db.Querier, inv *repository.Inventory) error
	Update(ctx context.Context, q db.Querier, inv *repository.Inventory) error
	RecordSale(ctx context.Context, q db.Querier, date time.Time, milkType string, litres decimal.Decimal) error
}

type OutboxTaskRepository interface {
	Create(ctx context.Context, q db.Querier, task *repository.OutboxTask) error
	ClaimProcessable(ctx context.Context, q db.Querier, limit int) ([]*repository.OutboxTask, error)
	UpdateStatus(ctx context.Context, q db.Querier, id uuid.UUID, status repository.TaskStatus, attempts int, lastError *string, completedAt *time.Time) error
}

// SnapshotStore keeps the serialized subscription document of each user.
// Get reports false when there is no entry.
type SnapshotStore interface {
	Get(ctx context.Context, userID string) ([]byte, bool, error)
	Put(ctx context.Context, userID string, doc []byte) error
	Delete(ctx context.Context, userID string) error
}

type Repositories struct {
	Subscriptions SubscriptionRepository
	Slots         SlotRepository
	Deliveries    DeliveryRepository
	Pricing       PricingRepository
	Inventory     InventoryRepository
	Outbox        OutboxTaskRepository
}

type Storage struct {
	db            db.DB
	subscriptions SubscriptionRepository
	slots         SlotRepository
	deliveries    DeliveryRepository
	pricing       PricingRepository
	inventory     InventoryRepository
	outbox        OutboxTaskRepository
	snapshots     SnapshotStore

	cutoffs     schedule.CutoffPolicy
	fees        schedule.FeePolicy
	eventsTopic string
	loc         *time.Location
	timeNow     func() time.Time
	logger      *zap.Logger
}

func NewStorage(
	database db.DB,
	repos Repositories,
	snapshots SnapshotStore,
	loc *time.Location,
	fees schedule.FeePolicy,
	eventsTopic string,
) *Storage {
	if loc == nil {
		loc = time.Local
	}
	return &Storage{
		db:            database,
		subscriptions: repos.Subscriptions,
		slots:         repos.Slots,
		deliveries:    repos.Deliveries,
		pricing:       repos.Pricing,
		inventory:     repos.Inventory,
		outbox:        repos.Outbox,
		snapshots:     snapshots,
		cutoffs:       schedule.DefaultCutoffs,
		fees:          fees,
		eventsTopic:   eventsTopic,
		loc:           loc,
		timeNow:       time.Now,
		logger:        zap.L().Named("storage"),
	}
}

// Location is the time zone delivery days are counted in.
func (s *Storage) Location() *time.Location {
	return s.loc
}

func (s *Storage) now() time.Time {
	return s.timeNow().In(s.loc)
}

func (s *Storage) today() time.Time {
	return dayOf(s.now())
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// firstOpenDay is the earliest day whose deliveries can still be changed.
func firstOpenDay(now time.Time) time.Time {
	day := dayOf(now).AddDate(0, 0, 1)
	for !schedule.CanModify(day, now) {
		day = day.AddDate(0, 0, 1)
	}
	return day
}
