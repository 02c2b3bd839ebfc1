package repository

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TaskStatus string

const (
	TaskStatusCreated    TaskStatus = "CREATED"
	TaskStatusProcessing TaskStatus = "PROCESSING"
	TaskStatusFailed     TaskStatus = "FAILED"
	TaskStatusDone       TaskStatus = "DONE"
)

type OutboxTask struct {
	ID          uuid.UUID       `db:"id"`
	Status      TaskStatus      `db:"status"`
	Payload     json.RawMessage `db:"payload"`
	Topic       string          `db:"topic"`
	Key         string          `db:"key"`
	Attempts    int             `db:"attempts"`
	LastError   *string         `db:"last_error"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
	CompletedAt *time.Time      `db:"completed_at"`
}

// Event kinds published through the outbox.
const (
	EventSubscriptionCreated   = "subscription.created"
	EventSubscriptionUpdated   = "subscription.updated"
	EventSubscriptionStatus    = "subscription.status_changed"
	EventDeliverySkipped       = "delivery.skipped"
	EventDeliveryRestored      = "delivery.restored"
	EventDeliveryStatusChanged = "delivery.status_changed"
	EventPriceChanged          = "pricing.changed"
)

// DeliveryEventPayload is the body of every message on the delivery events topic.
type DeliveryEventPayload struct {
	Event          string           `json:"event"`
	OccurredAt     time.Time        `json:"occurred_at"`
	UserID         string           `json:"user_id,omitempty"`
	SubscriptionID int64            `json:"subscription_id,omitempty"`
	DeliveryID     int64            `json:"delivery_id,omitempty"`
	DeliveryDate   string           `json:"delivery_date,omitempty"`
	Slot           string           `json:"slot,omitempty"`
	OldStatus      string           `json:"old_status,omitempty"`
	NewStatus      string           `json:"new_status,omitempty"`
	MilkType       string           `json:"milk_type,omitempty"`
	Price          *decimal.Decimal `json:"price,omitempty"`
	WeeklyCost     *decimal.Decimal `json:"weekly_cost,omitempty"`
}
