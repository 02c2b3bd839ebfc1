package repository

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrObjectNotFound = errors.New("not found")

const (
	SubscriptionActive    = "Active"
	SubscriptionPaused    = "Paused"
	SubscriptionCancelled = "Cancelled"

	DeliveryPending   = "Pending"
	DeliveryDelivered = "Delivered"
	DeliverySkipped   = "Skipped"
)

type Subscription struct {
	ID           int64     `db:"id"`
	UserID       string    `db:"user_id"`
	CustomerName string    `db:"customer_name"`
	Address      string    `db:"address"`
	AddressID    int64     `db:"address_id"`
	Status       string    `db:"status"`
	AutoPay      bool      `db:"auto_pay"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type Slot struct {
	ID             int64           `db:"id"`
	SubscriptionID int64           `db:"subscription_id"`
	SlotType       string          `db:"slot_type"`
	MilkType       string          `db:"milk_type"`
	Quantity       decimal.Decimal `db:"quantity"`
	TimeSlot       string          `db:"time_slot"`
	Frequency      string          `db:"frequency"`
	Days           []string        `db:"days"`
	IsEnabled      bool            `db:"is_enabled"`
}

type Delivery struct {
	ID             int64           `db:"id"`
	SubscriptionID int64           `db:"subscription_id"`
	SlotID         int64           `db:"slot_id"`
	UserID         string          `db:"user_id"`
	DeliveryDate   time.Time       `db:"delivery_date"`
	SlotType       string          `db:"slot_type"`
	Quantity       decimal.Decimal `db:"quantity"`
	MilkType       string          `db:"milk_type"`
	Address        string          `db:"address"`
	CustomerName   string          `db:"customer_name"`
	Status         string          `db:"status"`
	DeliveredAt    *time.Time      `db:"delivered_at"`
	DeliveredBy    *string         `db:"delivered_by"`
}

type Price struct {
	ID            int64           `db:"id"`
	MilkType      string          `db:"milk_type"`
	Price         decimal.Decimal `db:"price"`
	PreviousPrice decimal.Decimal `db:"previous_price"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

type Inventory struct {
	ID           int64           `db:"id"`
	Date         time.Time       `db:"date"`
	BuffaloStock decimal.Decimal `db:"buffalo_stock"`
	CowStock     decimal.Decimal `db:"cow_stock"`
	BuffaloSold  decimal.Decimal `db:"buffalo_sold"`
	CowSold      decimal.Decimal `db:"cow_sold"`
	Wastage      decimal.Decimal `db:"wastage"`
}

// SubscriptionCounts is the per-status tally used by analytics.
type SubscriptionCounts struct {
	Active int `db:"active"`
	Paused int `db:"paused"`
}

// DeliveryCounts tallies one day's deliveries by status.
type DeliveryCounts struct {
	Delivered int `db:"delivered"`
	Pending   int `db:"pending"`
	Skipped   int `db:"skipped"`
}

type User struct {
	ID       int64  `db:"id"`
	Username string `db:"username"`
	Password string `db:"password"`
}
