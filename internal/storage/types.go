package storage

import (
	"time"

	"github.com/shopspring/decimal"

	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/schedule"
)

// SlotDoc is the document form of one delivery slot, shared by the API and the snapshot store.
type SlotDoc struct {
	Enabled   bool            `json:"enabled"`
	Type      string          `json:"type"`
	Quantity  decimal.Decimal `json:"quantity"`
	Time      string          `json:"time"`
	Frequency string          `json:"frequency"`
	Days      []string        `json:"days"`
}

type SubscriptionDoc struct {
	ID           int64     `json:"id,omitempty"`
	UserID       string    `json:"userId,omitempty"`
	Morning      SlotDoc   `json:"morning"`
	Evening      SlotDoc   `json:"evening"`
	AddressID    int64     `json:"addressId"`
	Address      string    `json:"address"`
	CustomerName string    `json:"customerName"`
	AutoPay      bool      `json:"autoPay"`
	StartDate    time.Time `json:"startDate"`
	Status       string    `json:"status"`
}

// WeeklyCost is the price of one week of a subscription.
type WeeklyCost struct {
	Morning decimal.Decimal `json:"morning"`
	Evening decimal.Decimal `json:"evening"`
	Total   decimal.Decimal `json:"total"`
}

type CheckoutQuote struct {
	Options []schedule.DeliveryOption `json:"options"`
	Bill    schedule.Bill             `json:"bill"`
}

type Delivery struct {
	ID             int64           `json:"id"`
	SubscriptionID int64           `json:"subscription_id"`
	UserID         string          `json:"user_id"`
	DeliveryDate   string          `json:"delivery_date"`
	SlotType       string          `json:"slot_type"`
	Quantity       decimal.Decimal `json:"quantity"`
	MilkType       string          `json:"milk_type"`
	Address        string          `json:"address"`
	CustomerName   string          `json:"customer_name"`
	Status         string          `json:"status"`
	DeliveredAt    *time.Time      `json:"delivered_at,omitempty"`
	DeliveredBy    *string         `json:"delivered_by,omitempty"`
}

type Price struct {
	MilkType      string          `json:"milk_type"`
	Price         decimal.Decimal `json:"price"`
	PreviousPrice decimal.Decimal `json:"previous_price"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type InventoryEntry struct {
	ID           int64           `json:"id"`
	Date         string          `json:"date"`
	BuffaloStock decimal.Decimal `json:"buffalo_stock"`
	CowStock     decimal.Decimal `json:"cow_stock"`
	BuffaloSold  decimal.Decimal `json:"buffalo_sold"`
	CowSold      decimal.Decimal `json:"cow_sold"`
	Wastage      decimal.Decimal `json:"wastage"`
}

type Analytics struct {
	ActiveSubscriptions int             `json:"active_subscriptions"`
	PausedSubscriptions int             `json:"paused_subscriptions"`
	TotalSubscriptions  int             `json:"total_subscriptions"`
	BuffaloDemand       decimal.Decimal `json:"buffalo_demand"`
	CowDemand           decimal.Decimal `json:"cow_demand"`
	TotalDemand         decimal.Decimal `json:"total_demand"`
	BuffaloPrice        decimal.Decimal `json:"buffalo_price"`
	CowPrice            decimal.Decimal `json:"cow_price"`
	DailyRevenue        decimal.Decimal `json:"daily_revenue"`
	MonthlyRevenue      decimal.Decimal `json:"monthly_revenue"`
	DeliveredToday      int             `json:"delivered_today"`
	PendingToday        int             `json:"pending_today"`
}
