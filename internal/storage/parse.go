package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/repository"
	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/schedule"
)

var errNoAddress = errors.New("a delivery address is required")

// ParseSubscription turns a submitted document into a schedule, rejecting anything malformed.
func ParseSubscription(doc SubscriptionDoc) (schedule.Subscription, error) {
	morning, err := parseSlot(doc.Morning, schedule.DefaultMorningWindow)
	if err != nil {
		return schedule.Subscription{}, fmt.Errorf("%w: morning: %w", ErrInvalidSubscription, err)
	}
	evening, err := parseSlot(doc.Evening, schedule.DefaultEveningWindow)
	if err != nil {
		return schedule.Subscription{}, fmt.Errorf("%w: evening: %w", ErrInvalidSubscription, err)
	}
	sub := schedule.Subscription{
		Morning:   morning,
		Evening:   evening,
		AddressID: doc.AddressID,
		AutoPay:   doc.AutoPay,
		Status:    repository.SubscriptionActive,
	}
	if err := schedule.Validate(sub); err != nil {
		return schedule.Subscription{}, fmt.Errorf("%w: %w", ErrInvalidSubscription, err)
	}
	if strings.TrimSpace(doc.Address) == "" && doc.AddressID == 0 {
		return schedule.Subscription{}, fmt.Errorf("%w: %w", ErrInvalidSubscription, errNoAddress)
	}
	return sub, nil
}

// parseSlot is strict for enabled slots. A disabled slot keeps whatever parses.
func parseSlot(doc SlotDoc, defaultWindow string) (schedule.SlotConfig, error) {
	slot := schedule.SlotConfig{
		Enabled:    doc.Enabled,
		Quantity:   doc.Quantity,
		TimeWindow: doc.Time,
	}
	if slot.TimeWindow == "" {
		slot.TimeWindow = defaultWindow
	}

	milkType, err := schedule.ParseMilkType(doc.Type)
	if err != nil && doc.Enabled {
		return schedule.SlotConfig{}, err
	}
	slot.MilkType = milkType

	freq, err := schedule.ParseFrequency(doc.Frequency)
	if err != nil && doc.Enabled {
		return schedule.SlotConfig{}, err
	}
	slot.Frequency = freq

	for _, raw := range doc.Days {
		day, err := schedule.ParseWeekday(raw)
		if err != nil {
			if doc.Enabled {
				return schedule.SlotConfig{}, err
			}
			continue
		}
		slot.Days = slot.Days.Add(day)
	}
	return slot, nil
}

// StoredSubscription is a subscription read back from the snapshot store.
type StoredSubscription struct {
	ID           int64
	UserID       string
	Address      string
	CustomerName string
	Plan         schedule.Subscription
}

// Active returns the plan when the subscription delivers, nil otherwise.
func (s *StoredSubscription) Active() *schedule.Subscription {
	if s == nil || s.Plan.Status != repository.SubscriptionActive {
		return nil
	}
	return &s.Plan
}

type storedSlot struct {
	Enabled   bool            `json:"enabled"`
	Type      string          `json:"type"`
	Quantity  json.RawMessage `json:"quantity"`
	Time      string          `json:"time"`
	Frequency string          `json:"frequency"`
	Days      []string        `json:"days"`
}

type storedDoc struct {
	ID           int64      `json:"id"`
	UserID       string     `json:"userId"`
	Morning      storedSlot `json:"morning"`
	Evening      storedSlot `json:"evening"`
	AddressID    int64      `json:"addressId"`
	Address      string     `json:"address"`
	CustomerName string     `json:"customerName"`
	AutoPay      bool       `json:"autoPay"`
	Status       string     `json:"status"`
}

// DecodeStoredSubscription reads a snapshot without trusting it. Unknown
// weekdays are dropped, a slot with a bad milk type, frequency or quantity is
// disabled, and an unreadable document yields nil.
func DecodeStoredSubscription(data []byte) *StoredSubscription {
	if len(data) == 0 {
		return nil
	}
	var doc storedDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil
	}
	return &StoredSubscription{
		ID:           doc.ID,
		UserID:       doc.UserID,
		Address:      doc.Address,
		CustomerName: doc.CustomerName,
		Plan: schedule.Subscription{
			Morning:   decodeSlot(doc.Morning),
			Evening:   decodeSlot(doc.Evening),
			AddressID: doc.AddressID,
			AutoPay:   doc.AutoPay,
			Status:    doc.Status,
		},
	}
}

func decodeSlot(raw storedSlot) schedule.SlotConfig {
	slot := schedule.SlotConfig{Enabled: raw.Enabled, TimeWindow: raw.Time}

	if m, err := schedule.ParseMilkType(raw.Type); err == nil {
		slot.MilkType = m
	} else {
		slot.Enabled = false
	}

	if len(raw.Quantity) > 0 {
		var q decimal.Decimal
		if err := q.UnmarshalJSON(raw.Quantity); err == nil {
			slot.Quantity = q
		}
	}
	if !schedule.ValidQuantity(slot.Quantity) {
		slot.Enabled = false
	}

	if f, err := schedule.ParseFrequency(raw.Frequency); err == nil {
		slot.Frequency = f
	} else {
		slot.Enabled = false
	}

	for _, name := range raw.Days {
		if d, err := schedule.ParseWeekday(name); err == nil {
			slot.Days = slot.Days.Add(d)
		}
	}
	return slot
}

// slotConfigFromRow converts a stored slot row with the same leniency as snapshots.
func slotConfigFromRow(row *repository.Slot) schedule.SlotConfig {
	quantity, _ := json.Marshal(row.Quantity)
	return decodeSlot(storedSlot{
		Enabled:   row.IsEnabled,
		Type:      row.MilkType,
		Quantity:  quantity,
		Time:      row.TimeSlot,
		Frequency: row.Frequency,
		Days:      row.Days,
	})
}

func slotRow(subscriptionID int64, name schedule.SlotName, slot schedule.SlotConfig) *repository.Slot {
	return &repository.Slot{
		SubscriptionID: subscriptionID,
		SlotType:       string(name),
		MilkType:       string(slot.MilkType),
		Quantity:       slot.Quantity,
		TimeSlot:       slot.TimeWindow,
		Frequency:      slot.Frequency.String(),
		Days:           slot.Days.Strings(),
		IsEnabled:      slot.Enabled,
	}
}

func slotDocFromRow(row *repository.Slot) SlotDoc {
	days := row.Days
	if days == nil {
		days = []string{}
	}
	return SlotDoc{
		Enabled:   row.IsEnabled,
		Type:      row.MilkType,
		Quantity:  row.Quantity,
		Time:      row.TimeSlot,
		Frequency: row.Frequency,
		Days:      days,
	}
}

func disabledSlotDoc(window string) SlotDoc {
	return SlotDoc{
		Type:      string(schedule.Buffalo),
		Quantity:  decimal.NewFromInt(1),
		Time:      window,
		Frequency: schedule.Daily.String(),
		Days:      []string{},
	}
}

// docFromRecord assembles the subscription document from its rows. A missing slot row reads as disabled.
func docFromRecord(sub *repository.Subscription, slots []*repository.Slot) SubscriptionDoc {
	doc := SubscriptionDoc{
		ID:           sub.ID,
		UserID:       sub.UserID,
		Morning:      disabledSlotDoc(schedule.DefaultMorningWindow),
		Evening:      disabledSlotDoc(schedule.DefaultEveningWindow),
		AddressID:    sub.AddressID,
		Address:      sub.Address,
		CustomerName: sub.CustomerName,
		AutoPay:      sub.AutoPay,
		StartDate:    sub.CreatedAt,
		Status:       sub.Status,
	}
	for _, row := range slots {
		if row.SubscriptionID != sub.ID {
			continue
		}
		switch schedule.SlotName(row.SlotType) {
		case schedule.Morning:
			doc.Morning = slotDocFromRow(row)
		case schedule.Evening:
			doc.Evening = slotDocFromRow(row)
		}
	}
	return doc
}

func deliveryFromRow(row *repository.Delivery) Delivery {
	return Delivery{
		ID:             row.ID,
		SubscriptionID: row.SubscriptionID,
		UserID:         row.UserID,
		DeliveryDate:   row.DeliveryDate.Format(dateLayout),
		SlotType:       row.SlotType,
		Quantity:       row.Quantity,
		MilkType:       row.MilkType,
		Address:        row.Address,
		CustomerName:   row.CustomerName,
		Status:         row.Status,
		DeliveredAt:    row.DeliveredAt,
		DeliveredBy:    row.DeliveredBy,
	}
}

const dateLayout = "2006-01-02"
