package schedule

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type MilkType string

const (
	Buffalo MilkType = "buffalo"
	Cow     MilkType = "cow"
)

func (m MilkType) Valid() bool {
	return m == Buffalo || m == Cow
}

// Title is the capitalised display form ("Buffalo").
func (m MilkType) Title() string {
	if m == "" {
		return ""
	}
	s := string(m)
	return strings.ToUpper(s[:1]) + s[1:]
}

func ParseMilkType(s string) (MilkType, error) {
	m := MilkType(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("unknown milk type %q", s)
	}
	return m, nil
}

type Frequency int

const (
	Daily Frequency = iota
	CustomDays
)

// String returns the wire name. Custom day sets travel as "alternate".
func (f Frequency) String() string {
	switch f {
	case Daily:
		return "daily"
	case CustomDays:
		return "alternate"
	default:
		return fmt.Sprintf("Frequency(%d)", int(f))
	}
}

func ParseFrequency(s string) (Frequency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "daily":
		return Daily, nil
	case "alternate", "custom", "customdays":
		return CustomDays, nil
	default:
		return 0, fmt.Errorf("unknown frequency %q", s)
	}
}

type SlotName string

const (
	Morning SlotName = "morning"
	Evening SlotName = "evening"
)

func (n SlotName) Title() string {
	switch n {
	case Morning:
		return "Morning"
	case Evening:
		return "Evening"
	default:
		return string(n)
	}
}

func ParseSlotName(s string) (SlotName, error) {
	n := SlotName(strings.ToLower(strings.TrimSpace(s)))
	if n != Morning && n != Evening {
		return "", fmt.Errorf("unknown slot %q", s)
	}
	return n, nil
}

const (
	DefaultMorningWindow = "7:00-7:30"
	DefaultEveningWindow = "18:00-18:30"
)

var (
	MinQuantity  = decimal.RequireFromString("0.50")
	MaxQuantity  = decimal.RequireFromString("2.00")
	QuantityStep = decimal.RequireFromString("0.25")
)

// QuantityLadder returns the selectable per-delivery volumes, 0.50 to 2.00 litres.
func QuantityLadder() []decimal.Decimal {
	var ladder []decimal.Decimal
	for q := MinQuantity; q.LessThanOrEqual(MaxQuantity); q = q.Add(QuantityStep) {
		ladder = append(ladder, q)
	}
	return ladder
}

func ValidQuantity(q decimal.Decimal) bool {
	if q.LessThan(MinQuantity) || q.GreaterThan(MaxQuantity) {
		return false
	}
	return q.Mod(QuantityStep).IsZero()
}

// SlotConfig is the weekly recurrence rule of one delivery slot.
type SlotConfig struct {
	Enabled    bool
	MilkType   MilkType
	Quantity   decimal.Decimal
	TimeWindow string
	Frequency  Frequency
	Days       WeekdaySet
}

// Subscription holds the two slots of a user's milk plan.
// AddressID, AutoPay and Status are carried for callers and never read by the scheduler.
type Subscription struct {
	Morning   SlotConfig
	Evening   SlotConfig
	AddressID int64
	AutoPay   bool
	Status    string
}

func (s *Subscription) Slot(name SlotName) SlotConfig {
	if name == Evening {
		return s.Evening
	}
	return s.Morning
}

// DefaultSubscription is the form's starting state: one litre of buffalo milk every morning.
func DefaultSubscription() Subscription {
	return Subscription{
		Morning: SlotConfig{
			Enabled:    true,
			MilkType:   Buffalo,
			Quantity:   decimal.NewFromInt(1),
			TimeWindow: DefaultMorningWindow,
			Frequency:  Daily,
		},
		Evening: SlotConfig{
			Enabled:    false,
			MilkType:   Buffalo,
			Quantity:   decimal.NewFromInt(1),
			TimeWindow: DefaultEveningWindow,
			Frequency:  Daily,
		},
		Status: "Active",
	}
}

var (
	ErrNoSlotEnabled = errors.New("at least one delivery slot must be enabled")
	ErrNoDays        = errors.New("custom frequency requires at least one day")
	ErrBadQuantity   = errors.New("quantity must be between 0.50 and 2.00 litres in steps of 0.25")
	ErrBadMilkType   = errors.New("unknown milk type")
)

// ValidateSlot checks an enabled slot. Disabled slots are always valid.
func ValidateSlot(slot SlotConfig) error {
	if !slot.Enabled {
		return nil
	}
	if !slot.MilkType.Valid() {
		return ErrBadMilkType
	}
	if !ValidQuantity(slot.Quantity) {
		return ErrBadQuantity
	}
	if slot.Frequency == CustomDays && slot.Days.Empty() {
		return ErrNoDays
	}
	return nil
}

// Validate is the submit-time check used before a subscription is stored.
func Validate(sub Subscription) error {
	if !sub.Morning.Enabled && !sub.Evening.Enabled {
		return ErrNoSlotEnabled
	}
	if err := ValidateSlot(sub.Morning); err != nil {
		return fmt.Errorf("morning: %w", err)
	}
	if err := ValidateSlot(sub.Evening); err != nil {
		return fmt.Errorf("evening: %w", err)
	}
	return nil
}
