package schedule

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// CutoffPolicy holds the local hours after which a slot can no longer be today's delivery.
type CutoffPolicy struct {
	MorningHour int
	EveningHour int
}

var DefaultCutoffs = CutoffPolicy{MorningHour: 9, EveningHour: 19}

// LookaheadDays bounds how far FindNextDelivery scans past today.
const LookaheadDays = 7

const (
	LabelToday    = "Today"
	LabelTomorrow = "Tomorrow"
	LabelPaused   = "Paused"
	DetailPaused  = "No upcoming deliveries"
)

// NextDelivery is the soonest delivery of a subscription, or the paused sentinel.
type NextDelivery struct {
	Slot      SlotName   `json:"slot,omitempty"`
	Date      *time.Time `json:"date,omitempty"`
	DaysAhead int        `json:"days_ahead"`
	Label     string     `json:"label"`
	Detail    string     `json:"detail"`
}

// Paused reports whether no delivery was found within the lookahead horizon.
func (n NextDelivery) Paused() bool {
	return n.Slot == ""
}

func pausedDelivery() NextDelivery {
	return NextDelivery{Label: LabelPaused, Detail: DetailPaused}
}

// FindNextDelivery resolves the soonest delivery relative to now using the default cutoffs.
func FindNextDelivery(sub *Subscription, now time.Time) NextDelivery {
	return DefaultCutoffs.FindNextDelivery(sub, now)
}

// FindNextDelivery checks today's morning and evening against the cutoffs, then
// scans the next LookaheadDays days, morning before evening. When both of today's
// slots are open the morning one wins.
func (c CutoffPolicy) FindNextDelivery(sub *Subscription, now time.Time) NextDelivery {
	if sub == nil {
		return pausedDelivery()
	}
	today := startOfDay(now)

	if now.Hour() < c.MorningHour && IsScheduled(sub.Morning, now) {
		return newNextDelivery(Morning, sub.Morning, today, 0)
	}
	if now.Hour() < c.EveningHour && IsScheduled(sub.Evening, now) {
		return newNextDelivery(Evening, sub.Evening, today, 0)
	}

	for i := 1; i <= LookaheadDays; i++ {
		day := today.AddDate(0, 0, i)
		if IsScheduled(sub.Morning, day) {
			return newNextDelivery(Morning, sub.Morning, day, i)
		}
		if IsScheduled(sub.Evening, day) {
			return newNextDelivery(Evening, sub.Evening, day, i)
		}
	}
	return pausedDelivery()
}

func newNextDelivery(name SlotName, slot SlotConfig, day time.Time, offset int) NextDelivery {
	return NextDelivery{
		Slot:      name,
		Date:      &day,
		DaysAhead: offset,
		Label:     dayLabel(day, offset),
		Detail:    SlotDetail(slot),
	}
}

// SlotDetail renders "1.5L Buffalo Milk".
func SlotDetail(slot SlotConfig) string {
	return fmt.Sprintf("%sL %s Milk", slot.Quantity.String(), slot.MilkType.Title())
}

func dayLabel(day time.Time, offset int) string {
	switch offset {
	case 0:
		return LabelToday
	case 1:
		return LabelTomorrow
	default:
		return WeekdayOf(day).String()
	}
}

type OptionKind string

const (
	StandardDelivery    OptionKind = "standardDelivery"
	SubscriptionBundled OptionKind = "subscriptionBundled"
)

// DeliveryOption is one selectable delivery choice at checkout.
type DeliveryOption struct {
	ID       string          `json:"id"`
	Kind     OptionKind      `json:"kind"`
	Label    string          `json:"label"`
	SubLabel string          `json:"sub_label"`
	Fee      decimal.Decimal `json:"fee"`
	Date     *time.Time      `json:"date,omitempty"`
	Slot     SlotName        `json:"slot,omitempty"`
}

// UpcomingOptions bounds FindUpcomingDeliveries. A nil StartOffsetDays starts
// tomorrow, zero limits take the defaults and larger ones are clamped to the caps.
type UpcomingOptions struct {
	StartOffsetDays *int
	MaxDays         int
	MaxResults      int
}

const (
	DefaultStartOffsetDays = 1
	MaxUpcomingDays        = 31
	MaxUpcomingResults     = 2 * MaxUpcomingDays
)

var DefaultUpcoming = UpcomingOptions{MaxDays: 3, MaxResults: 2}

// StartOffset returns an explicit start offset for UpcomingOptions.
func StartOffset(days int) *int {
	return &days
}

func (o UpcomingOptions) window() (start, days, limit int) {
	start = DefaultStartOffsetDays
	if o.StartOffsetDays != nil && *o.StartOffsetDays >= 0 {
		start = *o.StartOffsetDays
	}

	days = o.MaxDays
	if days <= 0 {
		days = DefaultUpcoming.MaxDays
	}
	days = min(days, MaxUpcomingDays)

	limit = o.MaxResults
	if limit <= 0 {
		limit = DefaultUpcoming.MaxResults
	}
	limit = min(limit, MaxUpcomingResults)
	return start, days, limit
}

const (
	morningRunWindow = "6:00 - 7:30 AM"
	eveningRunWindow = "5:30 - 7:30 PM"
)

// FindUpcomingDeliveries lists the subscription runs a checkout can ride along with.
// Days are scanned from now+StartOffsetDays for MaxDays days, morning before evening,
// and the scan stops once MaxResults options are collected. Same-day bundling is
// excluded unless the caller asks for offset 0.
func FindUpcomingDeliveries(sub *Subscription, now time.Time, opts UpcomingOptions) []DeliveryOption {
	start, days, limit := opts.window()
	options := make([]DeliveryOption, 0, min(limit, 2*days))
	if sub == nil {
		return options
	}
	today := startOfDay(now)

	for i := start; i < start+days; i++ {
		day := today.AddDate(0, 0, i)
		for _, name := range []SlotName{Morning, Evening} {
			if !IsScheduled(sub.Slot(name), day) {
				continue
			}
			options = append(options, bundledOption(name, day, i))
			if len(options) >= limit {
				return options
			}
		}
	}
	return options
}

func bundledOption(name SlotName, day time.Time, offset int) DeliveryOption {
	display := day.Format("Mon, Jan 2")
	switch offset {
	case 0:
		display = LabelToday
	case 1:
		display = LabelTomorrow
	}
	window := morningRunWindow
	if name == Evening {
		window = eveningRunWindow
	}
	date := day
	return DeliveryOption{
		ID:       fmt.Sprintf("milk_%s_%d", name, offset),
		Kind:     SubscriptionBundled,
		Label:    fmt.Sprintf("With %s Milk", name.Title()),
		SubLabel: fmt.Sprintf("%s, %s", display, window),
		Fee:      decimal.Zero,
		Date:     &date,
		Slot:     name,
	}
}
