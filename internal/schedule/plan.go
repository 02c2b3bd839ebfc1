package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// DefaultPlanDays is the length of the customer's calendar view.
	DefaultPlanDays = 5
	// SkipLockHour is the hour after which tomorrow's deliveries are locked in.
	SkipLockHour = 17
)

const dateLayout = "2006-01-02"

// SkipKey identifies one slot on one day, e.g. "2024-03-05-morning".
func SkipKey(date time.Time, slot SlotName) string {
	return fmt.Sprintf("%s-%s", date.Format(dateLayout), slot)
}

// ParseSkipKey splits a key produced by SkipKey. The date is returned in loc.
func ParseSkipKey(key string, loc *time.Location) (time.Time, SlotName, error) {
	idx := strings.LastIndex(key, "-")
	if idx <= 0 {
		return time.Time{}, "", fmt.Errorf("malformed skip key %q", key)
	}
	date, err := time.ParseInLocation(dateLayout, key[:idx], loc)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("malformed skip key %q: %w", key, err)
	}
	slot, err := ParseSlotName(key[idx+1:])
	if err != nil {
		return time.Time{}, "", fmt.Errorf("malformed skip key %q: %w", key, err)
	}
	return date, slot, nil
}

// CanModify reports whether a delivery on date may still be skipped or restored.
// Today and earlier are fixed; tomorrow locks at SkipLockHour.
func CanModify(date, now time.Time) bool {
	today := startOfDay(now)
	target := startOfDay(date.In(now.Location()))
	if !target.After(today) {
		return false
	}
	if target.Equal(today.AddDate(0, 0, 1)) && now.Hour() >= SkipLockHour {
		return false
	}
	return true
}

// PlannedDelivery is one entry of the calendar view.
type PlannedDelivery struct {
	Key        string          `json:"key"`
	Date       time.Time       `json:"date"`
	Slot       SlotName        `json:"slot"`
	MilkType   MilkType        `json:"milk_type"`
	Quantity   decimal.Decimal `json:"quantity"`
	TimeWindow string          `json:"time_window"`
	Skipped    bool            `json:"skipped"`
	Locked     bool            `json:"locked"`
}

// PlanDays lays out the scheduled slots for the days after today.
// skipped holds SkipKey values.
func PlanDays(sub *Subscription, now time.Time, days int, skipped map[string]bool) []PlannedDelivery {
	if days <= 0 {
		days = DefaultPlanDays
	}
	var plan []PlannedDelivery
	if sub == nil {
		return plan
	}
	today := startOfDay(now)
	for i := 1; i <= days; i++ {
		day := today.AddDate(0, 0, i)
		for _, name := range []SlotName{Morning, Evening} {
			slot := sub.Slot(name)
			if !IsScheduled(slot, day) {
				continue
			}
			key := SkipKey(day, name)
			plan = append(plan, PlannedDelivery{
				Key:        key,
				Date:       day,
				Slot:       name,
				MilkType:   slot.MilkType,
				Quantity:   slot.Quantity,
				TimeWindow: slot.TimeWindow,
				Skipped:    skipped[key],
				Locked:     !CanModify(day, now),
			})
		}
	}
	return plan
}
