package schedule

import "time"

// IsScheduled reports whether the slot delivers on the calendar day of date.
// An empty day set under a custom frequency never delivers.
func IsScheduled(slot SlotConfig, date time.Time) bool {
	if !slot.Enabled {
		return false
	}
	switch slot.Frequency {
	case Daily:
		return true
	case CustomDays:
		return slot.Days.Has(WeekdayOf(date))
	default:
		return false
	}
}

// Occurrences returns the days in [from, from+days) on which the slot delivers,
// each normalised to midnight in from's location.
func Occurrences(slot SlotConfig, from time.Time, days int) []time.Time {
	var out []time.Time
	start := startOfDay(from)
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		if IsScheduled(slot, day) {
			out = append(out, day)
		}
	}
	return out
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
