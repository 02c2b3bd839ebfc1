package schedule

import (
	"fmt"
	"strings"
	"time"
)

// Weekday is a day of the week, ordered Sunday through Saturday.
type Weekday int

const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

var weekdayShort = [...]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// AllWeekdays lists every day in Sun..Sat order.
var AllWeekdays = []Weekday{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

func WeekdayOf(t time.Time) Weekday {
	return Weekday(t.Weekday())
}

func (d Weekday) Valid() bool {
	return d >= Sunday && d <= Saturday
}

// String returns the three-letter display name used by the API ("Mon").
func (d Weekday) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayShort[d]
}

// ParseWeekday accepts short ("Mon") or full ("monday") English names, case-insensitive.
func ParseWeekday(s string) (Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if len(name) < 3 {
		return 0, fmt.Errorf("unknown weekday %q", s)
	}
	for i, short := range weekdayShort {
		full := strings.ToLower(time.Weekday(i).String())
		if name == strings.ToLower(short) || name == full {
			return Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}

func (d Weekday) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid weekday %d", int(d))
	}
	return []byte(d.String()), nil
}

func (d *Weekday) UnmarshalText(text []byte) error {
	parsed, err := ParseWeekday(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// WeekdaySet is a set of weekdays stored as a bitmask.
type WeekdaySet uint8

func NewWeekdaySet(days ...Weekday) WeekdaySet {
	var s WeekdaySet
	for _, d := range days {
		s = s.Add(d)
	}
	return s
}

func (s WeekdaySet) Add(d Weekday) WeekdaySet {
	if !d.Valid() {
		return s
	}
	return s | 1<<uint(d)
}

func (s WeekdaySet) Has(d Weekday) bool {
	if !d.Valid() {
		return false
	}
	return s&(1<<uint(d)) != 0
}

func (s WeekdaySet) Len() int {
	n := 0
	for _, d := range AllWeekdays {
		if s.Has(d) {
			n++
		}
	}
	return n
}

func (s WeekdaySet) Empty() bool {
	return s.Len() == 0
}

// Days returns the members in Sun..Sat order.
func (s WeekdaySet) Days() []Weekday {
	days := make([]Weekday, 0, s.Len())
	for _, d := range AllWeekdays {
		if s.Has(d) {
			days = append(days, d)
		}
	}
	return days
}

// Strings returns the short display names of the members.
func (s WeekdaySet) Strings() []string {
	names := make([]string, 0, s.Len())
	for _, d := range s.Days() {
		names = append(names, d.String())
	}
	return names
}
