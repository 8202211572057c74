package timeutil

import (
	"fmt"
	"time"
)

// LayoutDay is the canonical text form of a Day.
const LayoutDay = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

// Day is a calendar date with no time of day and no location. Two instants on
// the same local day map to the same Day, and day arithmetic never observes
// DST transitions.
type Day struct {
	Year  int
	Month time.Month
	Day   int
}

// DayOf returns the calendar day of t in t's own location.
func DayOf(t time.Time) Day {
	y, m, d := t.Date()
	return Day{Year: y, Month: m, Day: d}
}

// DayIn returns the calendar day of t as observed in loc.
func DayIn(t time.Time, loc *time.Location) Day {
	if loc == nil {
		return DayOf(t)
	}
	return DayOf(t.In(loc))
}

// NewDay normalizes y/m/d the way time.Date does, so NewDay(2024, 3, 0) is
// the last day of February.
func NewDay(y int, m time.Month, d int) Day {
	return DayOf(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

// FromIndex is the inverse of Index.
func FromIndex(i int64) Day {
	return DayOf(time.Unix(i*secondsPerDay, 0).UTC())
}

// ParseDay parses a YYYY-MM-DD string.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(LayoutDay, s)
	if err != nil {
		return Day{}, fmt.Errorf("invalid day %q: %w", s, err)
	}
	return DayOf(t), nil
}

// Index is the number of days since 1970-01-01. Consecutive calendar days
// always differ by exactly one.
func (d Day) Index() int64 {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Unix() / secondsPerDay
}

// AddDays returns the day n days after d (n may be negative).
func (d Day) AddDays(n int) Day {
	return NewDay(d.Year, d.Month, d.Day+n)
}

// Sub returns the number of calendar days from o to d.
func (d Day) Sub(o Day) int {
	return int(d.Index() - o.Index())
}

func (d Day) Before(o Day) bool { return d.Index() < o.Index() }

func (d Day) After(o Day) bool { return d.Index() > o.Index() }

func (d Day) IsZero() bool { return d == Day{} }

// Start returns midnight of d in loc.
func (d Day) Start(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func (d Day) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Day) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Day) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = Day{}
		return nil
	}
	parsed, err := ParseDay(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
