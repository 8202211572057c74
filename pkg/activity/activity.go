// Package activity models dated log records for tracked quantities (food,
// meditation, exercise, spending, mood) and folds them into per-day values.
package activity

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"tableflip.dev/daybook/pkg/timeutil"
)

// Kind names a tracker. The built-in kinds have units; any other lower-case
// name is accepted as a free-form tracker.
type Kind string

const (
	Food       Kind = "food"
	Meditation Kind = "meditation"
	Exercise   Kind = "exercise"
	Expense    Kind = "expense"
	Mood       Kind = "mood"
)

// Mood scores run from MoodMin (very bad) to MoodMax (very good).
const (
	MoodMin = 1
	MoodMax = 5
)

var moodLabels = [...]string{"", "very bad", "bad", "neutral", "good", "very good"}

// MoodLabel names a whole mood score, or returns "" outside the scale.
func MoodLabel(score float64) string {
	i := int(score)
	if float64(i) != score || i < MoodMin || i > MoodMax {
		return ""
	}
	return moodLabels[i]
}

var kindPattern = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

// ParseKind normalizes and checks a tracker name.
func ParseKind(raw string) (Kind, error) {
	k := strings.ToLower(strings.TrimSpace(raw))
	if !kindPattern.MatchString(k) {
		return "", fmt.Errorf("invalid tracker name %q", raw)
	}
	return Kind(k), nil
}

// Unit is the display unit of a kind's totals.
func (k Kind) Unit() string {
	switch k {
	case Food:
		return "kcal"
	case Meditation, Exercise:
		return "min"
	case Expense:
		return "$"
	case Mood:
		return "/5"
	}
	return ""
}

// Averaged reports whether a day's value is the mean of its records rather
// than their sum. A score logged twice is still the same score.
func (k Kind) Averaged() bool {
	return k == Mood
}

// Record is one logged amount on one day.
type Record struct {
	ID       string             `json:"id"`
	Kind     Kind               `json:"kind"`
	Day      timeutil.Day       `json:"day"`
	Value    float64            `json:"value"`
	Quantity float64            `json:"quantity,omitempty"`
	Note     string             `json:"note,omitempty"`
	Created  timeutil.Timestamp `json:"created"`
}

// Total is the amount the record contributes to its day: the per-unit value
// times the quantity, where a missing quantity counts as one unit.
func (r Record) Total() float64 {
	q := r.Quantity
	if q == 0 {
		q = 1
	}
	return r.Value * q
}

var (
	ErrNegative = errors.New("activity: value and quantity must not be negative")
	ErrNoKind   = errors.New("activity: record has no kind")
	ErrNoDay    = errors.New("activity: record has no day")
	ErrMood     = errors.New("activity: mood must be a whole score from 1 to 5 with no quantity")
)

// Validate rejects records the aggregation functions must never see.
func (r Record) Validate() error {
	switch {
	case r.Kind == "":
		return ErrNoKind
	case r.Day.IsZero():
		return ErrNoDay
	case r.Value < 0, r.Quantity < 0:
		return ErrNegative
	case r.Kind == Mood && (MoodLabel(r.Value) == "" || r.Quantity != 0):
		return ErrMood
	}
	return nil
}

// ByDay sums record totals per day.
func ByDay(records []*Record) map[timeutil.Day]float64 {
	out := make(map[timeutil.Day]float64, len(records))
	for _, r := range records {
		if r == nil {
			continue
		}
		out[r.Day] += r.Total()
	}
	return out
}

// MeanByDay averages record totals per day.
func MeanByDay(records []*Record) map[timeutil.Day]float64 {
	sums := ByDay(records)
	counts := make(map[timeutil.Day]int, len(sums))
	for _, r := range records {
		if r != nil {
			counts[r.Day]++
		}
	}
	for d, n := range counts {
		sums[d] /= float64(n)
	}
	return sums
}

// Daily folds records into one value per day the way kind aggregates.
func Daily(kind Kind, records []*Record) map[timeutil.Day]float64 {
	if kind.Averaged() {
		return MeanByDay(records)
	}
	return ByDay(records)
}

// Split separates the day of now, which may still be accumulating, from the
// finished days. The input map is not modified.
func Split(byDay map[timeutil.Day]float64, now time.Time) (map[timeutil.Day]float64, float64) {
	today := timeutil.DayOf(now)
	history := make(map[timeutil.Day]float64, len(byDay))
	for d, v := range byDay {
		if d == today {
			continue
		}
		history[d] = v
	}
	return history, byDay[today]
}

// Summary is the headline numbers for one tracker.
type Summary struct {
	Kind    Kind    `json:"kind"`
	Total   float64 `json:"total"`
	Today   float64 `json:"today"`
	Days    int     `json:"days"`
	Average float64 `json:"average"`
	Entries int     `json:"entries"`
	// Averaged summaries have no meaningful Total; Today and Average are
	// means of daily means.
	Averaged bool `json:"averaged,omitempty"`
}

// Summarize totals records. Average is per active day. Averaged kinds are
// summarized with SummarizeMean.
func Summarize(kind Kind, records []*Record, now time.Time) Summary {
	if kind.Averaged() {
		return SummarizeMean(kind, records, now)
	}
	s := Summary{Kind: kind}
	byDay := ByDay(records)
	for _, r := range records {
		if r != nil {
			s.Entries++
		}
	}
	for _, v := range byDay {
		s.Total += v
		if v > 0 {
			s.Days++
		}
	}
	s.Today = byDay[timeutil.DayOf(now)]
	if s.Days > 0 {
		s.Average = s.Total / float64(s.Days)
	}
	return s
}

// SummarizeMean summarizes a scored tracker. Each day counts once, at the mean
// of its records, so logging twice on a day does not weigh it double.
func SummarizeMean(kind Kind, records []*Record, now time.Time) Summary {
	s := Summary{Kind: kind, Averaged: true}
	byDay := MeanByDay(records)
	for _, r := range records {
		if r != nil {
			s.Entries++
		}
	}
	var sum float64
	for _, v := range byDay {
		sum += v
		s.Days++
	}
	s.Today = byDay[timeutil.DayOf(now)]
	if s.Days > 0 {
		s.Average = sum / float64(s.Days)
	}
	return s
}
