// Package streak measures runs of consecutive active days in a daily log.
package streak

import (
	"sort"
	"time"

	"tableflip.dev/daybook/pkg/timeutil"
)

// Result holds the run ending today and the longest run on record.
type Result struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// Compute returns the current and longest streaks.
//
// byDay holds one aggregate per past day. todayValue is the running total for
// the day of now and always takes precedence over any entry byDay has for
// that day. A day is active when its value is positive.
//
// The current streak is anchored at today: if today is inactive it is zero,
// whatever happened yesterday.
func Compute(byDay map[timeutil.Day]float64, todayValue float64, now time.Time) Result {
	today := timeutil.DayOf(now)

	current := 0
	if todayValue > 0 {
		current = 1
		for d := today.AddDays(-1); byDay[d] > 0; d = d.AddDays(-1) {
			current++
		}
	}

	days := make([]timeutil.Day, 0, len(byDay)+1)
	for d := range byDay {
		if d != today {
			days = append(days, d)
		}
	}
	if todayValue > 0 {
		days = append(days, today)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Before(days[j])
	})

	longest, run := 0, 0
	var prev *timeutil.Day
	for i := range days {
		d := days[i]
		value := byDay[d]
		if d == today {
			value = todayValue
		}
		if value <= 0 {
			run = 0
			prev = nil
			continue
		}
		if prev != nil && d.Sub(*prev) == 1 {
			run++
		} else {
			run = 1
		}
		prev = &days[i]
		if run > longest {
			longest = run
		}
	}

	if current > longest {
		longest = current
	}
	return Result{Current: current, Longest: longest}
}
