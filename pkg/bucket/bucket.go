// Package bucket groups tasks into the Today, Yesterday and Earlier views.
//
// Membership is a function of a task's creation day, its completion and the
// caller's notion of now. Nothing is cached: the same task moves from Today
// to Yesterday at midnight without being touched.
package bucket

import (
	"time"

	"tableflip.dev/daybook/pkg/task"
	"tableflip.dev/daybook/pkg/timeutil"
)

// Bucket names one of the temporal views.
type Bucket int

const (
	None Bucket = iota
	Today
	Yesterday
	Earlier
)

func (b Bucket) String() string {
	switch b {
	case Today:
		return "today"
	case Yesterday:
		return "yesterday"
	case Earlier:
		return "earlier"
	}
	return "none"
}

// Buckets is the partition produced by Classify.
type Buckets struct {
	Today     []*task.Task `json:"today"`
	Yesterday []*task.Task `json:"yesterday"`
	Earlier   []*task.Task `json:"earlier"`
}

// Get returns the tasks in b.
func (bs Buckets) Get(b Bucket) []*task.Task {
	switch b {
	case Today:
		return bs.Today
	case Yesterday:
		return bs.Yesterday
	case Earlier:
		return bs.Earlier
	}
	return nil
}

// Of returns the bucket t belongs to as seen at now. Days are taken in now's
// location.
//
// An unfinished task stays in Today for as long as it is unfinished. A
// finished task is filed by the day it was created, not the day it was
// finished.
func Of(t *task.Task, now time.Time) Bucket {
	if t == nil {
		return None
	}
	today := timeutil.DayOf(now)
	created := t.Created.Day(now.Location())

	switch {
	case created == today:
		return Today
	case !t.Completed() && created.Before(today):
		return Today
	case !t.Completed():
		return None
	case created == today.AddDays(-1):
		return Yesterday
	case created.Before(today.AddDays(-1)):
		return Earlier
	}
	return None
}

// Classify partitions tasks. Each task lands in at most one bucket; tasks
// created after the day of now land in none. Input order is preserved inside
// each bucket.
func Classify(tasks []*task.Task, now time.Time) Buckets {
	bs := Buckets{
		Today:     []*task.Task{},
		Yesterday: []*task.Task{},
		Earlier:   []*task.Task{},
	}
	for _, t := range tasks {
		switch Of(t, now) {
		case Today:
			bs.Today = append(bs.Today, t)
		case Yesterday:
			bs.Yesterday = append(bs.Yesterday, t)
		case Earlier:
			bs.Earlier = append(bs.Earlier, t)
		}
	}
	return bs
}

// Parse maps a view name to a Bucket. The empty string means Today.
func Parse(name string) (Bucket, bool) {
	switch name {
	case "", "today":
		return Today, true
	case "yesterday":
		return Yesterday, true
	case "earlier":
		return Earlier, true
	}
	return None, false
}
