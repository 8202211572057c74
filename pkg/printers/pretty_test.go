package printers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/daybook/pkg/activity"
	"tableflip.dev/daybook/pkg/bucket"
	"tableflip.dev/daybook/pkg/streak"
	"tableflip.dev/daybook/pkg/task"
	"tableflip.dev/daybook/pkg/timeutil"
)

func init() {
	color.NoColor = true
}

func TestBucketsCarriedMarker(t *testing.T) {
	now := time.Date(2024, time.May, 3, 9, 0, 0, 0, time.UTC)
	old := task.New("from monday", task.Todo, now.AddDate(0, 0, -4))
	fresh := task.New("from today", task.Todo, now)
	done := task.New("finished", task.Done, now.AddDate(0, 0, -1))
	bs := bucket.Classify([]*task.Task{old, fresh, done}, now)

	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}
	pp.Buckets(now, bs, bucket.Today, bucket.Yesterday, bucket.Earlier)

	out := buf.String()
	for _, want := range []string{
		"Today - 2 tasks",
		"› ● from monday",
		"  ● from today",
		"Yesterday - 1 task",
		"  ✘ finished",
		"Earlier - 0 tasks",
		"none",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output:\n%s", want, out)
		}
	}
}

func TestTasksShowID(t *testing.T) {
	tk := task.New("with id", task.InProgress, time.Date(2024, time.May, 3, 9, 0, 0, 0, time.UTC))
	tk.ID = "abc"

	var buf bytes.Buffer
	pp := PrettyPrint{ShowID: true, Out: &buf}
	pp.Tasks(time.Time{}, tk)

	if !strings.HasPrefix(buf.String(), "abc ") {
		t.Fatalf("expected id prefix, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "◐ with id") {
		t.Fatalf("expected in-progress glyph, got %q", buf.String())
	}
}

func TestRecordsAndStats(t *testing.T) {
	day := timeutil.NewDay(2024, time.May, 3)
	records := []*activity.Record{
		{ID: "r1", Kind: activity.Food, Day: day, Value: 250, Quantity: 2, Note: "toast"},
		{ID: "r2", Kind: activity.Food, Day: day, Value: 99.5},
	}

	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}
	pp.Records(activity.Food, records...)
	pp.Stats(activity.Summary{Kind: activity.Food, Total: 599.5, Today: 599.5, Days: 1, Average: 599.5, Entries: 2})

	out := buf.String()
	for _, want := range []string{"Food", "2024-05-03", "500 kcal", "99.50 kcal", "toast", "Food stats", "Active days"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output:\n%s", want, out)
		}
	}
}

func TestMoodRecordsAndStats(t *testing.T) {
	day := timeutil.NewDay(2024, time.May, 3)

	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}
	pp.Records(activity.Mood, &activity.Record{Kind: activity.Mood, Day: day, Value: 4, Note: "sunny"})
	for _, want := range []string{"4 good", "4/5", "sunny"} {
		if !strings.Contains(buf.String(), want) {
			t.Fatalf("missing %q in output:\n%s", want, buf.String())
		}
	}

	buf.Reset()
	pp.Stats(activity.Summary{Kind: activity.Mood, Today: 4, Days: 3, Average: 3.5, Entries: 4, Averaged: true})
	out := buf.String()
	for _, want := range []string{"Mood stats", "Days logged", "3.50/5"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Total") {
		t.Fatalf("averaged stats should not print a total:\n%s", out)
	}
}

func TestBudget(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}
	pp.Budget(activity.BudgetStatus(100, 130))

	out := buf.String()
	for _, want := range []string{"Budget", "$100", "$130", "-$30", "130.0%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output:\n%s", want, out)
		}
	}
}

func TestStreakDays(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}
	pp.Streak(activity.Meditation, streak.Result{Current: 1, Longest: 12})

	out := buf.String()
	if !strings.Contains(out, "Current: 1 day\n") || !strings.Contains(out, "Longest: 12 days\n") {
		t.Fatalf("unexpected streak output:\n%s", out)
	}
}

func TestMonth(t *testing.T) {
	// February 2024 starts on a Thursday and has 29 days.
	feb := timeutil.NewDay(2024, time.February, 10)
	byDay := map[timeutil.Day]float64{timeutil.NewDay(2024, time.February, 29): 1}

	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}
	pp.Month(feb, byDay)

	lines := strings.Split(buf.String(), "\n")
	if !strings.Contains(lines[0], "February 2024") {
		t.Fatalf("expected month header, got %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], strings.Repeat("   ", 4)+" 1  2  3") {
		t.Fatalf("expected first week to start on thursday, got %q", lines[1])
	}
	if !strings.Contains(buf.String(), "29") {
		t.Fatalf("expected leap day in output")
	}
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}
	if err := pp.JSON(map[string]int{"n": 1}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	if buf.String() != "{\n  \"n\": 1\n}\n" {
		t.Fatalf("unexpected json %q", buf.String())
	}
}
