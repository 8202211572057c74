package bucket

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"tableflip.dev/daybook/pkg/task"
)

var now = time.Date(2024, 5, 20, 9, 30, 0, 0, time.UTC)

func daysAgo(n int, hour int) time.Time {
	d := now.AddDate(0, 0, -n)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, time.UTC)
}

func mk(id string, created time.Time, status task.Status) *task.Task {
	t := task.New(id, status, created)
	t.ID = id
	return t
}

func ids(ts []*task.Task) []string {
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.ID)
	}
	return out
}

func TestClassify(t *testing.T) {
	tasks := []*task.Task{
		mk("today-open", daysAgo(0, 8), task.Todo),
		mk("today-done", daysAgo(0, 1), task.Done),
		mk("today-late", daysAgo(0, 23), task.InProgress),
		mk("yesterday-open", daysAgo(1, 22), task.Todo),
		mk("yesterday-done", daysAgo(1, 10), task.Done),
		mk("old-open", daysAgo(30, 12), task.InProgress),
		mk("old-done", daysAgo(2, 12), task.Done),
		mk("ancient-done", daysAgo(400, 12), task.Done),
		mk("future", daysAgo(-1, 12), task.Done),
		mk("future-open", daysAgo(-3, 12), task.Todo),
	}

	got := Classify(tasks, now)

	if want := []string{"today-open", "today-done", "today-late", "yesterday-open", "old-open"}; !reflect.DeepEqual(ids(got.Today), want) {
		t.Fatalf("today: expected %v, got %v", want, ids(got.Today))
	}
	if want := []string{"yesterday-done"}; !reflect.DeepEqual(ids(got.Yesterday), want) {
		t.Fatalf("yesterday: expected %v, got %v", want, ids(got.Yesterday))
	}
	if want := []string{"old-done", "ancient-done"}; !reflect.DeepEqual(ids(got.Earlier), want) {
		t.Fatalf("earlier: expected %v, got %v", want, ids(got.Earlier))
	}
}

func TestCarryForwardNeverExpires(t *testing.T) {
	created := time.Date(2019, 1, 1, 12, 0, 0, 0, time.UTC)
	tk := mk("old", created, task.Todo)
	for _, days := range []int{0, 1, 2, 30, 365, 3650} {
		at := created.AddDate(0, 0, days)
		if b := Of(tk, at); b != Today {
			t.Fatalf("after %d days: expected today, got %s", days, b)
		}
	}
}

func TestFreezeOnCreationDay(t *testing.T) {
	d := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	tk := mk("t", d, task.Todo)

	// Open through day D+5.
	if b := Of(tk, d.AddDate(0, 0, 5)); b != Today {
		t.Fatalf("expected carried forward task in today, got %s", b)
	}

	// Completed on D+5, observed on D+10.
	done := tk.Toggle()
	if b := Of(&done, d.AddDate(0, 0, 10)); b != Earlier {
		t.Fatalf("expected earlier, got %s", b)
	}

	// Completed, observed the day after creation.
	if b := Of(&done, d.AddDate(0, 0, 1)); b != Yesterday {
		t.Fatalf("expected yesterday, got %s", b)
	}
}

func TestExclusivity(t *testing.T) {
	var tasks []*task.Task
	for n := -2; n <= 5; n++ {
		for _, s := range task.AllStatuses() {
			tasks = append(tasks, mk(s.String(), daysAgo(n, 12), s))
		}
	}
	for offset := 0; offset < 4; offset++ {
		at := now.AddDate(0, 0, offset)
		got := Classify(tasks, at)
		seen := map[*task.Task]int{}
		for _, b := range []Bucket{Today, Yesterday, Earlier} {
			for _, tk := range got.Get(b) {
				seen[tk]++
				if Of(tk, at) != b {
					t.Fatalf("Classify and Of disagree for %s", tk.ID)
				}
			}
		}
		for tk, n := range seen {
			if n > 1 {
				t.Fatalf("task %p appears in %d buckets", tk, n)
			}
		}
	}
}

func TestIdempotent(t *testing.T) {
	tasks := []*task.Task{
		mk("a", daysAgo(0, 8), task.Todo),
		mk("b", daysAgo(1, 8), task.Done),
		mk("c", daysAgo(9, 8), task.Done),
	}
	first := Classify(tasks, now)
	second := Classify(tasks, now)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("classify is not idempotent")
	}
}

func TestDaysFollowNowLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	// 20:00 UTC on May 19 is already May 20 in Tokyo.
	created := time.Date(2024, 5, 19, 20, 0, 0, 0, time.UTC)
	tk := mk("tz", created, task.Done)

	if b := Of(tk, time.Date(2024, 5, 20, 12, 0, 0, 0, tokyo)); b != Today {
		t.Fatalf("expected today in Tokyo, got %s", b)
	}
	if b := Of(tk, time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)); b != Yesterday {
		t.Fatalf("expected yesterday in UTC, got %s", b)
	}
}

func TestNilTasksSkipped(t *testing.T) {
	got := Classify([]*task.Task{nil, mk("a", daysAgo(0, 1), task.Todo)}, now)
	if len(got.Today) != 1 || len(got.Yesterday) != 0 || len(got.Earlier) != 0 {
		t.Fatalf("unexpected buckets %+v", got)
	}
}

func TestEmptyBucketsEncodeAsArrays(t *testing.T) {
	b, err := json.Marshal(Classify(nil, now))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if want := `{"today":[],"yesterday":[],"earlier":[]}`; string(b) != want {
		t.Fatalf("expected %s, got %s", want, b)
	}
}

func TestParse(t *testing.T) {
	for in, want := range map[string]Bucket{"": Today, "today": Today, "yesterday": Yesterday, "earlier": Earlier} {
		got, ok := Parse(in)
		if !ok || got != want {
			t.Fatalf("%q: expected %s, got %s", in, want, got)
		}
	}
	if _, ok := Parse("tomorrow"); ok {
		t.Fatalf("expected tomorrow to be rejected")
	}
}
