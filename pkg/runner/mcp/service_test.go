package mcp

import (
	"context"
	"strings"
	"testing"
	"time"

	"tableflip.dev/daybook/pkg/store"
)

type testConfig struct {
	path string
}

func (c testConfig) BasePath() string         { return c.path }
func (c testConfig) Backend() store.Backend   { return store.BackendDiskv }
func (c testConfig) Location() *time.Location { return time.UTC }

func newTestService(t *testing.T, now time.Time) *Service {
	t.Helper()
	p, err := store.Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	t.Cleanup(func() { _ = p.Close() })
	svc := NewService(p)
	svc.Now = func() time.Time { return now }
	return svc
}

func TestServiceAddTaskDefaults(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC)
	svc := newTestService(t, now)

	dto, err := svc.AddTask(ctx, "Write report", "")
	if err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}
	if dto.ID == "" {
		t.Fatalf("expected generated id")
	}
	if dto.Status != "todo" || dto.Completed {
		t.Fatalf("expected open todo, got %+v", dto)
	}
	if dto.Bucket != "today" {
		t.Fatalf("expected today bucket, got %q", dto.Bucket)
	}
}

func TestServiceAddTaskIntoDone(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC))

	dto, err := svc.AddTask(ctx, "Already shipped", "done")
	if err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}
	if !dto.Completed {
		t.Fatalf("expected completed to follow done status")
	}

	if _, err := svc.AddTask(ctx, "Bad", "blocked"); err == nil {
		t.Fatalf("expected unknown status to be rejected")
	}
}

func TestServiceToggleAndStatus(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC))

	dto, err := svc.AddTask(ctx, "Review", "")
	if err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}

	moved, err := svc.SetTaskStatus(ctx, dto.ID, "in-progress")
	if err != nil {
		t.Fatalf("SetTaskStatus failed: %v", err)
	}
	if moved.Status != "in-progress" || moved.Completed {
		t.Fatalf("expected open in-progress, got %+v", moved)
	}

	toggled, err := svc.ToggleTask(ctx, dto.ID)
	if err != nil {
		t.Fatalf("ToggleTask failed: %v", err)
	}
	if toggled.Status != "done" || !toggled.Completed {
		t.Fatalf("expected done, got %+v", toggled)
	}

	toggled, err = svc.ToggleTask(ctx, dto.ID)
	if err != nil {
		t.Fatalf("ToggleTask failed: %v", err)
	}
	if toggled.Status != "todo" {
		t.Fatalf("expected todo after second toggle, got %s", toggled.Status)
	}

	if _, err := svc.ToggleTask(ctx, "missing"); err == nil {
		t.Fatalf("expected error for unknown id")
	}
}

func TestServiceBucketsFollowClock(t *testing.T) {
	ctx := context.Background()
	day1 := time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC)
	svc := newTestService(t, day1)

	open, err := svc.AddTask(ctx, "Carry me", "")
	if err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}
	done, err := svc.AddTask(ctx, "Finished", "done")
	if err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}

	svc.Now = func() time.Time { return day1.AddDate(0, 0, 1) }
	bs, err := svc.Buckets(ctx)
	if err != nil {
		t.Fatalf("Buckets failed: %v", err)
	}
	if len(bs.Today) != 1 || bs.Today[0].ID != open.ID {
		t.Fatalf("expected carried task in today, got %+v", bs.Today)
	}
	if len(bs.Yesterday) != 1 || bs.Yesterday[0].ID != done.ID {
		t.Fatalf("expected finished task in yesterday, got %+v", bs.Yesterday)
	}
	if len(bs.Earlier) != 0 {
		t.Fatalf("expected nothing earlier, got %+v", bs.Earlier)
	}
}

func TestServiceBoard(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC))

	for _, s := range []string{"todo", "in-progress", "in-progress", "done"} {
		if _, err := svc.AddTask(ctx, "task "+s, s); err != nil {
			t.Fatalf("AddTask failed: %v", err)
		}
	}

	columns, err := svc.Board(ctx)
	if err != nil {
		t.Fatalf("Board failed: %v", err)
	}
	want := map[string]int{"todo": 1, "in-progress": 2, "done": 1}
	if len(columns) != len(want) {
		t.Fatalf("expected %d columns, got %d", len(want), len(columns))
	}
	for _, c := range columns {
		if len(c.Tasks) != want[c.Status] {
			t.Fatalf("column %s: expected %d tasks, got %d", c.Status, want[c.Status], len(c.Tasks))
		}
	}
}

func TestServiceActivityStreak(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, time.March, 10, 20, 0, 0, 0, time.UTC)
	svc := newTestService(t, now)

	for _, day := range []string{"2024-03-07", "2024-03-08", "2024-03-09"} {
		if _, err := svc.LogActivity(ctx, LogActivityOptions{Kind: "Meditation", Value: 10, Day: day}); err != nil {
			t.Fatalf("LogActivity failed: %v", err)
		}
	}

	st, err := svc.Streak(ctx, "meditation")
	if err != nil {
		t.Fatalf("Streak failed: %v", err)
	}
	if st.Current != 0 || st.Longest != 3 {
		t.Fatalf("expected 0/3 before logging today, got %d/%d", st.Current, st.Longest)
	}

	if _, err := svc.LogActivity(ctx, LogActivityOptions{Kind: "meditation", Value: 5, Quantity: 2}); err != nil {
		t.Fatalf("LogActivity failed: %v", err)
	}
	st, err = svc.Streak(ctx, "meditation")
	if err != nil {
		t.Fatalf("Streak failed: %v", err)
	}
	if st.Current != 4 || st.Longest != 4 {
		t.Fatalf("expected 4/4 after logging today, got %d/%d", st.Current, st.Longest)
	}

	sum, err := svc.Stats(ctx, "meditation")
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if sum.Today != 10 || sum.Total != 40 {
		t.Fatalf("expected today 10 total 40, got %+v", sum)
	}

	records, err := svc.Activity(ctx, "meditation", "2024-03-08", "2024-03-09")
	if err != nil {
		t.Fatalf("Activity failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records in window, got %d", len(records))
	}

	kinds, err := svc.Kinds(ctx)
	if err != nil {
		t.Fatalf("Kinds failed: %v", err)
	}
	if strings.Join(kinds, ",") != "meditation" {
		t.Fatalf("expected meditation tracker, got %v", kinds)
	}
}

func TestServiceLogActivityRejects(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC))

	cases := []LogActivityOptions{
		{Kind: "", Value: 1},
		{Kind: "food", Value: -1},
		{Kind: "food", Value: 1, Day: "yesterday"},
		{Kind: "food", Value: 1, Day: "2099-01-01"},
		{Kind: "mood", Value: 7},
	}
	for _, c := range cases {
		if _, err := svc.LogActivity(ctx, c); err == nil {
			t.Fatalf("expected %+v to be rejected", c)
		}
	}
}

func TestRunnerRequiresPersistence(t *testing.T) {
	if err := (Runner{}).Do(context.Background()); err == nil {
		t.Fatalf("expected error without persistence")
	}
}

func TestServiceBudget(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC))
	svc.SavedBudget = 40

	for _, opts := range []LogActivityOptions{
		{Kind: "expense", Value: 9.5, Quantity: 2},
		{Kind: "expense", Value: 11, Day: "2024-03-01"},
		{Kind: "mood", Value: 3},
	} {
		if _, err := svc.LogActivity(ctx, opts); err != nil {
			t.Fatalf("log %+v: %v", opts, err)
		}
	}

	saved, err := svc.Budget(ctx, nil)
	if err != nil {
		t.Fatalf("budget: %v", err)
	}
	if saved.Total != 40 || saved.Spent != 30 || saved.Remaining != 10 || saved.PercentUsed != 75 {
		t.Fatalf("unexpected saved budget %+v", saved)
	}

	total := 20.0
	over, err := svc.Budget(ctx, &total)
	if err != nil {
		t.Fatalf("budget: %v", err)
	}
	if !over.Over || over.Remaining != -10 || over.PercentUsed != 150 {
		t.Fatalf("unexpected budget %+v", over)
	}
}
