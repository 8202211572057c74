package budget

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/daybook/pkg/activity"
	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/store"
	"tableflip.dev/daybook/pkg/timeutil"
)

type testConfig struct{ path string }

func (c testConfig) BasePath() string         { return c.path }
func (c testConfig) Backend() store.Backend   { return store.BackendSQLite }
func (c testConfig) Location() *time.Location { return time.UTC }

func seed(t *testing.T, now time.Time) store.Persistence {
	t.Helper()
	p, err := store.Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	t.Cleanup(func() { _ = p.Close() })

	svc := app.Service{Persistence: p}
	today := timeutil.DayOf(now)
	for _, r := range []activity.Record{
		{Kind: activity.Expense, Day: today, Value: 12, Quantity: 3, Note: "lunch"},
		{Kind: activity.Expense, Day: today.AddDays(-3), Value: 64},
		{Kind: activity.Food, Day: today, Value: 800},
	} {
		if _, err := svc.LogActivity(context.Background(), r, now); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	return p
}

func TestBudgetPrintsRemaining(t *testing.T) {
	color.NoColor = true
	now := time.Date(2024, time.June, 12, 21, 0, 0, 0, time.UTC)
	p := seed(t, now)

	var buf bytes.Buffer
	b := Budget{Total: 200, Out: &buf, Persistence: p}
	if err := b.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Budget", "$200", "$100", "50.0%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output:\n%s", want, out)
		}
	}
}

func TestBudgetJSON(t *testing.T) {
	now := time.Date(2024, time.June, 12, 21, 0, 0, 0, time.UTC)
	p := seed(t, now)

	var buf bytes.Buffer
	b := Budget{Total: 80, JSON: true, Out: &buf, Persistence: p}
	if err := b.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	var got activity.Budget
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	if want := (activity.Budget{Total: 80, Spent: 100, Remaining: -20, PercentUsed: 125, Over: true}); got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestBudgetRequiresPersistence(t *testing.T) {
	if err := (&Budget{Out: &bytes.Buffer{}}).Do(context.Background()); err == nil {
		t.Fatalf("expected error without persistence")
	}
}
