package get

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/bucket"
	"tableflip.dev/daybook/pkg/store"
	"tableflip.dev/daybook/pkg/task"
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
	ctx := context.Background()
	for _, s := range []struct {
		title  string
		status task.Status
		ago    int
	}{
		{"plan sprint", task.Todo, 0},
		{"old chore", task.InProgress, 3},
		{"shipped", task.Done, 1},
		{"archived", task.Done, 5},
	} {
		if _, err := svc.AddTask(ctx, s.title, s.status, now.AddDate(0, 0, -s.ago)); err != nil {
			t.Fatalf("add %s: %v", s.title, err)
		}
	}
	return p
}

func TestGetAll(t *testing.T) {
	color.NoColor = true
	now := time.Date(2024, time.June, 12, 10, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	g := Get{Now: now, Out: &buf, Persistence: seed(t, now)}
	if err := g.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Today - 2 tasks", "Yesterday - 1 task", "Earlier - 1 task", "Completed: 2  Remaining: 2"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output:\n%s", want, out)
		}
	}
}

func TestGetOneBucketJSON(t *testing.T) {
	now := time.Date(2024, time.June, 12, 10, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	g := Get{
		Buckets:     []bucket.Bucket{bucket.Today},
		Now:         now,
		JSON:        true,
		Out:         &buf,
		Persistence: seed(t, now),
	}
	if err := g.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}

	var got []task.Task
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 tasks today, got %d", len(got))
	}
	for _, tk := range got {
		if tk.Completed() {
			t.Fatalf("expected only open tasks today, got %+v", tk)
		}
	}
}
