package store

import (
	"context"
	"encoding/base32"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/daybook/pkg/activity"
	"tableflip.dev/daybook/pkg/task"
	"tableflip.dev/daybook/pkg/timeutil"
)

func loadDiskv(basePath string) (*persistence, error) {
	if basePath == "" {
		return nil, errors.New("store: base path required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

// persistence lays records out as <collection>/<day>/<id>, one JSON document
// per file.
type persistence struct {
	d        *diskv.Diskv
	basePath string
}

// keys returns the keys stored under collection.
func (p *persistence) keys(ctx context.Context, collection string) []string {
	ck := toCollection(collection)
	var out []string
	for key := range p.d.Keys(ctx.Done()) {
		if pk := keyToPathTransform(key); len(pk.Path) > 0 && pk.Path[0] == ck {
			out = append(out, key)
		}
	}
	return out
}

func (p *persistence) ListTasks(ctx context.Context) ([]*task.Task, error) {
	all := make([]*task.Task, 0)
	for _, key := range p.keys(ctx, TasksCollection) {
		val, err := p.d.Read(key)
		if err != nil {
			slog.Warn("store: read task", "key", key, "error", err)
			continue
		}
		t := &task.Task{}
		if err := json.Unmarshal(val, t); err != nil {
			slog.Warn("store: decode task", "key", key, "error", err)
			continue
		}
		t.ID = keyToPathTransform(key).FileName
		all = append(all, t)
	}
	sortTasks(all)
	return all, ctx.Err()
}

func (p *persistence) StoreTask(t *task.Task) error {
	if t == nil {
		return errors.New("store: nil task")
	}
	if t.ID == "" {
		t.ID = newID()
	}
	data, err := json.Marshal(t)
	if err != nil {
		return err
	}
	return p.d.Write(taskKey(t), data)
}

func (p *persistence) DeleteTask(t *task.Task) error {
	if t == nil || t.ID == "" {
		return errors.New("store: task has no id")
	}
	return p.d.Erase(taskKey(t))
}

func (p *persistence) ListActivity(ctx context.Context, kind activity.Kind) ([]*activity.Record, error) {
	all := make([]*activity.Record, 0)
	for _, key := range p.keys(ctx, ActivityCollection(kind)) {
		val, err := p.d.Read(key)
		if err != nil {
			slog.Warn("store: read activity", "key", key, "error", err)
			continue
		}
		r := &activity.Record{}
		if err := json.Unmarshal(val, r); err != nil {
			slog.Warn("store: decode activity", "key", key, "error", err)
			continue
		}
		r.ID = keyToPathTransform(key).FileName
		r.Kind = kind
		all = append(all, r)
	}
	sortRecords(all)
	return all, ctx.Err()
}

func (p *persistence) StoreActivity(r *activity.Record) error {
	if r == nil {
		return errors.New("store: nil record")
	}
	if err := r.Validate(); err != nil {
		return err
	}
	if r.ID == "" {
		r.ID = newID()
	}
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return p.d.Write(activityKey(r), data)
}

func (p *persistence) DeleteActivity(r *activity.Record) error {
	if r == nil || r.ID == "" {
		return errors.New("store: record has no id")
	}
	return p.d.Erase(activityKey(r))
}

func (p *persistence) Kinds(ctx context.Context) ([]activity.Kind, error) {
	seen := make(map[activity.Kind]struct{})
	for key := range p.d.Keys(ctx.Done()) {
		pk := keyToPathTransform(key)
		if len(pk.Path) == 0 {
			continue
		}
		if kind, ok := KindOf(fromCollection(pk.Path[0])); ok {
			seen[kind] = struct{}{}
		}
	}
	kinds := make([]activity.Kind, 0, len(seen))
	for k := range seen {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds, ctx.Err()
}

func (p *persistence) Close() error {
	return nil
}

func sortTasks(tasks []*task.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		left, right := tasks[i], tasks[j]
		lt, rt := left.Created.Time, right.Created.Time
		switch {
		case lt.Equal(rt):
			return left.ID < right.ID
		case lt.IsZero():
			return false
		case rt.IsZero():
			return true
		default:
			return lt.Before(rt)
		}
	})
}

func sortRecords(records []*activity.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		left, right := records[i], records[j]
		if left.Day != right.Day {
			return left.Day.Before(right.Day)
		}
		if !left.Created.Equal(right.Created.Time) {
			return left.Created.Before(right.Created.Time)
		}
		return left.ID < right.ID
	})
}

const keySeparator = "/"

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, keySeparator)
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return strings.Join(append(append([]string{}, pathKey.Path...), pathKey.FileName), keySeparator)
}

// taskKey makes `tasks/created-day/id`. The creation day is fixed for the
// life of a task, so a task never changes key.
func taskKey(t *task.Task) string {
	day := timeutil.DayOf(t.Created.UTC())
	return strings.Join([]string{toCollection(TasksCollection), day.String(), t.ID}, keySeparator)
}

// activityKey makes `activity.kind/day/id`.
func activityKey(r *activity.Record) string {
	return strings.Join([]string{toCollection(ActivityCollection(r.Kind)), r.Day.String(), r.ID}, keySeparator)
}

var collectionEncoding = base32.HexEncoding.WithPadding(base32.NoPadding)

func toCollection(s string) string {
	return strings.ToLower(collectionEncoding.EncodeToString([]byte(s)))
}

func fromCollection(s string) string {
	collection, err := collectionEncoding.DecodeString(strings.ToUpper(s))
	if err != nil {
		return ""
	}
	return string(collection)
}
