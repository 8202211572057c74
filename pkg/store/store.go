// Package store persists tasks and activity records. It is the only package
// in daybook that touches the disk.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"tableflip.dev/daybook/pkg/activity"
	"tableflip.dev/daybook/pkg/task"
)

// Persistence defines the persistence contract for tasks and activity logs.
type Persistence interface {
	ListTasks(ctx context.Context) ([]*task.Task, error)
	StoreTask(t *task.Task) error
	DeleteTask(t *task.Task) error

	ListActivity(ctx context.Context, kind activity.Kind) ([]*activity.Record, error)
	StoreActivity(r *activity.Record) error
	DeleteActivity(r *activity.Record) error
	Kinds(ctx context.Context) ([]activity.Kind, error)

	Watch(ctx context.Context) (<-chan Event, error)
	Close() error
}

var ErrWatchUnsupported = errors.New("store: backend does not support watching")

// TasksCollection is the collection name events carry for task changes.
const TasksCollection = "tasks"

const activityPrefix = "activity."

// ActivityCollection is the collection name events carry for a tracker.
func ActivityCollection(kind activity.Kind) string {
	return activityPrefix + string(kind)
}

// KindOf returns the tracker a collection name refers to.
func KindOf(collection string) (activity.Kind, bool) {
	if !strings.HasPrefix(collection, activityPrefix) {
		return "", false
	}
	return activity.Kind(strings.TrimPrefix(collection, activityPrefix)), true
}

// Load opens the backend named by cfg. A nil cfg is read with LoadConfig.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	switch cfg.Backend() {
	case "", BackendDiskv:
		return loadDiskv(cfg.BasePath())
	case BackendSQLite:
		return loadSQLite(cfg.BasePath())
	default:
		return nil, fmt.Errorf("store: unknown backend %q", cfg.Backend())
	}
}

func newID() string {
	return uuid.NewString()
}
