package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"tableflip.dev/daybook/pkg/activity"
	"tableflip.dev/daybook/pkg/task"
	"tableflip.dev/daybook/pkg/timeutil"
)

// SQLiteFile is the database file name inside the base path.
const SQLiteFile = "daybook.db"

const schema = `
CREATE TABLE IF NOT EXISTS tasks (
    id         TEXT PRIMARY KEY,
    title      TEXT NOT NULL,
    status     TEXT NOT NULL DEFAULT 'todo',
    completed  INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS activity (
    id         TEXT PRIMARY KEY,
    kind       TEXT NOT NULL,
    day        TEXT NOT NULL,
    value      REAL NOT NULL CHECK (value >= 0),
    quantity   REAL NOT NULL DEFAULT 0 CHECK (quantity >= 0),
    note       TEXT,
    created_at TEXT NOT NULL
);
`

// migrations run in order after schema creation. Each must be idempotent.
var migrations = []string{
	`CREATE INDEX IF NOT EXISTS idx_activity_kind_day ON activity(kind, day)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_created ON tasks(created_at)`,
}

func loadSQLite(basePath string) (*sqlStore, error) {
	path := basePath
	switch basePath {
	case "":
		return nil, errors.New("store: base path required")
	case ":memory:":
	default:
		if err := os.MkdirAll(basePath, 0o755); err != nil {
			return nil, fmt.Errorf("store: ensure base path: %w", err)
		}
		path = filepath.Join(basePath, SQLiteFile)
	}
	db, err := openSQLite(path)
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return &sqlStore{db: db}, nil
}

func openSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}
	if path == ":memory:" {
		// Every pooled connection would get its own empty database.
		db.SetMaxOpenConns(1)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("store: setting pragma %q: %w", p, err)
		}
	}
	return db, nil
}

func migrate(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("store: create schema: %w", err)
	}
	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("store: migration %d: %w", i+1, err)
		}
	}
	return nil
}

type sqlStore struct {
	db *sql.DB
}

func (s *sqlStore) ListTasks(ctx context.Context) ([]*task.Task, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, status, completed, created_at FROM tasks ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("store: listing tasks: %w", err)
	}
	defer rows.Close()

	var out []*task.Task
	for rows.Next() {
		var (
			t         task.Task
			status    string
			completed bool
			created   string
		)
		if err := rows.Scan(&t.ID, &t.Title, &status, &completed, &created); err != nil {
			return nil, fmt.Errorf("store: scanning task: %w", err)
		}
		switch {
		case status != "":
			t.Status = task.NormalizeStatus(status)
		case completed:
			t.Status = task.Done
		default:
			t.Status = task.Todo
		}
		if t.Created.Time, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("store: task %s created_at: %w", t.ID, err)
		}
		out = append(out, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// Text order on created_at is wrong across offsets.
	sortTasks(out)
	return out, nil
}

func (s *sqlStore) StoreTask(t *task.Task) error {
	if t == nil {
		return errors.New("store: nil task")
	}
	if t.ID == "" {
		t.ID = newID()
	}
	_, err := s.db.Exec(
		`INSERT INTO tasks (id, title, status, completed, created_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		     title = excluded.title,
		     status = excluded.status,
		     completed = excluded.completed,
		     created_at = excluded.created_at`,
		t.ID, t.Title, string(t.Status), t.Completed(), t.Created.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("store: storing task: %w", err)
	}
	return nil
}

func (s *sqlStore) DeleteTask(t *task.Task) error {
	if t == nil || t.ID == "" {
		return errors.New("store: task has no id")
	}
	if _, err := s.db.Exec(`DELETE FROM tasks WHERE id = ?`, t.ID); err != nil {
		return fmt.Errorf("store: deleting task: %w", err)
	}
	return nil
}

func (s *sqlStore) ListActivity(ctx context.Context, kind activity.Kind) ([]*activity.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kind, day, value, quantity, note, created_at
		 FROM activity WHERE kind = ?`, string(kind))
	if err != nil {
		return nil, fmt.Errorf("store: listing activity: %w", err)
	}
	defer rows.Close()

	var out []*activity.Record
	for rows.Next() {
		var (
			r       activity.Record
			kindCol string
			day     string
			note    sql.NullString
			created string
		)
		if err := rows.Scan(&r.ID, &kindCol, &day, &r.Value, &r.Quantity, &note, &created); err != nil {
			return nil, fmt.Errorf("store: scanning activity: %w", err)
		}
		r.Kind = activity.Kind(kindCol)
		r.Note = note.String
		if r.Day, err = timeutil.ParseDay(day); err != nil {
			return nil, fmt.Errorf("store: activity %s: %w", r.ID, err)
		}
		if r.Created.Time, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("store: activity %s created_at: %w", r.ID, err)
		}
		out = append(out, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sortRecords(out)
	return out, nil
}

func (s *sqlStore) StoreActivity(r *activity.Record) error {
	if r == nil {
		return errors.New("store: nil record")
	}
	if err := r.Validate(); err != nil {
		return err
	}
	if r.ID == "" {
		r.ID = newID()
	}
	_, err := s.db.Exec(
		`INSERT INTO activity (id, kind, day, value, quantity, note, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		     kind = excluded.kind,
		     day = excluded.day,
		     value = excluded.value,
		     quantity = excluded.quantity,
		     note = excluded.note,
		     created_at = excluded.created_at`,
		r.ID, string(r.Kind), r.Day.String(), r.Value, r.Quantity, r.Note, r.Created.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("store: storing activity: %w", err)
	}
	return nil
}

func (s *sqlStore) DeleteActivity(r *activity.Record) error {
	if r == nil || r.ID == "" {
		return errors.New("store: record has no id")
	}
	if _, err := s.db.Exec(`DELETE FROM activity WHERE id = ?`, r.ID); err != nil {
		return fmt.Errorf("store: deleting activity: %w", err)
	}
	return nil
}

func (s *sqlStore) Kinds(ctx context.Context) ([]activity.Kind, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT kind FROM activity ORDER BY kind`)
	if err != nil {
		return nil, fmt.Errorf("store: listing kinds: %w", err)
	}
	defer rows.Close()

	var kinds []activity.Kind
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("store: scanning kind: %w", err)
		}
		kinds = append(kinds, activity.Kind(k))
	}
	return kinds, rows.Err()
}

func (s *sqlStore) Watch(context.Context) (<-chan Event, error) {
	return nil, ErrWatchUnsupported
}

func (s *sqlStore) Close() error {
	return s.db.Close()
}
