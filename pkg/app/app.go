// Package app provides the operations the CLI and the MCP server share. It
// loads records from persistence, runs them through the bucket, task and
// streak packages, and writes results back.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tableflip.dev/daybook/pkg/bucket"
	"tableflip.dev/daybook/pkg/store"
	"tableflip.dev/daybook/pkg/task"
)

// Service provides high-level operations for tasks and activity logs.
type Service struct {
	Persistence store.Persistence
}

var (
	ErrNoPersistence = errors.New("app: no persistence configured")
	ErrNotFound      = errors.New("app: not found")
	ErrInvalidStatus = errors.New("app: invalid status")
	ErrEmptyTitle    = errors.New("app: title required")
	ErrFutureDay     = errors.New("app: day is after today")
)

// Tasks lists every stored task in creation order.
func (s *Service) Tasks(ctx context.Context) ([]*task.Task, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	return s.Persistence.ListTasks(ctx)
}

// Task returns the task with the given id.
func (s *Service) Task(ctx context.Context, id string) (*task.Task, error) {
	all, err := s.Tasks(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range all {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: task %q", ErrNotFound, id)
}

// AddTask creates and stores a new task.
func (s *Service) AddTask(ctx context.Context, title string, status task.Status, now time.Time) (*task.Task, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if status == "" {
		status = task.Todo
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	t := task.New(title, status, now)
	if err := s.Persistence.StoreTask(t); err != nil {
		return nil, err
	}
	return t, nil
}

// ToggleTask flips completion for the task id, the way a checkbox list does.
func (s *Service) ToggleTask(ctx context.Context, id string) (*task.Task, error) {
	return s.update(ctx, id, func(t task.Task) (task.Task, error) {
		return t.Toggle(), nil
	})
}

// MoveTask sets the workflow status of the task id, the way a board does.
func (s *Service) MoveTask(ctx context.Context, id string, status task.Status) (*task.Task, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return s.update(ctx, id, func(t task.Task) (task.Task, error) {
		return t.WithStatus(status), nil
	})
}

// RenameTask replaces the title of the task id.
func (s *Service) RenameTask(ctx context.Context, id, title string) (*task.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	return s.update(ctx, id, func(t task.Task) (task.Task, error) {
		t.Title = title
		return t, nil
	})
}

// DeleteTask removes a task permanently.
func (s *Service) DeleteTask(ctx context.Context, id string) error {
	t, err := s.Task(ctx, id)
	if err != nil {
		return err
	}
	return s.Persistence.DeleteTask(t)
}

func (s *Service) update(ctx context.Context, id string, fn func(task.Task) (task.Task, error)) (*task.Task, error) {
	current, err := s.Task(ctx, id)
	if err != nil {
		return nil, err
	}
	next, err := fn(*current)
	if err != nil {
		return nil, err
	}
	if err := s.Persistence.StoreTask(&next); err != nil {
		return nil, err
	}
	return &next, nil
}

// Buckets classifies every task into the Today, Yesterday and Earlier views
// as of now.
func (s *Service) Buckets(ctx context.Context, now time.Time) (bucket.Buckets, error) {
	all, err := s.Tasks(ctx)
	if err != nil {
		return bucket.Buckets{}, err
	}
	return bucket.Classify(all, now), nil
}

// Column is one status lane of the board.
type Column struct {
	Status task.Status  `json:"status"`
	Tasks  []*task.Task `json:"tasks"`
}

// Board groups tasks by workflow status in todo, in-progress, done order.
type Board struct {
	Columns []Column `json:"columns"`
}

// Board returns every task grouped by status.
func (s *Service) Board(ctx context.Context) (Board, error) {
	all, err := s.Tasks(ctx)
	if err != nil {
		return Board{}, err
	}
	statuses := task.AllStatuses()
	index := make(map[task.Status]int, len(statuses))
	b := Board{Columns: make([]Column, len(statuses))}
	for i, st := range statuses {
		index[st] = i
		b.Columns[i] = Column{Status: st, Tasks: []*task.Task{}}
	}
	for _, t := range all {
		i, ok := index[t.Status]
		if !ok {
			i = index[task.Todo]
		}
		b.Columns[i].Tasks = append(b.Columns[i].Tasks, t)
	}
	return b, nil
}

// Counts returns how many tasks are completed and how many remain.
func (s *Service) Counts(ctx context.Context) (completed, remaining int, err error) {
	all, err := s.Tasks(ctx)
	if err != nil {
		return 0, 0, err
	}
	for _, t := range all {
		if t.Completed() {
			completed++
		} else {
			remaining++
		}
	}
	return completed, remaining, nil
}
