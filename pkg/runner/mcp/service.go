// Package mcp provides the Model Context Protocol server integration for daybook.
package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tableflip.dev/daybook/pkg/activity"
	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/bucket"
	"tableflip.dev/daybook/pkg/glyph"
	"tableflip.dev/daybook/pkg/store"
	"tableflip.dev/daybook/pkg/streak"
	"tableflip.dev/daybook/pkg/task"
	"tableflip.dev/daybook/pkg/timeutil"
)

// Service adapts app.Service to transport-friendly values for the MCP server.
type Service struct {
	App *app.Service
	// Now returns the current instant; defaults to time.Now.
	Now func() time.Time
	// SavedBudget is measured against when a budget call names no total.
	SavedBudget float64
}

// NewService builds a service wrapper using the provided persistence layer.
func NewService(p store.Persistence) *Service {
	return &Service{App: &app.Service{Persistence: p}}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// TaskDTO is a transport-friendly projection of a task.
type TaskDTO struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Status       string `json:"status"`
	StatusSymbol string `json:"statusSymbol"`
	Completed    bool   `json:"completed"`
	Bucket       string `json:"bucket,omitempty"`
	CreatedISO   string `json:"created"`
	CreatedUnix  int64  `json:"createdUnix"`
}

func (s *Service) toDTO(t *task.Task, now time.Time) TaskDTO {
	dto := TaskDTO{
		ID:           t.ID,
		Title:        t.Title,
		Status:       string(t.Status),
		StatusSymbol: glyph.ForStatus(t.Status).Symbol,
		Completed:    t.Completed(),
		CreatedISO:   timeutil.FormatTime(t.Created.Time),
		CreatedUnix:  t.Created.Unix(),
	}
	if b := bucket.Of(t, now); b != bucket.None {
		dto.Bucket = b.String()
	}
	return dto
}

func (s *Service) toDTOs(tasks []*task.Task, now time.Time) []TaskDTO {
	out := make([]TaskDTO, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, s.toDTO(t, now))
	}
	return out
}

// BucketsDTO mirrors bucket.Buckets with projected tasks.
type BucketsDTO struct {
	Today     []TaskDTO `json:"today"`
	Yesterday []TaskDTO `json:"yesterday"`
	Earlier   []TaskDTO `json:"earlier"`
}

// ColumnDTO is one lane of the board.
type ColumnDTO struct {
	Status string    `json:"status"`
	Tasks  []TaskDTO `json:"tasks"`
}

// StreakDTO reports the streak for a tracker.
type StreakDTO struct {
	Kind string `json:"kind"`
	streak.Result
}

// AddTask creates a task with an optional initial status.
func (s *Service) AddTask(ctx context.Context, title, status string) (*TaskDTO, error) {
	st := task.Todo
	if strings.TrimSpace(status) != "" {
		var err error
		if st, err = task.ParseStatus(status); err != nil {
			return nil, err
		}
	}
	now := s.now()
	t, err := s.App.AddTask(ctx, title, st, now)
	if err != nil {
		return nil, err
	}
	dto := s.toDTO(t, now)
	return &dto, nil
}

// ToggleTask flips completion of a task.
func (s *Service) ToggleTask(ctx context.Context, id string) (*TaskDTO, error) {
	t, err := s.App.ToggleTask(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := s.toDTO(t, s.now())
	return &dto, nil
}

// SetTaskStatus moves a task to status.
func (s *Service) SetTaskStatus(ctx context.Context, id, status string) (*TaskDTO, error) {
	st, err := task.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	t, err := s.App.MoveTask(ctx, id, st)
	if err != nil {
		return nil, err
	}
	dto := s.toDTO(t, s.now())
	return &dto, nil
}

// TaskByID fetches a single task.
func (s *Service) TaskByID(ctx context.Context, id string) (*TaskDTO, error) {
	t, err := s.App.Task(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := s.toDTO(t, s.now())
	return &dto, nil
}

// Buckets classifies every task against the current day.
func (s *Service) Buckets(ctx context.Context) (*BucketsDTO, error) {
	now := s.now()
	bs, err := s.App.Buckets(ctx, now)
	if err != nil {
		return nil, err
	}
	return &BucketsDTO{
		Today:     s.toDTOs(bs.Today, now),
		Yesterday: s.toDTOs(bs.Yesterday, now),
		Earlier:   s.toDTOs(bs.Earlier, now),
	}, nil
}

// Board groups tasks by status.
func (s *Service) Board(ctx context.Context) ([]ColumnDTO, error) {
	now := s.now()
	b, err := s.App.Board(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ColumnDTO, 0, len(b.Columns))
	for _, c := range b.Columns {
		out = append(out, ColumnDTO{Status: string(c.Status), Tasks: s.toDTOs(c.Tasks, now)})
	}
	return out, nil
}

// LogActivityOptions captures the parameters used to log an activity record.
type LogActivityOptions struct {
	Kind     string
	Value    float64
	Quantity float64
	Note     string
	Day      string
}

// LogActivity validates and stores a record.
func (s *Service) LogActivity(ctx context.Context, opts LogActivityOptions) (*activity.Record, error) {
	kind, err := activity.ParseKind(opts.Kind)
	if err != nil {
		return nil, err
	}
	r := activity.Record{
		Kind:     kind,
		Value:    opts.Value,
		Quantity: opts.Quantity,
		Note:     strings.TrimSpace(opts.Note),
	}
	if strings.TrimSpace(opts.Day) != "" {
		d, err := timeutil.ParseDay(opts.Day)
		if err != nil {
			return nil, fmt.Errorf("invalid day: %w", err)
		}
		r.Day = d
	}
	return s.App.LogActivity(ctx, r, s.now())
}

// Streak reports the current and longest streak for a tracker.
func (s *Service) Streak(ctx context.Context, kind string) (*StreakDTO, error) {
	k, err := activity.ParseKind(kind)
	if err != nil {
		return nil, err
	}
	r, err := s.App.Streak(ctx, k, s.now())
	if err != nil {
		return nil, err
	}
	return &StreakDTO{Kind: string(k), Result: r}, nil
}

// Stats summarizes a tracker.
func (s *Service) Stats(ctx context.Context, kind string) (*activity.Summary, error) {
	k, err := activity.ParseKind(kind)
	if err != nil {
		return nil, err
	}
	sum, err := s.App.Stats(ctx, k, s.now())
	if err != nil {
		return nil, err
	}
	return &sum, nil
}

// Budget compares expense spending with total, or with SavedBudget when total
// is nil.
func (s *Service) Budget(ctx context.Context, total *float64) (*activity.Budget, error) {
	amount := s.SavedBudget
	if total != nil {
		amount = *total
	}
	b, err := s.App.Budget(ctx, amount)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Activity lists a tracker's records between since and until, both optional
// YYYY-MM-DD days.
func (s *Service) Activity(ctx context.Context, kind, since, until string) ([]*activity.Record, error) {
	k, err := activity.ParseKind(kind)
	if err != nil {
		return nil, err
	}
	var from, to timeutil.Day
	if since != "" {
		if from, err = timeutil.ParseDay(since); err != nil {
			return nil, fmt.Errorf("invalid since: %w", err)
		}
	}
	if until != "" {
		if to, err = timeutil.ParseDay(until); err != nil {
			return nil, fmt.Errorf("invalid until: %w", err)
		}
	}
	return s.App.Activity(ctx, k, from, to)
}

// Kinds lists every tracker with at least one record.
func (s *Service) Kinds(ctx context.Context) ([]string, error) {
	kinds, err := s.App.Kinds(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, string(k))
	}
	return out, nil
}
