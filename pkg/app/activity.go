package app

import (
	"context"
	"fmt"
	"time"

	"tableflip.dev/daybook/pkg/activity"
	"tableflip.dev/daybook/pkg/streak"
	"tableflip.dev/daybook/pkg/timeutil"
)

// LogActivity validates and stores a record. Created defaults to now and Day
// to the day of now. Days after today are rejected with ErrFutureDay.
func (s *Service) LogActivity(ctx context.Context, r activity.Record, now time.Time) (*activity.Record, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	if r.Created.IsZero() {
		r.Created = timeutil.Timestamp{Time: now}
	}
	today := timeutil.DayOf(now)
	if r.Day.IsZero() {
		r.Day = today
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if r.Day.After(today) {
		return nil, fmt.Errorf("%w: %s", ErrFutureDay, r.Day)
	}
	if err := s.Persistence.StoreActivity(&r); err != nil {
		return nil, err
	}
	return &r, nil
}

// DeleteActivity removes one record from a tracker.
func (s *Service) DeleteActivity(ctx context.Context, kind activity.Kind, id string) error {
	all, err := s.records(ctx, kind)
	if err != nil {
		return err
	}
	for _, r := range all {
		if r.ID == id {
			return s.Persistence.DeleteActivity(r)
		}
	}
	return fmt.Errorf("%w: %s record %q", ErrNotFound, kind, id)
}

// Activity lists the records of kind whose day falls in [since, until].
// Zero bounds are open.
func (s *Service) Activity(ctx context.Context, kind activity.Kind, since, until timeutil.Day) ([]*activity.Record, error) {
	all, err := s.records(ctx, kind)
	if err != nil {
		return nil, err
	}
	if !since.IsZero() && !until.IsZero() && since.After(until) {
		since, until = until, since
	}
	out := make([]*activity.Record, 0, len(all))
	for _, r := range all {
		if !since.IsZero() && r.Day.Before(since) {
			continue
		}
		if !until.IsZero() && r.Day.After(until) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// Streak computes the current and longest streak for a tracker as of now.
func (s *Service) Streak(ctx context.Context, kind activity.Kind, now time.Time) (streak.Result, error) {
	all, err := s.records(ctx, kind)
	if err != nil {
		return streak.Result{}, err
	}
	history, today := activity.Split(activity.Daily(kind, all), now)
	return streak.Compute(history, today, now), nil
}

// Stats summarizes a tracker as of now.
func (s *Service) Stats(ctx context.Context, kind activity.Kind, now time.Time) (activity.Summary, error) {
	all, err := s.records(ctx, kind)
	if err != nil {
		return activity.Summary{}, err
	}
	return activity.Summarize(kind, all, now), nil
}

// Budget measures everything logged to the expense tracker against total.
func (s *Service) Budget(ctx context.Context, total float64) (activity.Budget, error) {
	if total < 0 {
		return activity.Budget{}, fmt.Errorf("%w: budget %v", activity.ErrNegative, total)
	}
	all, err := s.records(ctx, activity.Expense)
	if err != nil {
		return activity.Budget{}, err
	}
	return activity.BudgetStatus(total, activity.Spent(all)), nil
}

// Kinds lists trackers that have at least one record.
func (s *Service) Kinds(ctx context.Context) ([]activity.Kind, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	return s.Persistence.Kinds(ctx)
}

func (s *Service) records(ctx context.Context, kind activity.Kind) ([]*activity.Record, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	return s.Persistence.ListActivity(ctx, kind)
}
