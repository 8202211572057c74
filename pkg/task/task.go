// Package task defines the task record and the two mutation intents that move
// it between states.
//
// A task carries a single workflow Status. Completion is a projection of that
// status rather than a second field, so the list view (completed or not) and
// the board view (todo, in-progress, done) can never disagree.
package task

import (
	"encoding/json"
	"time"

	"tableflip.dev/daybook/pkg/timeutil"
)

type Task struct {
	ID      string             `json:"id"`
	Title   string             `json:"title"`
	Created timeutil.Timestamp `json:"created"`
	Status  Status             `json:"status"`
}

// New returns a task created at the given instant.
func New(title string, status Status, created time.Time) *Task {
	return &Task{
		Title:   title,
		Created: timeutil.Timestamp{Time: created},
		Status:  status,
	}
}

// Completed reports whether the task is done.
func (t Task) Completed() bool {
	return t.Status == Done
}

// Toggle flips completion from a two-state view. The result is always Todo
// or Done: an in-progress task toggles to Done, and toggling it back lands on
// Todo, not InProgress.
func (t Task) Toggle() Task {
	if t.Completed() {
		t.Status = Todo
	} else {
		t.Status = Done
	}
	return t
}

// WithStatus moves the task to s from a three-state view. Completion follows
// the new status.
func (t Task) WithStatus(s Status) Task {
	t.Status = s
	return t
}

type wireTask struct {
	ID        string             `json:"id"`
	Title     string             `json:"title"`
	Created   timeutil.Timestamp `json:"created"`
	Status    string             `json:"status,omitempty"`
	Completed *bool              `json:"completed,omitempty"`
}

// MarshalJSON writes the derived completed flag next to the status for
// readers that only understand the two-state form.
func (t Task) MarshalJSON() ([]byte, error) {
	completed := t.Completed()
	return json.Marshal(wireTask{
		ID:        t.ID,
		Title:     t.Title,
		Created:   t.Created,
		Status:    string(t.Status),
		Completed: &completed,
	})
}

// UnmarshalJSON accepts records that carry a status, a completed flag, or
// both. The status wins when both are present; unknown statuses become Todo.
func (t *Task) UnmarshalJSON(b []byte) error {
	var w wireTask
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	t.ID = w.ID
	t.Title = w.Title
	t.Created = w.Created
	switch {
	case w.Status != "":
		t.Status = NormalizeStatus(w.Status)
	case w.Completed != nil && *w.Completed:
		t.Status = Done
	default:
		t.Status = Todo
	}
	return nil
}
