package task

import (
	"fmt"
	"strings"
)

// Status is the three-state workflow position of a task.
type Status string

const (
	Todo       Status = "todo"
	InProgress Status = "in-progress"
	Done       Status = "done"
)

// AllStatuses returns the statuses in board order.
func AllStatuses() []Status {
	return []Status{Todo, InProgress, Done}
}

func (s Status) Valid() bool {
	switch s {
	case Todo, InProgress, Done:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// ParseStatus converts user input to a Status. Aliases are accepted; anything
// else is an error.
func ParseStatus(raw string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "todo", "to-do", "open":
		return Todo, nil
	case "in-progress", "inprogress", "in_progress", "doing", "wip":
		return InProgress, nil
	case "done", "complete", "completed":
		return Done, nil
	}
	return "", fmt.Errorf("unknown status %q (expected todo, in-progress or done)", raw)
}

// NormalizeStatus is the lenient form of ParseStatus used when reading
// records written elsewhere: unknown values become Todo.
func NormalizeStatus(raw string) Status {
	s, err := ParseStatus(raw)
	if err != nil {
		return Todo
	}
	return s
}
