// Package move provides the runner that sets a task's workflow status.
package move

import (
	"context"
	"io"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/printers"
	"tableflip.dev/daybook/pkg/store"
	"tableflip.dev/daybook/pkg/task"
)

// Move sets the status of the task with ID and prints the board.
type Move struct {
	ID     string
	Status task.Status

	ShowID bool
	JSON   bool
	Out    io.Writer

	Persistence store.Persistence
}

func (n *Move) Do(ctx context.Context) error {
	svc := app.Service{Persistence: n.Persistence}
	t, err := svc.MoveTask(ctx, n.ID, n.Status)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	if n.JSON {
		return pp.JSON(t)
	}

	b, err := svc.Board(ctx)
	if err != nil {
		return err
	}
	pp.NewLine()
	pp.Board(columns(b)...)
	return nil
}

func columns(b app.Board) []printers.BoardColumn {
	out := make([]printers.BoardColumn, 0, len(b.Columns))
	for _, c := range b.Columns {
		out = append(out, printers.BoardColumn{Status: c.Status, Tasks: c.Tasks})
	}
	return out
}
