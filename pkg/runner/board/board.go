// Package board provides the runner that prints tasks grouped by status.
package board

import (
	"context"
	"io"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/printers"
	"tableflip.dev/daybook/pkg/store"
)

type Board struct {
	ShowID bool
	JSON   bool
	Out    io.Writer

	Persistence store.Persistence
}

func (n *Board) Do(ctx context.Context) error {
	svc := app.Service{Persistence: n.Persistence}
	b, err := svc.Board(ctx)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	if n.JSON {
		return pp.JSON(b)
	}

	cols := make([]printers.BoardColumn, 0, len(b.Columns))
	for _, c := range b.Columns {
		cols = append(cols, printers.BoardColumn{Status: c.Status, Tasks: c.Tasks})
	}
	pp.NewLine()
	pp.Board(cols...)
	return nil
}
