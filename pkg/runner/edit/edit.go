// Package edit provides runners that rename and delete tasks.
package edit

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/printers"
	"tableflip.dev/daybook/pkg/store"
)

// Rename changes the title of the task with ID.
type Rename struct {
	ID    string
	Title string

	JSON bool
	Out  io.Writer

	Persistence store.Persistence
}

func (n *Rename) Do(ctx context.Context) error {
	svc := app.Service{Persistence: n.Persistence}
	t, err := svc.RenameTask(ctx, n.ID, n.Title)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{ShowID: true, Out: n.Out}
	if n.JSON {
		return pp.JSON(t)
	}
	pp.Tasks(time.Time{}, t)
	return nil
}

// Delete removes the task with ID.
type Delete struct {
	ID string

	JSON bool
	Out  io.Writer

	Persistence store.Persistence
}

func (n *Delete) Do(ctx context.Context) error {
	svc := app.Service{Persistence: n.Persistence}
	if err := svc.DeleteTask(ctx, n.ID); err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: n.Out}
	if n.JSON {
		return pp.JSON(map[string]string{"deleted": n.ID})
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}
	_, _ = fmt.Fprintf(out, "deleted %s\n", n.ID)
	return nil
}
