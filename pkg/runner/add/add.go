// Package add provides the runner that creates tasks.
package add

import (
	"context"
	"io"
	"time"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/bucket"
	"tableflip.dev/daybook/pkg/printers"
	"tableflip.dev/daybook/pkg/store"
	"tableflip.dev/daybook/pkg/task"
)

// Add creates a task dated Now and prints today's list.
type Add struct {
	Title  string
	Status task.Status
	Now    time.Time

	ShowID bool
	JSON   bool
	Out    io.Writer

	Persistence store.Persistence
}

// Do stores the task.
func (n *Add) Do(ctx context.Context) error {
	svc := app.Service{Persistence: n.Persistence}
	t, err := svc.AddTask(ctx, n.Title, n.Status, n.Now)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	if n.JSON {
		return pp.JSON(t)
	}

	bs, err := svc.Buckets(ctx, n.Now)
	if err != nil {
		return err
	}
	pp.NewLine()
	pp.Buckets(n.Now, bs, bucket.Today)
	return nil
}
