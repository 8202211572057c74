// Package complete provides the runner logic for toggling task completion.
package complete

import (
	"context"
	"io"
	"time"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/bucket"
	"tableflip.dev/daybook/pkg/printers"
	"tableflip.dev/daybook/pkg/store"
)

// Complete toggles completion of the task with ID.
type Complete struct {
	ID  string
	Now time.Time

	JSON bool
	Out  io.Writer

	Persistence store.Persistence
}

// Do toggles the task and prints the bucket it now lands in.
func (n *Complete) Do(ctx context.Context) error {
	svc := app.Service{Persistence: n.Persistence}
	t, err := svc.ToggleTask(ctx, n.ID)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: true, Out: n.Out}
	if n.JSON {
		return pp.JSON(t)
	}

	bs, err := svc.Buckets(ctx, n.Now)
	if err != nil {
		return err
	}
	b := bucket.Of(t, n.Now)
	if b == bucket.None {
		return nil
	}
	pp.NewLine()
	pp.Buckets(n.Now, bs, b)
	return nil
}
