// Package stats provides the runner that summarizes a tracker.
package stats

import (
	"context"
	"io"
	"time"

	"tableflip.dev/daybook/pkg/activity"
	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/printers"
	"tableflip.dev/daybook/pkg/store"
)

type Stats struct {
	Kind activity.Kind
	Now  time.Time

	JSON bool
	Out  io.Writer

	Persistence store.Persistence
}

func (n *Stats) Do(ctx context.Context) error {
	svc := app.Service{Persistence: n.Persistence}
	s, err := svc.Stats(ctx, n.Kind, n.Now)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: n.Out}
	if n.JSON {
		return pp.JSON(s)
	}
	pp.NewLine()
	pp.Stats(s)
	return nil
}
