// Package budget provides the runner that measures spending against the
// configured budget.
package budget

import (
	"context"
	"io"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/printers"
	"tableflip.dev/daybook/pkg/store"
)

type Budget struct {
	Total float64

	JSON bool
	Out  io.Writer

	Persistence store.Persistence
}

func (n *Budget) Do(ctx context.Context) error {
	svc := app.Service{Persistence: n.Persistence}
	b, err := svc.Budget(ctx, n.Total)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: n.Out}
	if n.JSON {
		return pp.JSON(b)
	}
	pp.NewLine()
	pp.Budget(b)
	return nil
}
