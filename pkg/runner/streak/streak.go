// Package streak provides the runner that reports activity streaks.
package streak

import (
	"context"
	"io"
	"time"

	"tableflip.dev/daybook/pkg/activity"
	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/printers"
	"tableflip.dev/daybook/pkg/store"
)

// Streak prints current and longest streaks for each of Kinds. No kinds
// means every tracker in the store.
type Streak struct {
	Kinds []activity.Kind
	Now   time.Time

	JSON bool
	Out  io.Writer

	Persistence store.Persistence
}

type result struct {
	Kind    activity.Kind `json:"kind"`
	Current int           `json:"current"`
	Longest int           `json:"longest"`
}

func (n *Streak) Do(ctx context.Context) error {
	svc := app.Service{Persistence: n.Persistence}
	kinds := n.Kinds
	if len(kinds) == 0 {
		var err error
		if kinds, err = svc.Kinds(ctx); err != nil {
			return err
		}
	}

	pp := printers.PrettyPrint{Out: n.Out}
	results := make([]result, 0, len(kinds))
	for _, k := range kinds {
		r, err := svc.Streak(ctx, k, n.Now)
		if err != nil {
			return err
		}
		results = append(results, result{Kind: k, Current: r.Current, Longest: r.Longest})
		if !n.JSON {
			pp.Streak(k, r)
		}
	}
	if n.JSON {
		return pp.JSON(results)
	}
	return nil
}
