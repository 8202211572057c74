// Package get provides the runner that lists tasks by day bucket.
package get

import (
	"context"
	"io"
	"time"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/bucket"
	"tableflip.dev/daybook/pkg/printers"
	"tableflip.dev/daybook/pkg/store"
)

// Get prints the requested buckets. An empty Buckets prints all three.
type Get struct {
	Buckets []bucket.Bucket
	Now     time.Time

	ShowID bool
	JSON   bool
	Out    io.Writer

	Persistence store.Persistence
}

func (n *Get) Do(ctx context.Context) error {
	svc := app.Service{Persistence: n.Persistence}
	bs, err := svc.Buckets(ctx, n.Now)
	if err != nil {
		return err
	}

	which := n.Buckets
	if len(which) == 0 {
		which = []bucket.Bucket{bucket.Today, bucket.Yesterday, bucket.Earlier}
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	if n.JSON {
		if len(which) == 1 {
			return pp.JSON(bs.Get(which[0]))
		}
		return pp.JSON(bs)
	}

	pp.NewLine()
	pp.Buckets(n.Now, bs, which...)

	completed, remaining, err := svc.Counts(ctx)
	if err != nil {
		return err
	}
	pp.Counts(completed, remaining)
	return nil
}
