// Package track provides the runner that logs activity records.
package track

import (
	"context"
	"io"
	"time"

	"tableflip.dev/daybook/pkg/activity"
	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/printers"
	"tableflip.dev/daybook/pkg/store"
	"tableflip.dev/daybook/pkg/timeutil"
)

// Track logs one record for Kind and prints the day's records and streak.
type Track struct {
	Kind     activity.Kind
	Value    float64
	Quantity float64
	Note     string
	// Day defaults to the day of Now.
	Day timeutil.Day
	Now time.Time

	ShowID bool
	JSON   bool
	Out    io.Writer

	Persistence store.Persistence
}

func (n *Track) Do(ctx context.Context) error {
	svc := app.Service{Persistence: n.Persistence}
	r, err := svc.LogActivity(ctx, activity.Record{
		Kind:     n.Kind,
		Day:      n.Day,
		Value:    n.Value,
		Quantity: n.Quantity,
		Note:     n.Note,
	}, n.Now)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	if n.JSON {
		return pp.JSON(r)
	}

	day, err := svc.Activity(ctx, n.Kind, r.Day, r.Day)
	if err != nil {
		return err
	}
	res, err := svc.Streak(ctx, n.Kind, n.Now)
	if err != nil {
		return err
	}
	pp.NewLine()
	pp.Records(n.Kind, day...)
	pp.Streak(n.Kind, res)
	return nil
}
