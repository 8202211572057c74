// Package history provides the runner that lists a tracker's log.
package history

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

// History prints the records of Kind logged within Window of Now.
type History struct {
	Kind   activity.Kind
	Window time.Duration
	Now    time.Time
	// Calendar prints a month calendar of active days instead of the table.
	Calendar bool

	ShowID bool
	JSON   bool
	Out    io.Writer

	Persistence store.Persistence
}

func (n *History) Do(ctx context.Context) error {
	svc := app.Service{Persistence: n.Persistence}
	today := timeutil.DayOf(n.Now)
	since := timeutil.WindowStart(n.Now, n.Window)

	records, err := svc.Activity(ctx, n.Kind, since, today)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	if n.JSON {
		return pp.JSON(records)
	}

	pp.NewLine()
	if !n.Calendar {
		pp.Records(n.Kind, records...)
		return nil
	}

	byDay := activity.Daily(n.Kind, records)
	months := []timeutil.Day{}
	for m := timeutil.NewDay(since.Year, since.Month, 1); !m.After(today); m = timeutil.NewDay(m.Year, m.Month+1, 1) {
		months = append(months, m)
	}
	pp.Title(string(n.Kind))
	for _, m := range months {
		pp.Month(m, byDay)
	}
	return nil
}
