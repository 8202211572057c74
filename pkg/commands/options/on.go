package options

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/timeutil"
)

const (
	layoutISO      = "2006-1-2"
	layoutISOShort = "1/2"
)

// OnOptions selects the day an activity record belongs to.
type OnOptions struct {
	OnString string
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Specify a day, example: --on="2020-2-28", --on="2/28" or --on=yesterday.`)
}

// GetOn returns the requested day relative to now, or the zero Day when no
// day was given.
func (o *OnOptions) GetOn(now time.Time) (timeutil.Day, error) {
	today := timeutil.DayOf(now)
	switch s := strings.ToLower(strings.TrimSpace(o.OnString)); s {
	case "":
		return timeutil.Day{}, nil
	case "today":
		return today, nil
	case "yesterday":
		return today.AddDays(-1), nil
	}

	t, err := time.Parse(layoutISO, o.OnString)
	if err == nil {
		return timeutil.NewDay(t.Year(), t.Month(), t.Day()), nil
	}
	t, err = time.Parse(layoutISOShort, o.OnString)
	if err != nil {
		return timeutil.Day{}, fmt.Errorf("invalid day %q", o.OnString)
	}
	// Records are logged after the fact, so 12/30 said on 1/2 means last year.
	d := timeutil.NewDay(now.Year(), t.Month(), t.Day())
	if d.After(today) {
		d = timeutil.NewDay(now.Year()-1, t.Month(), t.Day())
	}
	return d, nil
}
