package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/activity"
	"tableflip.dev/daybook/pkg/commands/options"
	"tableflip.dev/daybook/pkg/runner/history"
	"tableflip.dev/daybook/pkg/runner/stats"
	"tableflip.dev/daybook/pkg/runner/streak"
	"tableflip.dev/daybook/pkg/runner/track"
)

const trackerHelp = `Trackers are named by kind. Built in kinds and their units:

food        kcal
meditation  min
exercise    min
expense     $
mood        /5, a whole score from 1 (very bad) to 5 (very good)

Any other lower case name starts a new tracker.`

func kindCompletions(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) != 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	names := []string{string(activity.Food), string(activity.Meditation), string(activity.Exercise), string(activity.Expense), string(activity.Mood)}
	p, _, err := open()
	if err != nil {
		return names, cobra.ShellCompDirectiveNoFileComp
	}
	defer closeStore(p)
	kinds, err := p.Kinds(context.Background())
	if err != nil {
		return names, cobra.ShellCompDirectiveNoFileComp
	}
	seen := map[string]bool{}
	for _, n := range names {
		seen[n] = true
	}
	for _, k := range kinds {
		if !seen[string(k)] {
			names = append(names, string(k))
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

func addTrack(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	on := &options.OnOptions{}
	var (
		kind     activity.Kind
		value    float64
		quantity float64
		note     string
	)

	cmd := &cobra.Command{
		Use:   "track <kind> <value>",
		Short: "Log an amount for a tracker",
		Long:  "Logs a per-unit amount for a day. The day's total is value times quantity, where no quantity counts as one.\n\n" + trackerHelp,
		Example: `
daybook track food 250 --qty 2 --note toast
daybook track meditation 15
daybook track exercise 30 --on yesterday
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 2 {
				return fmt.Errorf("requires a kind and a value")
			}
			var err error
			if kind, err = activity.ParseKind(args[0]); err != nil {
				return err
			}
			if value, err = strconv.ParseFloat(args[1], 64); err != nil {
				return fmt.Errorf("invalid value %q", args[1])
			}
			return nil
		},
		ValidArgsFunction: kindCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, now, err := open()
			if err != nil {
				return output.HandleError(err)
			}
			defer closeStore(p)

			day, err := on.GetOn(now)
			if err != nil {
				return output.HandleError(err)
			}
			s := track.Track{
				Kind:        kind,
				Value:       value,
				Quantity:    quantity,
				Note:        strings.TrimSpace(note),
				Day:         day,
				Now:         now,
				ShowID:      io.ShowID,
				JSON:        output.JSON,
				Persistence: p,
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	cmd.Flags().Float64VarP(&quantity, "qty", "q", 0, "Number of units; the value is per unit.")
	cmd.Flags().StringVarP(&note, "note", "n", "", "Optional note.")
	options.AddOnArgs(cmd, on)
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}

func addHistory(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	wo := &options.WindowOptions{}
	var (
		kind     activity.Kind
		calendar bool
	)

	cmd := &cobra.Command{
		Use:   "history <kind>",
		Short: "List what a tracker logged recently",
		Long:  trackerHelp,
		Example: `
daybook history food
daybook history meditation --window 3w --calendar
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("requires a kind")
			}
			var err error
			kind, err = activity.ParseKind(args[0])
			return err
		},
		ValidArgsFunction: kindCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			window, err := wo.Duration()
			if err != nil {
				return output.HandleError(err)
			}
			p, now, err := open()
			if err != nil {
				return output.HandleError(err)
			}
			defer closeStore(p)

			s := history.History{
				Kind:        kind,
				Window:      window,
				Now:         now,
				Calendar:    calendar,
				ShowID:      io.ShowID,
				JSON:        output.JSON,
				Persistence: p,
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddWindowArgs(cmd, wo)
	cmd.Flags().BoolVarP(&calendar, "calendar", "c", false, "Print a month calendar of active days.")
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}

func addStreak(topLevel *cobra.Command) {
	var kinds []activity.Kind

	cmd := &cobra.Command{
		Use:   "streak [kind...]",
		Short: "Current and longest run of active days",
		Long: "A day is active when its total is above zero. The current streak counts back " +
			"from today and is zero until something is logged today.",
		Example: `
daybook streak
daybook streak meditation
`,
		Args: func(_ *cobra.Command, args []string) error {
			kinds = kinds[:0]
			for _, a := range args {
				k, err := activity.ParseKind(a)
				if err != nil {
					return err
				}
				kinds = append(kinds, k)
			}
			return nil
		},
		ValidArgsFunction: kindCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, now, err := open()
			if err != nil {
				return output.HandleError(err)
			}
			defer closeStore(p)

			s := streak.Streak{
				Kinds:       kinds,
				Now:         now,
				JSON:        output.JSON,
				Persistence: p,
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}

func addStats(topLevel *cobra.Command) {
	var kind activity.Kind

	cmd := &cobra.Command{
		Use:   "stats <kind>",
		Short: "Totals and averages for a tracker",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("requires a kind")
			}
			var err error
			kind, err = activity.ParseKind(args[0])
			return err
		},
		ValidArgsFunction: kindCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, now, err := open()
			if err != nil {
				return output.HandleError(err)
			}
			defer closeStore(p)

			s := stats.Stats{
				Kind:        kind,
				Now:         now,
				JSON:        output.JSON,
				Persistence: p,
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}
