package printers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/daybook/pkg/activity"
	"tableflip.dev/daybook/pkg/glyph"
	"tableflip.dev/daybook/pkg/streak"
	"tableflip.dev/daybook/pkg/timeutil"
)

func formatAmount(v float64, unit string) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if strings.Contains(s, ".") {
		s = strconv.FormatFloat(v, 'f', 2, 64)
	}
	switch unit {
	case "":
		return s
	case "$":
		return unit + s
	}
	if strings.HasPrefix(unit, "/") {
		return s + unit
	}
	return s + " " + unit
}

// Records prints an activity log as a table, one row per record.
func (pp *PrettyPrint) Records(kind activity.Kind, records ...*activity.Record) {
	pp.Title(capitalize(string(kind)))
	if len(records) == 0 {
		pp.none()
		return
	}
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	header := []interface{}{bold.Sprint("Day"), bold.Sprint("Value"), bold.Sprint("Qty"), bold.Sprint("Total"), bold.Sprint("Note")}
	if pp.ShowID {
		header = append([]interface{}{bold.Sprint("ID")}, header...)
	}
	tbl.AddRow(header...)
	for _, r := range records {
		qty := ""
		if r.Quantity != 0 {
			qty = strconv.FormatFloat(r.Quantity, 'f', -1, 64)
		}
		value := formatAmount(r.Value, "")
		if label := activity.MoodLabel(r.Value); kind == activity.Mood && label != "" {
			value += " " + label
		}
		row := []interface{}{r.Day.String(), value, qty, formatAmount(r.Total(), kind.Unit()), r.Note}
		if pp.ShowID {
			row = append([]interface{}{r.ID}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Streak prints current and longest streaks.
func (pp *PrettyPrint) Streak(kind activity.Kind, r streak.Result) {
	pp.Title(capitalize(string(kind)) + " streak")
	hot := color.New(color.FgHiRed, color.Bold)
	plain := color.New()
	printer := plain
	if r.Current > 0 {
		printer = hot
	}
	_, _ = printer.Fprintf(pp.out(), "Current: %s\n", days(r.Current))
	_, _ = plain.Fprintf(pp.out(), "Longest: %s\n", days(r.Longest))
	pp.NewLine()
}

func days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

// Stats prints a tracker summary.
func (pp *PrettyPrint) Stats(s activity.Summary) {
	pp.Title(capitalize(string(s.Kind)) + " stats")
	tbl := uitable.New()
	tbl.Separator = "  "
	unit := s.Kind.Unit()
	tbl.AddRow("Today", formatAmount(s.Today, unit))
	if s.Averaged {
		tbl.AddRow("Days logged", strconv.Itoa(s.Days))
		tbl.AddRow("Average", formatAmount(s.Average, unit))
	} else {
		tbl.AddRow("Total", formatAmount(s.Total, unit))
		tbl.AddRow("Active days", strconv.Itoa(s.Days))
		tbl.AddRow("Average per day", formatAmount(s.Average, unit))
	}
	tbl.AddRow("Entries", strconv.Itoa(s.Entries))
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Budget prints spending against the configured budget.
func (pp *PrettyPrint) Budget(b activity.Budget) {
	pp.Title("Budget")
	unit := activity.Expense.Unit()
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("Budget", formatAmount(b.Total, unit))
	tbl.AddRow("Spent", formatAmount(b.Spent, unit))
	remaining := formatAmount(b.Remaining, unit)
	if b.Remaining < 0 {
		remaining = "-" + formatAmount(-b.Remaining, unit)
	}
	if b.Over {
		remaining = color.New(color.FgHiRed, color.Bold).Sprint(remaining)
	}
	tbl.AddRow("Remaining", remaining)
	tbl.AddRow("Used", strconv.FormatFloat(b.PercentUsed, 'f', 1, 64)+"%")
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

const width = len("11 12 13 14 15 16 17") // an example week

// Month prints a calendar for the month containing then, with active days in
// bold.
func (pp *PrettyPrint) Month(then timeutil.Day, byDay map[timeutil.Day]float64) {
	first := timeutil.NewDay(then.Year, then.Month, 1)
	d := first.Start(time.UTC).Weekday()

	tf := color.New(color.FgWhite, color.Italic)
	m := fmt.Sprintf("%s %d", then.Month, then.Year)
	mid := (width - len(m)) / 2
	_, _ = tf.Fprintf(pp.out(), "%s%s\n", strings.Repeat(" ", max(mid, 0)), m)

	for i := time.Sunday; i < d; i++ {
		_, _ = fmt.Fprint(pp.out(), "   ")
	}

	l1 := color.New(color.Faint, color.FgWhite)
	l2 := color.New(color.Bold, color.FgHiWhite)

	for day := first; day.Month == then.Month; day = day.AddDays(1) {
		printer := l1
		if byDay[day] > 0 {
			printer = l2
		}
		_, _ = printer.Fprintf(pp.out(), "%2d ", day.Day)

		d++
		if d > time.Saturday {
			d = time.Sunday
			_, _ = fmt.Fprint(pp.out(), "\n")
		}
	}
	if d != time.Sunday {
		_, _ = fmt.Fprint(pp.out(), "\n")
	}
	f := color.New(color.Faint)
	_, _ = f.Fprintf(pp.out(), "%s %s  %s %s\n\n", glyph.Active, l2.Sprint("active"), glyph.Inactive, l1.Sprint("inactive"))
}
