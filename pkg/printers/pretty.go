package printers

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/daybook/pkg/bucket"
	"tableflip.dev/daybook/pkg/glyph"
	"tableflip.dev/daybook/pkg/task"
	"tableflip.dev/daybook/pkg/timeutil"
)

type PrettyPrint struct {
	ShowID bool
	// Out defaults to color.Output.
	Out io.Writer
}

const idWidth = 36

var (
	spacing = strings.Repeat(" ", idWidth+2)
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " task")
	default:
		_, _ = c.Fprintln(pp.out(), " tasks")
	}
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	if pp.ShowID {
		_, _ = f.Fprint(pp.out(), spacing)
	}
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

// Tasks prints one line per task. When now is non-zero, unfinished tasks
// from earlier days get the carried-forward marker.
func (pp *PrettyPrint) Tasks(now time.Time, tasks ...*task.Task) {
	if len(tasks) == 0 {
		pp.none()
		return
	}

	t := color.New()
	done := color.New(color.Faint)
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	var today timeutil.Day
	if !now.IsZero() {
		today = timeutil.DayOf(now)
	}

	for _, tk := range tasks {
		if pp.ShowID {
			_, _ = y.Fprint(pp.out(), tk.ID)
			_, _ = y.Fprint(pp.out(), strings.Repeat(" ", max(len(spacing)-len(tk.ID), 1)))
		}
		marker := " "
		if !today.IsZero() && !tk.Completed() && tk.Created.Day(now.Location()).Before(today) {
			marker = glyph.Carried.Symbol
		}
		printer := t
		title := tk.Title
		if tk.Completed() {
			printer = done
			if !color.NoColor {
				title = glyph.Strike(title)
			}
		}
		_, _ = printer.Fprintf(pp.out(), "%s %s %s\n", marker, glyph.ForStatus(tk.Status), title)
	}
	_, _ = t.Fprintln(pp.out(), "")
}

// Buckets prints the requested views in order.
func (pp *PrettyPrint) Buckets(now time.Time, bs bucket.Buckets, which ...bucket.Bucket) {
	for _, b := range which {
		tasks := bs.Get(b)
		pp.TitleWithCount(capitalize(b.String()), len(tasks))
		pp.Tasks(now, tasks...)
	}
}

// Counts prints the completed and remaining totals.
func (pp *PrettyPrint) Counts(completed, remaining int) {
	c := color.New(color.Faint)
	_, _ = c.Fprintf(pp.out(), "Completed: %d  Remaining: %d\n", completed, remaining)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
