// Package glyph maps task states to the symbols the printers draw.
package glyph

import (
	"fmt"

	"tableflip.dev/daybook/pkg/task"
)

type Glyph struct {
	Key     string
	Symbol  string
	Meaning string
	Order   int
}

const (
	escape     = "\x1b"
	resetCode  = 0
	boldCode   = 1
	strikeCode = 9
)

func Strike(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, strikeCode, in, escape, resetCode)
}

func Bold(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, boldCode, in, escape, resetCode)
}

var statusGlyphs = map[task.Status]Glyph{
	task.Todo:       {Key: "todo", Symbol: "●", Meaning: "task to do", Order: 0},
	task.InProgress: {Key: "in-progress", Symbol: "◐", Meaning: "task in progress", Order: 1},
	task.Done:       {Key: "done", Symbol: "✘", Meaning: "task done", Order: 2},
}

// Carried marks an unfinished task shown in Today after its creation day.
var Carried = Glyph{Key: "carried", Symbol: "›", Meaning: "carried forward from an earlier day", Order: 3}

// Active and Inactive mark days in activity calendars.
var (
	Active   = Glyph{Key: "active", Symbol: "■", Meaning: "day with logged activity", Order: 4}
	Inactive = Glyph{Key: "inactive", Symbol: "·", Meaning: "day without activity", Order: 5}
)

// ForStatus returns the glyph for s. Unknown statuses draw as Todo.
func ForStatus(s task.Status) Glyph {
	if g, ok := statusGlyphs[s]; ok {
		return g
	}
	return statusGlyphs[task.Todo]
}

// DefaultGlyphs returns the full legend in display order.
func DefaultGlyphs() []Glyph {
	out := make([]Glyph, 0, len(statusGlyphs)+3)
	for _, s := range task.AllStatuses() {
		out = append(out, statusGlyphs[s])
	}
	return append(out, Carried, Active, Inactive)
}

func (g Glyph) String() string {
	return g.Symbol
}
