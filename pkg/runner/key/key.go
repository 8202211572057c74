// Package key provides CLI helpers to display the glyph legend.
package key

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/daybook/pkg/glyph"
)

// Key prints the glyphs used by the task and activity views.
type Key struct {
	Out io.Writer
}

// Do renders the legend.
func (k *Key) Do(_ context.Context) error {
	out := k.Out
	if out == nil {
		out = color.Output
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(glyph.Bold("Key"), glyph.Bold("Symbol"), glyph.Bold("Meaning"))
	for _, g := range glyph.DefaultGlyphs() {
		tbl.AddRow(g.Key, g.Symbol, g.Meaning)
	}
	_, _ = fmt.Fprintln(out, "")
	_, _ = fmt.Fprintln(out, tbl)
	_, _ = fmt.Fprintln(out, "")
	return nil
}
