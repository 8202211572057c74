package glyph

import (
	"testing"

	"tableflip.dev/daybook/pkg/task"
)

func TestForStatus(t *testing.T) {
	if ForStatus(task.Done).Symbol != "✘" {
		t.Fatalf("unexpected done glyph %q", ForStatus(task.Done))
	}
	if ForStatus(task.Status("mystery")) != ForStatus(task.Todo) {
		t.Fatalf("unknown status should draw as todo")
	}
}

func TestDefaultGlyphsOrdered(t *testing.T) {
	gs := DefaultGlyphs()
	for i := 1; i < len(gs); i++ {
		if gs[i-1].Order >= gs[i].Order {
			t.Fatalf("glyphs out of order at %d: %+v", i, gs)
		}
	}
}
