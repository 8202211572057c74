package printers

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/daybook/pkg/glyph"
	"tableflip.dev/daybook/pkg/task"
)

// BoardColumn is the subset of a board lane the printer needs.
type BoardColumn struct {
	Status task.Status
	Tasks  []*task.Task
}

// Board prints one table per status lane.
func (pp *PrettyPrint) Board(columns ...BoardColumn) {
	bold := color.New(color.Bold)
	for _, col := range columns {
		pp.TitleWithCount(fmt.Sprintf("%s %s", glyph.ForStatus(col.Status), capitalize(col.Status.String())), len(col.Tasks))
		if len(col.Tasks) == 0 {
			pp.none()
			continue
		}
		tbl := uitable.New()
		tbl.Separator = "  "
		tbl.MaxColWidth = 60
		tbl.Wrap = true
		if pp.ShowID {
			tbl.AddRow(bold.Sprint("ID"), bold.Sprint("Title"), bold.Sprint("Created"))
		} else {
			tbl.AddRow(bold.Sprint("Title"), bold.Sprint("Created"))
		}
		for _, t := range col.Tasks {
			created := t.Created.Local().Format("Jan 2")
			if pp.ShowID {
				tbl.AddRow(t.ID, t.Title, created)
			} else {
				tbl.AddRow(t.Title, created)
			}
		}
		_, _ = fmt.Fprintln(pp.out(), tbl)
		pp.NewLine()
	}
}
