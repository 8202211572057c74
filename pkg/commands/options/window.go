package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/timeutil"
)

// WindowOptions bounds history output to a trailing duration.
type WindowOptions struct {
	Window string
}

func AddWindowArgs(cmd *cobra.Command, o *WindowOptions) {
	cmd.Flags().StringVarP(&o.Window, "window", "w", timeutil.DefaultWindow,
		`How far back to look, example: --window=3d, --window=2w or --window=30d.`)
}

func (o *WindowOptions) Duration() (time.Duration, error) {
	d, _, err := timeutil.ParseWindow(o.Window)
	return d, err
}
