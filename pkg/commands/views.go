package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/bucket"
	"tableflip.dev/daybook/pkg/commands/options"
	"tableflip.dev/daybook/pkg/printers"
	"tableflip.dev/daybook/pkg/runner/board"
	"tableflip.dev/daybook/pkg/runner/get"
	"tableflip.dev/daybook/pkg/runner/key"
	"tableflip.dev/daybook/pkg/runner/watch"
	"tableflip.dev/daybook/pkg/store"
)

func addGet(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	var which []bucket.Bucket

	cmd := &cobra.Command{
		Use:   "get [today|yesterday|earlier|all]",
		Short: "List tasks by day",
		Long: `Lists tasks in three groups:

today:     tasks created today, plus every unfinished task from an earlier day
yesterday: tasks created yesterday and completed
earlier:   tasks created before yesterday and completed

With no argument all three are printed.`,
		Example: `
daybook get
daybook get today --show-id
daybook get earlier --json
`,
		ValidArgs: []string{"today", "yesterday", "earlier", "all"},
		Args: func(_ *cobra.Command, args []string) error {
			which = nil
			for _, a := range args {
				if strings.EqualFold(a, "all") {
					which = nil
					return nil
				}
				b, ok := bucket.Parse(a)
				if !ok {
					return fmt.Errorf("unknown bucket %q", a)
				}
				which = append(which, b)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, now, err := open()
			if err != nil {
				return output.HandleError(err)
			}
			defer closeStore(p)

			s := get.Get{
				Buckets:     which,
				Now:         now,
				ShowID:      io.ShowID,
				JSON:        output.JSON,
				Persistence: p,
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}

func addBoard(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "board",
		Short: "List tasks grouped by status",
		Example: `
daybook board
daybook board --show-id
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, _, err := open()
			if err != nil {
				return output.HandleError(err)
			}
			defer closeStore(p)

			s := board.Board{
				ShowID:      io.ShowID,
				JSON:        output.JSON,
				Persistence: p,
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}

func addWatch(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print tasks again whenever they change",
		Long:  "Prints the task groups and reprints them on every change to the store. Needs the diskv backend.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return err
			}
			p, err := store.Load(cfg)
			if err != nil {
				return err
			}
			defer closeStore(p)

			s := watch.Watch{
				Clock:       func() time.Time { return store.Now(cfg) },
				ShowID:      io.ShowID,
				Persistence: p,
			}
			return s.Do(cmd.Context())
		},
	}

	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}

func addKey(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Print the symbols used in task and tracker output",
		Example: `
daybook key
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			k := key.Key{}
			return output.HandleError(k.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the configuration and where data is stored.",
		Example: `
daybook info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return output.HandleError(err)
			}
			zone := cfg.Location().String()
			if output.JSON {
				pp := printers.PrettyPrint{Out: cmd.OutOrStdout()}
				return pp.JSON(map[string]string{
					"path":     cfg.BasePath(),
					"backend":  string(cfg.Backend()),
					"timezone": zone,
				})
			}
			tbl := uitable.New()
			tbl.Separator = "  "
			tbl.AddRow("Path", cfg.BasePath())
			tbl.AddRow("Backend", string(cfg.Backend()))
			tbl.AddRow("Timezone", zone)
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), tbl)
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
