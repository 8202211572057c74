package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/commands/options"
	"tableflip.dev/daybook/pkg/runner/add"
	"tableflip.dev/daybook/pkg/runner/complete"
	"tableflip.dev/daybook/pkg/runner/edit"
	"tableflip.dev/daybook/pkg/runner/move"
	"tableflip.dev/daybook/pkg/task"
)

func statusNames() []string {
	all := task.AllStatuses()
	out := make([]string, 0, len(all))
	for _, s := range all {
		out = append(out, string(s))
	}
	return out
}

func addAdd(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	status := string(task.Todo)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task for today",
		Example: `
daybook add call the plumber
daybook add --status in-progress write quarterly report
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := task.ParseStatus(status)
			if err != nil {
				return output.HandleError(err)
			}
			p, now, err := open()
			if err != nil {
				return output.HandleError(err)
			}
			defer closeStore(p)

			s := add.Add{
				Title:       strings.Join(args, " "),
				Status:      st,
				Now:         now,
				ShowID:      io.ShowID,
				JSON:        output.JSON,
				Persistence: p,
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	cmd.Flags().StringVarP(&status, "status", "s", status, "Initial status: "+strings.Join(statusNames(), ", ")+".")
	_ = cmd.RegisterFlagCompletionFunc("status", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return statusNames(), cobra.ShellCompDirectiveNoFileComp
	})
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}

func addComplete(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "complete <task id>",
		Aliases: []string{"toggle", "done"},
		Short:   "Toggle completion of a task",
		Long: "Marks an unfinished task done. Running it on a done task reopens it as todo; " +
			"an in-progress task becomes done.",
		Example: `
daybook complete <task id>
`,
		Args: func(_ *cobra.Command, args []string) error {
			_, err := io.TakeID(args)
			return err
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, now, err := open()
			if err != nil {
				return output.HandleError(err)
			}
			defer closeStore(p)

			s := complete.Complete{
				ID:          io.ID,
				Now:         now,
				JSON:        output.JSON,
				Persistence: p,
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}

func addMove(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	var status task.Status

	cmd := &cobra.Command{
		Use:   "move <task id> <status>",
		Short: "Set the workflow status of a task",
		Example: `
daybook move <task id> in-progress
daybook move <task id> done
`,
		Args: func(_ *cobra.Command, args []string) error {
			rest, err := io.TakeID(args)
			if err != nil {
				return err
			}
			if len(rest) != 1 {
				return errors.New("requires a task id and a status")
			}
			status, err = task.ParseStatus(rest[0])
			return err
		},
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 1 {
				return statusNames(), cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, _, err := open()
			if err != nil {
				return output.HandleError(err)
			}
			defer closeStore(p)

			s := move.Move{
				ID:          io.ID,
				Status:      status,
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

func addRename(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	var title string

	cmd := &cobra.Command{
		Use:   "rename <task id> <title>",
		Short: "Change the title of a task",
		Args: func(_ *cobra.Command, args []string) error {
			rest, err := io.TakeID(args)
			if err != nil {
				return err
			}
			title = strings.Join(rest, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, _, err := open()
			if err != nil {
				return output.HandleError(err)
			}
			defer closeStore(p)

			s := edit.Rename{
				ID:          io.ID,
				Title:       title,
				JSON:        output.JSON,
				Persistence: p,
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}

func addDelete(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "delete <task id>",
		Aliases: []string{"rm"},
		Short:   "Delete a task",
		Args: func(_ *cobra.Command, args []string) error {
			_, err := io.TakeID(args)
			return err
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, _, err := open()
			if err != nil {
				return output.HandleError(err)
			}
			defer closeStore(p)

			s := edit.Delete{
				ID:          io.ID,
				JSON:        output.JSON,
				Persistence: p,
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}
