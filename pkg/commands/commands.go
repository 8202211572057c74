package commands

import (
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/daybook/pkg/commands/options"
	"tableflip.dev/daybook/pkg/store"
)

var (
	output  = &options.OutputOptions{}
	verbose bool
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "daybook",
		Short: base.Wrap80("Tasks that carry forward until done, and daily trackers with streaks."),
		Long: base.Wrap80("daybook keeps a list of tasks grouped into today, yesterday and earlier. " +
			"Unfinished tasks stay in today until they are done. " +
			"It also logs daily amounts such as food, meditation or exercise and reports streaks of active days."),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			} else if cfg, err := store.LoadConfig(); err == nil && store.Verbose(cfg) {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging.")
	options.AddOutputArg(cmd, output)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addKey(topLevel)
	addAdd(topLevel)
	addGet(topLevel)
	addBoard(topLevel)
	addComplete(topLevel)
	addMove(topLevel)
	addRename(topLevel)
	addDelete(topLevel)
	addTrack(topLevel)
	addHistory(topLevel)
	addStreak(topLevel)
	addStats(topLevel)
	addBudget(topLevel)
	addWatch(topLevel)
	addMCP(topLevel)
	addInfo(topLevel)
	addCompletions(topLevel)
	addVersion(topLevel)
}

// open loads the configured store and the current time in the configured
// timezone.
func open() (store.Persistence, time.Time, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, time.Time{}, err
	}
	p, err := store.Load(cfg)
	if err != nil {
		return nil, time.Time{}, err
	}
	slog.Debug("store opened", "path", cfg.BasePath(), "backend", cfg.Backend())
	return p, store.Now(cfg), nil
}

func closeStore(p store.Persistence) {
	if err := p.Close(); err != nil {
		slog.Warn("close store", "error", err)
	}
}
