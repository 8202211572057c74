package commands

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/runner/budget"
	"tableflip.dev/daybook/pkg/store"
)

func addBudget(topLevel *cobra.Command) {
	var total float64

	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Spending against the budget",
		Long: "Sums everything logged to the expense tracker and compares it with the budget " +
			"saved by \"daybook budget set\". --total overrides the saved budget for one run.",
		Example: `
daybook budget
daybook budget --total 500
daybook budget set 1200
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return output.HandleError(err)
			}
			if !cmd.Flags().Changed("total") {
				total = store.Budget(cfg)
			}
			p, err := store.Load(cfg)
			if err != nil {
				return output.HandleError(err)
			}
			defer closeStore(p)

			s := budget.Budget{
				Total:       total,
				JSON:        output.JSON,
				Persistence: p,
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	cmd.Flags().Float64VarP(&total, "total", "t", 0, "Budget to measure against instead of the saved one.")

	set := &cobra.Command{
		Use:   "set <amount>",
		Short: "Save the budget to .daybook.yaml",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("requires an amount")
			}
			var err error
			if total, err = strconv.ParseFloat(args[0], 64); err != nil {
				return fmt.Errorf("invalid amount %q", args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			file, err := store.SaveBudget(total)
			if err != nil {
				return output.HandleError(err)
			}
			slog.Debug("budget saved", "file", file, "budget", total)
			cfg, err := store.LoadConfig()
			if err != nil {
				return output.HandleError(err)
			}
			p, err := store.Load(cfg)
			if err != nil {
				return output.HandleError(err)
			}
			defer closeStore(p)

			s := budget.Budget{
				Total:       store.Budget(cfg),
				JSON:        output.JSON,
				Persistence: p,
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}
	cmd.AddCommand(set)

	topLevel.AddCommand(cmd)
}
