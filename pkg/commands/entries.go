package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/arc/pkg/runner/entries"
	"tableflip.dev/arc/pkg/timeutil"
)

func addEntries(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "entries",
		Short: "List every stored day.",
		Example: `
arc entries
arc entries --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, _, done, err := loadApp()
			if err != nil {
				return output.HandleError(err)
			}
			defer done()
			s := entries.List{
				App:  svc,
				JSON: output.JSON,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	addEntriesRemove(cmd)
	topLevel.AddCommand(cmd)
}

func addEntriesRemove(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "rm <day>",
		Aliases: []string{"remove", "delete"},
		Short:   "Remove the stored record for a day.",
		Example: `
arc entries rm 2025-01-31
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, _, done, err := loadApp()
			if err != nil {
				return output.HandleError(err)
			}
			defer done()
			on, err := timeutil.ParseDay(svc.Calendar, args[0], svc.Today())
			if err != nil {
				return output.HandleError(err)
			}
			s := entries.Remove{
				App:  svc,
				On:   on,
				JSON: output.JSON,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	parent.AddCommand(cmd)
}
