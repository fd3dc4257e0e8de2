package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/arc/pkg/commands/options"
	"tableflip.dev/arc/pkg/runner/stats"
)

func addStats(topLevel *cobra.Command) {
	po := &options.PeriodOptions{}

	cmd := &cobra.Command{
		Use:     "stats [habit]",
		Aliases: []string{"report"},
		Short:   "Completion and streaks for one habit or all of them.",
		Example: `
arc stats
arc stats read
arc stats read --period month --offset 1
arc stats --period all
`,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) != 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return habitCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			p, offset, err := po.GetPeriod()
			if err != nil {
				return output.HandleError(err)
			}
			svc, _, done, err := loadApp()
			if err != nil {
				return output.HandleError(err)
			}
			defer done()
			s := stats.Stats{
				App:    svc,
				Habit:  strings.Join(args, " "),
				Period: p,
				Offset: offset,
				JSON:   output.JSON,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}
	options.AddPeriodArgs(cmd, po)

	topLevel.AddCommand(cmd)
}
