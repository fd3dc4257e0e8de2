package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/arc/pkg/commands/options"
	"tableflip.dev/arc/pkg/runner/day"
	"tableflip.dev/arc/pkg/timeutil"
)

func addToday(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show today's habit checklist.",
		Example: `
arc today
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, _, done, err := loadApp()
			if err != nil {
				return output.HandleError(err)
			}
			defer done()
			s := day.Show{
				App:    svc,
				On:     svc.Today(),
				JSON:   output.JSON,
				ShowID: io.ShowID,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}

func addDay(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "day <day>",
		Short: "Show the habit checklist for a past day.",
		Example: `
arc day yesterday
arc day 2025-01-31
arc day 1/31
arc day 1w
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
			s := day.Show{
				App:    svc,
				On:     on,
				JSON:   output.JSON,
				ShowID: io.ShowID,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}

func addToggle(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	var ref string

	cmd := &cobra.Command{
		Use:     "toggle <habit>",
		Aliases: []string{"done", "x"},
		Short:   "Flip a habit between done and not done.",
		Example: `
arc toggle read
arc toggle read --on yesterday
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a habit")
			}
			ref = strings.Join(args, " ")
			return nil
		},
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) != 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return habitCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, _, done, err := loadApp()
			if err != nil {
				return output.HandleError(err)
			}
			defer done()
			when, err := on.GetOn(svc.Calendar, svc.Today())
			if err != nil {
				return output.HandleError(err)
			}
			s := day.Toggle{
				App:   svc,
				Habit: ref,
				On:    when,
				JSON:  output.JSON,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}
	options.AddOnArgs(cmd, on)

	topLevel.AddCommand(cmd)
}
