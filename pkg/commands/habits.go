package commands

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/arc/pkg/commands/options"
	"tableflip.dev/arc/pkg/runner/habits"
)

func addHabits(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "habits",
		Aliases: []string{"habit", "h"},
		Short:   "List tracked habits.",
		Example: `
arc habits
arc habits --show-id
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, _, done, err := loadApp()
			if err != nil {
				return output.HandleError(err)
			}
			defer done()
			s := habits.List{
				App:    svc,
				JSON:   output.JSON,
				ShowID: io.ShowID,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}
	options.AddShowIDArgs(cmd, io)

	addHabitsAdd(cmd)
	addHabitsRemove(cmd)
	topLevel.AddCommand(cmd)
}

func addHabitsAdd(parent *cobra.Command) {
	on := &options.OnOptions{}
	var name string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Start tracking a habit.",
		Example: `
arc habits add read
arc habits add "morning run" --on 2025-01-01
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a habit name")
			}
			name = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, _, done, err := loadApp()
			if err != nil {
				return output.HandleError(err)
			}
			defer done()

			var since time.Time
			if on.OnString != "" {
				since, err = on.GetOn(svc.Calendar, svc.Today())
				if err != nil {
					return output.HandleError(err)
				}
			}
			s := habits.Add{
				App:   svc,
				Name:  name,
				Since: since,
				JSON:  output.JSON,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}
	options.AddOnArgs(cmd, on)

	parent.AddCommand(cmd)
}

func addHabitsRemove(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "rm <habit>",
		Aliases: []string{"remove", "delete"},
		Short:   "Stop tracking a habit and erase its history.",
		Example: `
arc habits rm read
`,
		Args: cobra.MinimumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) != 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return habitCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, _, done, err := loadApp()
			if err != nil {
				return output.HandleError(err)
			}
			defer done()
			s := habits.Remove{
				App:  svc,
				Ref:  strings.Join(args, " "),
				JSON: output.JSON,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	parent.AddCommand(cmd)
}
