package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/arc/pkg/runner/month"
	"tableflip.dev/arc/pkg/timeutil"
)

func addCalendar(topLevel *cobra.Command) {
	var (
		at     string
		offset int
	)

	cmd := &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"cal", "month"},
		Short:   "Month grid colored by daily completion.",
		Example: `
arc calendar
arc calendar --offset 1
arc calendar --month 2025-02
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			if offset < 0 {
				return output.HandleError(fmt.Errorf("offset must not be negative, got %d", offset))
			}
			svc, _, done, err := loadApp()
			if err != nil {
				return output.HandleError(err)
			}
			defer done()

			on := svc.MonthAt(offset)
			if at != "" {
				on, err = timeutil.ParseMonth(svc.Calendar, at, svc.Today())
				if err != nil {
					return output.HandleError(err)
				}
			}
			s := month.Month{
				App:  svc,
				On:   on,
				JSON: output.JSON,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}
	cmd.Flags().StringVarP(&at, "month", "m", "", `Month to show, example: --month="2025-02" or --month="February 2025".`)
	cmd.Flags().IntVarP(&offset, "offset", "o", 0, "Months back from the current month.")

	topLevel.AddCommand(cmd)
}
