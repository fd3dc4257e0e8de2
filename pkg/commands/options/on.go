package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/arc/pkg/calendar"
	"tableflip.dev/arc/pkg/timeutil"
)

// OnOptions selects a day.
type OnOptions struct {
	OnString string
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Specify a day, example: --on="2020-2-28", --on="2/28", --on=yesterday or --on=3d.`)
}

// GetOn resolves the flag relative to today; empty means today.
func (o *OnOptions) GetOn(cfg calendar.Config, today time.Time) (time.Time, error) {
	return timeutil.ParseDay(cfg, o.OnString, today)
}
