package options

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/arc/pkg/calendar"
)

// PeriodOptions selects a statistics window.
type PeriodOptions struct {
	Period string
	Offset int
}

func AddPeriodArgs(cmd *cobra.Command, o *PeriodOptions) {
	cmd.Flags().StringVarP(&o.Period, "period", "p", string(calendar.Week),
		"Window to report: week, month, year or all.")
	cmd.Flags().IntVarP(&o.Offset, "offset", "o", 0,
		"Number of periods back from the current one.")
}

func (o *PeriodOptions) GetPeriod() (calendar.Period, int, error) {
	p, err := calendar.ParsePeriod(o.Period)
	if err != nil {
		return "", 0, err
	}
	if o.Offset < 0 {
		return "", 0, fmt.Errorf("offset must not be negative, got %d", o.Offset)
	}
	return p, o.Offset, nil
}
