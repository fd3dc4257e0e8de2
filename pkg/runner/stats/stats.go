// Package stats provides the runner behind `arc stats`.
package stats

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/arc/pkg/app"
	"tableflip.dev/arc/pkg/calendar"
	"tableflip.dev/arc/pkg/printers"
)

// Stats prints the report for one habit, or every habit when Habit is empty.
type Stats struct {
	App    *app.Service
	Habit  string
	Period calendar.Period
	Offset int
	JSON   bool
	// Out defaults to stdout.
	Out io.Writer
}

func (n *Stats) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not report, no habit service")
	}
	if _, err := n.App.Backfill(ctx); err != nil {
		return err
	}
	pp := printers.PrettyPrint{Calendar: n.App.Calendar, Out: n.Out}

	if n.Habit != "" {
		r, err := n.App.Report(ctx, n.Habit, n.Period, n.Offset)
		if err != nil {
			return err
		}
		if n.JSON {
			return pp.JSON(r)
		}
		pp.NewLine()
		pp.Report(r)
		return nil
	}

	o, err := n.App.Overview(ctx, n.Period, n.Offset)
	if err != nil {
		return err
	}
	if n.JSON {
		return pp.JSON(o)
	}
	pp.NewLine()
	pp.Overview(o)
	return nil
}
