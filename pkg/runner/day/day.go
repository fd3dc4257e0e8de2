// Package day provides the runners behind `arc today`, `arc day` and
// `arc toggle`.
package day

import (
	"context"
	"errors"
	"io"
	"time"

	"tableflip.dev/arc/pkg/app"
	"tableflip.dev/arc/pkg/printers"
)

// Show backfills history and prints the checklist for On.
type Show struct {
	App    *app.Service
	On     time.Time
	JSON   bool
	ShowID bool
	// Out defaults to stdout.
	Out io.Writer
}

func (n *Show) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not show day, no habit service")
	}
	if _, err := n.App.Backfill(ctx); err != nil {
		return err
	}
	d, err := n.App.OpenDay(ctx, n.On)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Calendar: n.App.Calendar, Out: n.Out}
	if n.JSON {
		return pp.JSON(d)
	}
	pp.NewLine()
	pp.Day(d)
	return nil
}

// Toggle flips Habit on On and reprints the day.
type Toggle struct {
	App   *app.Service
	Habit string
	On    time.Time
	JSON  bool
	Out   io.Writer
}

func (n *Toggle) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not toggle, no habit service")
	}
	if _, err := n.App.Backfill(ctx); err != nil {
		return err
	}
	d, _, err := n.App.Toggle(ctx, n.Habit, n.On)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{Calendar: n.App.Calendar, Out: n.Out}
	if n.JSON {
		return pp.JSON(d)
	}
	pp.NewLine()
	pp.Day(d)
	return nil
}
