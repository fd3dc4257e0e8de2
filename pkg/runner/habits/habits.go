// Package habits provides CLI runners that list, add and remove habits.
package habits

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/arc/pkg/app"
	"tableflip.dev/arc/pkg/printers"
)

var errNoService = errors.New("can not run, no habit service")

// List prints every habit.
type List struct {
	App    *app.Service
	JSON   bool
	ShowID bool
}

func (n *List) Do(ctx context.Context) error {
	if n.App == nil {
		return errNoService
	}
	habits, err := n.App.Habits(ctx)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID, Calendar: n.App.Calendar}
	if n.JSON {
		return pp.JSON(habits)
	}
	pp.NewLine()
	pp.Habits(habits...)
	return nil
}

// Add creates a habit tracked from Since, today when zero.
type Add struct {
	App   *app.Service
	Name  string
	Since time.Time
	JSON  bool
}

func (n *Add) Do(ctx context.Context) error {
	if n.App == nil {
		return errNoService
	}
	h, err := n.App.AddHabit(ctx, n.Name, n.Since)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Calendar: n.App.Calendar}
	if n.JSON {
		return pp.JSON(h)
	}
	_, _ = fmt.Fprintf(color.Output, "tracking %s since %s\n", color.New(color.Bold).Sprint(h.Name), h.Created.Format("2006-01-02"))
	return nil
}

// Remove deletes a habit and its history.
type Remove struct {
	App  *app.Service
	Ref  string
	JSON bool
}

func (n *Remove) Do(ctx context.Context) error {
	if n.App == nil {
		return errNoService
	}
	h, err := n.App.DeleteHabit(ctx, n.Ref)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Calendar: n.App.Calendar}
	if n.JSON {
		return pp.JSON(h)
	}
	_, _ = fmt.Fprintf(color.Output, "removed %s\n", h.Name)
	return nil
}
