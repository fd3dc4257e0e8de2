// Package key prints the legend for the marks and colors arc draws.
package key

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/arc/pkg/app"
	"tableflip.dev/arc/pkg/printers"
	"tableflip.dev/arc/pkg/series"
)

type Key struct {
	// Out defaults to color.Output.
	Out io.Writer
}

func (k *Key) Do(ctx context.Context) error {
	k.marks()
	k.days()
	return nil
}

func (k *Key) out() io.Writer {
	if k.Out == nil {
		return color.Output
	}
	return k.Out
}

func (k *Key) marks() {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold("Symbol"), bold("Meaning"))
	tbl.AddRow(printers.Mark(series.Point{Active: true, Completed: true}), "done")
	tbl.AddRow(printers.Mark(series.Point{Active: true}), "missed")
	tbl.AddRow(printers.Mark(series.Point{}), "not tracked yet, or in the future")

	_, _ = fmt.Fprintln(k.out(), bold(underline("Series")))
	_, _ = fmt.Fprintln(k.out(), tbl)
}

func (k *Key) days() {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold("Day"), bold("Meaning"))
	tbl.AddRow(printers.DayNumber(app.Cell{AllDone: true, Tracked: true, Progress: 1}, 15), "every habit done")
	tbl.AddRow(printers.DayNumber(app.Cell{Tracked: true, Progress: 0.5}, 15), "some habits done")
	tbl.AddRow(printers.DayNumber(app.Cell{Tracked: true}, 15), "nothing done, or no record")
	tbl.AddRow(printers.DayNumber(app.Cell{Today: true}, 15), "today")

	_, _ = fmt.Fprintln(k.out(), bold(underline("\nCalendar")))
	_, _ = fmt.Fprintln(k.out(), tbl)
}

func bold(s string) string {
	return color.New(color.Bold).Sprint(s)
}

func underline(s string) string {
	return color.New(color.Underline).Sprint(s)
}
