package printers

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"

	"tableflip.dev/arc/pkg/app"
	"tableflip.dev/arc/pkg/series"
)

const width = len("11 12 13 14 15 16 17") // an example week

// Month prints a month grid, shading each day by its progress.
func (pp *PrettyPrint) Month(m *app.Month) {
	tf := color.New(color.FgWhite, color.Italic)

	title := m.Start.Format("January 2006")
	mid := (width - len(title)) / 2
	if mid < 0 {
		mid = 0
	}
	_, _ = tf.Fprintf(pp.out(), "%s%s\n", strings.Repeat(" ", mid), title)

	h := color.New(color.Faint)
	for _, d := range m.Header {
		_, _ = h.Fprintf(pp.out(), "%2s ", d)
	}
	_, _ = fmt.Fprint(pp.out(), "\n")

	for i, c := range m.Cells {
		if c.Date.IsZero() {
			_, _ = fmt.Fprint(pp.out(), "   ")
		} else {
			_, _ = fmt.Fprint(pp.out(), DayNumber(c, c.Date.Day()), " ")
		}
		if (i+1)%7 == 0 {
			_, _ = fmt.Fprint(pp.out(), "\n")
		}
	}
	_, _ = fmt.Fprint(pp.out(), "\n")
}

// DayNumber renders n in the colors the month grid uses for c.
func DayNumber(c app.Cell, n int) string {
	printer := color.New(colorFor(c)...)
	if c.Today {
		printer.Add(color.Underline)
	}
	return printer.Sprintf("%2d", n)
}

func colorFor(c app.Cell) []color.Attribute {
	switch {
	case c.AllDone:
		return []color.Attribute{color.Bold, color.FgHiGreen}
	case c.Tracked && c.Progress > 0:
		return []color.Attribute{color.FgYellow}
	default:
		return []color.Attribute{color.Faint, color.FgWhite}
	}
}

// Series prints the report's points as a strip of marks with the axis
// labels underneath. Week strips are spaced to fit two-digit labels.
func (pp *PrettyPrint) Series(r *app.HabitReport) {
	if len(r.Points) == 0 {
		return
	}
	cell := 1
	if len(r.Points) <= 7 {
		cell = 3
	}

	done := color.New(color.FgGreen)
	miss := color.New()
	off := color.New(color.Faint)

	for _, pt := range r.Points {
		mark, printer := Mark(pt), miss
		switch {
		case !pt.Active:
			printer = off
		case pt.Completed:
			printer = done
		}
		_, _ = printer.Fprint(pp.out(), pad(mark, cell))
	}
	_, _ = fmt.Fprint(pp.out(), "\n")
	_, _ = color.New(color.Faint).Fprintln(pp.out(), Axis(r.Axis, cell))
}

// Mark is the glyph used for a series point.
func Mark(pt series.Point) string {
	switch {
	case !pt.Active:
		return "·"
	case pt.Completed:
		return "■"
	default:
		return "□"
	}
}

// Axis lays labels out under a strip of cell-wide marks. A label that would
// overlap the previous one is dropped.
func Axis(labels []string, cell int) string {
	line := []rune(strings.Repeat(" ", len(labels)*cell))
	next := 0
	for i, l := range labels {
		if l == "" {
			continue
		}
		at := i * cell
		if at < next {
			continue
		}
		for j, r := range []rune(l) {
			if at+j < len(line) {
				line[at+j] = r
			}
		}
		next = at + len(l) + 1
	}
	return strings.TrimRight(string(line), " ")
}

func pad(s string, cell int) string {
	n := utf8.RuneCountInString(s)
	if n >= cell {
		return s
	}
	return s + strings.Repeat(" ", cell-n)
}
