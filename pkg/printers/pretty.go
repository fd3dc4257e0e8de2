package printers

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/arc/pkg/app"
	"tableflip.dev/arc/pkg/calendar"
	"tableflip.dev/arc/pkg/habit"
	"tableflip.dev/arc/pkg/stats"
)

type PrettyPrint struct {
	ShowID   bool
	Calendar calendar.Config
	// Out defaults to color.Output.
	Out io.Writer
}

const (
	layoutDay = "2006-01-02"
	barWidth  = 20
	idWidth   = 8
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int, one, many string) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " "+one)
	default:
		_, _ = c.Fprintln(pp.out(), " "+many)
	}
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

func shortID(id string) string {
	if len(id) > idWidth {
		return id[:idWidth]
	}
	return id
}

// Habits prints one row per habit.
func (pp *PrettyPrint) Habits(habits ...*habit.Habit) {
	pp.TitleWithCount("Habits", len(habits), "habit", "habits")
	if len(habits) == 0 {
		pp.none()
		return
	}
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	f := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, h := range habits {
		row := []interface{}{h.Name, f.Sprint("since " + h.Created.Format(layoutDay))}
		if pp.ShowID {
			row = append([]interface{}{y.Sprint(shortID(h.ID))}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Day prints the checklist for one day.
func (pp *PrettyPrint) Day(d *app.Day) {
	pp.Title(d.Date.Format("Monday, January 2 2006"))
	if !d.Tracked {
		pp.none()
		return
	}

	done := color.New(color.FgGreen)
	open := color.New()
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)

	for _, h := range d.Habits {
		if pp.ShowID {
			_, _ = y.Fprintf(pp.out(), "%-*s  ", idWidth, shortID(h.ID))
		}
		if d.Entry.Statuses.Done(h.ID) {
			_, _ = done.Fprintf(pp.out(), "[x] %s\n", h.Name)
		} else {
			_, _ = open.Fprintf(pp.out(), "[ ] %s\n", h.Name)
		}
	}
	_, _ = fmt.Fprintf(pp.out(), "\n%s %s\n\n", Bar(d.Progress, barWidth), Percent(d.Progress))
}

// Report prints a habit's statistics for one window.
func (pp *PrettyPrint) Report(r *app.HabitReport) {
	b := color.New(color.Bold)
	f := color.New(color.Faint)

	_, _ = b.Fprint(pp.out(), r.Habit.Name)
	_, _ = f.Fprintf(pp.out(), "  %s, %s\n", r.Period, r.Label)

	pp.Series(r)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("completion", Bar(r.Completion, barWidth), Percent(r.Completion))
	tbl.AddRow("lifetime", Bar(r.Lifetime, barWidth), Percent(r.Lifetime))
	tbl.AddRow("current streak", streakText(r.Current), "")
	tbl.AddRow("best streak", streakText(r.Best), "")
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Overview prints every habit report followed by the totals.
func (pp *PrettyPrint) Overview(o *app.Overview) {
	if len(o.Habits) == 0 {
		pp.TitleWithCount("Habits", 0, "habit", "habits")
		pp.none()
		return
	}
	for _, r := range o.Habits {
		pp.Report(r)
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	if o.TodayProgress != nil {
		tbl.AddRow("today", Bar(*o.TodayProgress, barWidth), Percent(*o.TodayProgress))
	}
	tbl.AddRow("overall", Bar(o.Overall, barWidth), Percent(o.Overall))
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Batch summarises a backfill batch.
func (pp *PrettyPrint) Batch(b *app.Batch, dryRun bool) {
	verb := "created"
	if dryRun {
		verb = "would create"
	}
	f := color.New(color.Faint)
	if b.Empty() {
		_, _ = f.Fprintln(pp.out(), "history is up to date")
		return
	}
	_, _ = fmt.Fprintf(pp.out(), "%s %d entries, updated %d\n", verb, len(b.Insert), len(b.Update))
	for _, e := range b.Insert {
		_, _ = f.Fprintf(pp.out(), "  + %s (%d habits)\n", e.Date.Format(layoutDay), len(e.Statuses))
	}
}

// Entries prints one row per stored day.
func (pp *PrettyPrint) Entries(habits []*habit.Habit, entries ...*habit.Entry) {
	pp.TitleWithCount("Entries", len(entries), "entry", "entries")
	if len(entries) == 0 {
		pp.none()
		return
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, e := range entries {
		active := habit.Active(pp.Calendar, habits, e.Date)
		done := 0
		for _, h := range active {
			if e.Statuses.Done(h.ID) {
				done++
			}
		}
		progress, tracked := stats.DayProgress(pp.Calendar, e, habits)
		cell := "-"
		if tracked {
			cell = Percent(progress)
		}
		tbl.AddRow(e.Date.Format(layoutDay), fmt.Sprintf("%d/%d", done, len(active)), cell)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

func streakText(s stats.Streak) string {
	if s.Count == 0 {
		return "0 days"
	}
	unit := "days"
	if s.Count == 1 {
		unit = "day"
	}
	text := fmt.Sprintf("%d %s (%s to %s)", s.Count, unit, s.Start.Format(layoutDay), s.End.Format(layoutDay))
	if s.Ongoing {
		text += " *"
	}
	return text
}

// Bar renders ratio as a fixed-width bar.
func Bar(ratio float64, width int) string {
	ratio = math.Max(0, math.Min(1, ratio))
	filled := int(math.Round(ratio * float64(width)))
	return color.GreenString(strings.Repeat("█", filled)) + color.New(color.Faint).Sprint(strings.Repeat("░", width-filled))
}

// Percent renders ratio as a whole percentage.
func Percent(ratio float64) string {
	return fmt.Sprintf("%3.0f%%", ratio*100)
}
