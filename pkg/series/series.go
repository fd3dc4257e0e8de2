// Package series projects a habit's history onto a dense day-by-day series
// for trend charts.
package series

import (
	"fmt"
	"strconv"
	"time"

	"tableflip.dev/arc/pkg/calendar"
	"tableflip.dev/arc/pkg/habit"
	"tableflip.dev/arc/pkg/stats"
)

// Point is one day of a series.
type Point struct {
	Date      time.Time `json:"date" yaml:"date"`
	Completed bool      `json:"completed" yaml:"completed"`
	// Active is false for days before the habit existed or after today.
	Active bool `json:"active" yaml:"active"`
}

// Build returns one point per day of the period window, ascending. Days with
// no entry, or no status for the habit, are not completed.
func Build(cfg calendar.Config, h *habit.Habit, p calendar.Period, offset int, entries []*habit.Entry, today time.Time) []Point {
	today = cfg.StartOfDay(today)
	start, end := cfg.PeriodRange(p, offset, h.Created, today)
	byDay := habit.ByDay(cfg, entries)

	days := cfg.Days(start, end)
	out := make([]Point, 0, len(days))
	for _, d := range days {
		pt := Point{Date: d, Active: h.ActiveOn(cfg, d) && !d.After(today)}
		if e, ok := byDay[d]; ok && pt.Active {
			pt.Completed = e.Statuses.Done(h.ID)
		}
		out = append(out, pt)
	}
	return out
}

// Completion is the share of active points that are completed.
func Completion(points []Point) float64 {
	total, done := 0, 0
	for _, pt := range points {
		if !pt.Active {
			continue
		}
		total++
		if pt.Completed {
			done++
		}
	}
	return stats.Ratio(done, total)
}

// AxisLabels returns one label per point. Up to a week every day is
// numbered; up to a month every n/5-th day is; longer ranges mark each month
// change with the month's initial. Other labels are blank.
func AxisLabels(points []Point) []string {
	n := len(points)
	labels := make([]string, n)
	switch {
	case n <= 7:
		for i, pt := range points {
			labels[i] = strconv.Itoa(pt.Date.Day())
		}
	case n <= 31:
		stride := n / 5
		if stride < 1 {
			stride = 1
		}
		for i, pt := range points {
			if i%stride == 0 {
				labels[i] = strconv.Itoa(pt.Date.Day())
			}
		}
	default:
		last := time.Month(0)
		for i, pt := range points {
			if m := pt.Date.Month(); m != last {
				labels[i] = m.String()[:1]
				last = m
			}
		}
	}
	return labels
}

// RangeLabel describes a period window for headings.
func RangeLabel(p calendar.Period, start, end time.Time) string {
	switch p {
	case calendar.Year:
		return start.Format("2006")
	case calendar.AllTime:
		return fmt.Sprintf("%s–%s", start.Format("Jan 2006"), end.Format("Jan 2006"))
	default:
		return start.Format("Jan 2006")
	}
}
