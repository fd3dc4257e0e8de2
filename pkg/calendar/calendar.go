// Package calendar holds the date-only arithmetic used by every habit
// computation: day truncation, week/month/year boundaries, period windows and
// the month grid.
package calendar

import (
	"fmt"
	"strings"
	"time"
)

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now.
func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always reports the same instant.
type FixedClock time.Time

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time { return time.Time(c) }

// Config carries the calendar conventions that would otherwise be ambient
// process state.
type Config struct {
	Location     *time.Location
	FirstWeekday time.Weekday
}

// DefaultConfig uses the local zone and Monday-first weeks.
func DefaultConfig() Config {
	return Config{Location: time.Local, FirstWeekday: time.Monday}
}

func (c Config) loc() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}

// StartOfDay truncates t to midnight in the configured location.
func (c Config) StartOfDay(t time.Time) time.Time {
	t = t.In(c.loc())
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, c.loc())
}

// Today is the start of the current day according to clock.
func (c Config) Today(clock Clock) time.Time {
	if clock == nil {
		clock = SystemClock{}
	}
	return c.StartOfDay(clock.Now())
}

// IsSameDay reports whether a and b fall on the same calendar day.
func (c Config) IsSameDay(a, b time.Time) bool {
	return c.StartOfDay(a).Equal(c.StartOfDay(b))
}

// AddDays moves t by n calendar days and normalises to midnight. AddDate keeps
// the wall clock, so this is safe across DST transitions.
func (c Config) AddDays(t time.Time, n int) time.Time {
	d := c.StartOfDay(t)
	return time.Date(d.Year(), d.Month(), d.Day()+n, 0, 0, 0, 0, c.loc())
}

// DaysBetween returns the number of calendar days from a to b. It is negative
// when b is before a.
func (c Config) DaysBetween(a, b time.Time) int {
	a, b = c.StartOfDay(a), c.StartOfDay(b)
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

// Days enumerates every day from start to end inclusive.
func (c Config) Days(start, end time.Time) []time.Time {
	start, end = c.StartOfDay(start), c.StartOfDay(end)
	if end.Before(start) {
		return nil
	}
	days := make([]time.Time, 0, c.DaysBetween(start, end)+1)
	for d := start; !d.After(end); d = c.AddDays(d, 1) {
		days = append(days, d)
	}
	return days
}

// WeekStart returns the first day of the week containing t.
func (c Config) WeekStart(t time.Time) time.Time {
	d := c.StartOfDay(t)
	back := (int(d.Weekday()) - int(c.FirstWeekday) + 7) % 7
	return c.AddDays(d, -back)
}

// MonthStart returns the first day of the month containing t.
func (c Config) MonthStart(t time.Time) time.Time {
	t = t.In(c.loc())
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, c.loc())
}

// YearStart returns January 1st of the year containing t.
func (c Config) YearStart(t time.Time) time.Time {
	t = t.In(c.loc())
	return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, c.loc())
}

// DaysIn returns the number of days in the month of then.
func DaysIn(then time.Time) int {
	return time.Date(then.Year(), then.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// NextMonth returns the first day of the month after then.
func NextMonth(then time.Time) time.Time {
	return time.Date(then.Year(), then.Month()+1, 1, 0, 0, 0, 0, then.Location())
}

// MonthAt resolves UI state expressed as an offset from an epoch month into
// an explicit month.
func (c Config) MonthAt(epoch time.Time, offset int) time.Time {
	m := c.MonthStart(epoch)
	return time.Date(m.Year(), m.Month()+time.Month(offset), 1, 0, 0, 0, 0, c.loc())
}

// MonthGrid lays the month containing month out in rows of seven, starting on
// FirstWeekday. Padding slots hold the zero time.
func (c Config) MonthGrid(month time.Time) []time.Time {
	first := c.MonthStart(month)
	lead := (int(first.Weekday()) - int(c.FirstWeekday) + 7) % 7
	days := DaysIn(first)

	grid := make([]time.Time, lead, lead+days+6)
	for i := 0; i < days; i++ {
		grid = append(grid, c.AddDays(first, i))
	}
	for len(grid)%7 != 0 {
		grid = append(grid, time.Time{})
	}
	return grid
}

// WeekdayHeader returns single-letter weekday labels in grid order.
func (c Config) WeekdayHeader() []string {
	out := make([]string, 7)
	for i := range out {
		out[i] = time.Weekday((int(c.FirstWeekday) + i) % 7).String()[:1]
	}
	return out
}

// ParseWeekday accepts full or three-letter English weekday names.
func ParseWeekday(raw string) (time.Weekday, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || s == name[:3] {
			return d, nil
		}
	}
	return time.Monday, fmt.Errorf("calendar: unknown weekday %q", raw)
}
