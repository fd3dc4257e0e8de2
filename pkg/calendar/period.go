package calendar

import (
	"fmt"
	"strings"
	"time"
)

// Period identifies a reporting window.
type Period string

const (
	Week    Period = "week"
	Month   Period = "month"
	Year    Period = "year"
	AllTime Period = "all"
)

// AllPeriods lists the supported periods in display order.
func AllPeriods() []Period {
	return []Period{Week, Month, Year, AllTime}
}

// String returns the display name.
func (p Period) String() string {
	switch p {
	case Week:
		return "Week"
	case Month:
		return "Month"
	case Year:
		return "Year"
	case AllTime:
		return "All Time"
	default:
		return string(p)
	}
}

// Valid reports whether p is one of the supported periods.
func (p Period) Valid() bool {
	for _, candidate := range AllPeriods() {
		if p == candidate {
			return true
		}
	}
	return false
}

// PeriodRange returns the inclusive day range for p. For Week, Month and Year
// the current period is shifted by offset whole periods, positive offsets
// moving into the past. AllTime ignores offset and spans from the habit's
// creation day to today.
func (c Config) PeriodRange(p Period, offset int, habitCreated, today time.Time) (time.Time, time.Time) {
	today = c.StartOfDay(today)
	switch p {
	case Week:
		start := c.AddDays(c.WeekStart(today), -7*offset)
		return start, c.AddDays(start, 6)
	case Month:
		m := c.MonthStart(today)
		start := time.Date(m.Year(), m.Month()-time.Month(offset), 1, 0, 0, 0, 0, c.loc())
		return start, c.AddDays(NextMonth(start), -1)
	case Year:
		y := c.YearStart(today)
		start := time.Date(y.Year()-offset, time.January, 1, 0, 0, 0, 0, c.loc())
		return start, time.Date(start.Year(), time.December, 31, 0, 0, 0, 0, c.loc())
	default:
		return c.StartOfDay(habitCreated), today
	}
}

// ParsePeriod converts user input such as "w", "month" or "all-time".
func ParsePeriod(raw string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "w", "wk", "week", "weekly":
		return Week, nil
	case "m", "mo", "month", "monthly":
		return Month, nil
	case "y", "yr", "year", "yearly":
		return Year, nil
	case "a", "all", "alltime", "all-time", "all_time":
		return AllTime, nil
	default:
		return Week, fmt.Errorf("calendar: unknown period %q", raw)
	}
}
