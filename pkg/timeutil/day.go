// Package timeutil parses the human-friendly day and month references
// accepted by the CLI and the MCP tools.
package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"tableflip.dev/arc/pkg/calendar"
)

const (
	layoutISO      = "2006-01-02"
	layoutISOLoose = "2006-1-2"
	layoutShort    = "1/2"
	layoutMonth    = "2006-01"
	layoutMonthAlt = "January 2006"
)

// maxRelativeDays bounds relative references to about a century.
const maxRelativeDays = 100 * 366

var (
	relativePattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
	unitDays        = map[string]int{
		"d":     1,
		"day":   1,
		"days":  1,
		"w":     7,
		"wk":    7,
		"wks":   7,
		"week":  7,
		"weeks": 7,
	}
)

// ParseDay resolves input to a day relative to today. Accepted forms are
// "today", "yesterday", an ISO date ("2025-02-28" or "2025-2-28"), a
// month/day pair ("2/28", the most recent one not after today) and a
// relative offset into the past such as "3d" or "1w2d". Empty input is today.
func ParseDay(cfg calendar.Config, input string, today time.Time) (time.Time, error) {
	today = cfg.StartOfDay(today)
	s := strings.ToLower(strings.TrimSpace(input))
	switch s {
	case "", "today":
		return today, nil
	case "yesterday":
		return cfg.AddDays(today, -1), nil
	}

	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range []string{layoutISO, layoutISOLoose} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	if t, err := time.ParseInLocation(layoutShort, s, loc); err == nil {
		t = time.Date(today.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
		// "12/5" typed in January means last December.
		if t.After(today) {
			t = t.AddDate(-1, 0, 0)
		}
		return t, nil
	}

	back, err := parseRelative(s)
	if err != nil {
		return time.Time{}, err
	}
	return cfg.AddDays(today, -back), nil
}

func parseRelative(s string) (int, error) {
	remaining := s
	total := 0
	for len(remaining) > 0 {
		matches := relativePattern.FindStringSubmatch(remaining)
		if len(matches) != 3 {
			return 0, fmt.Errorf("invalid day %q", strings.TrimSpace(remaining))
		}
		value, err := strconv.Atoi(matches[1])
		if err != nil {
			return 0, fmt.Errorf("invalid day value %q: %w", matches[1], err)
		}
		unit, ok := unitDays[matches[2]]
		if !ok {
			return 0, fmt.Errorf("unsupported day unit %q", matches[2])
		}
		if value > maxRelativeDays/unit || total+value*unit > maxRelativeDays {
			return 0, fmt.Errorf("day %q is more than %d days back", strings.TrimSpace(s), maxRelativeDays)
		}
		total += value * unit
		remaining = remaining[len(matches[0]):]
	}
	return total, nil
}

// ParseMonth resolves "2025-02", "February 2025" or a day reference accepted
// by ParseDay into the first day of that month.
func ParseMonth(cfg calendar.Config, input string, today time.Time) (time.Time, error) {
	s := strings.TrimSpace(input)
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range []string{layoutMonth, layoutMonthAlt} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	d, err := ParseDay(cfg, s, today)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q", input)
	}
	return cfg.MonthStart(d), nil
}

// FormatDay renders a day the way ParseDay reads it back.
func FormatDay(t time.Time) string {
	return t.Format(layoutISO)
}
