package stats

import (
	"sort"
	"time"

	"tableflip.dev/arc/pkg/calendar"
	"tableflip.dev/arc/pkg/habit"
)

// CurrentStreak counts consecutive done days walking back from today. The
// walk stops at the first day that is not done, has no entry, or precedes
// the habit's creation; a missing day is never skipped over.
func CurrentStreak(cfg calendar.Config, h *habit.Habit, entries []*habit.Entry, today time.Time) Streak {
	today = cfg.StartOfDay(today)
	byDay := habit.ByDay(cfg, entries)

	s := Streak{}
	for d := today; h.ActiveOn(cfg, d); d = cfg.AddDays(d, -1) {
		e, ok := byDay[d]
		if !ok || !e.Statuses.Done(h.ID) {
			break
		}
		s.Count++
		s.Start = d
	}
	if s.Count > 0 {
		s.End = today
		s.Ongoing = true
	}
	return s
}

// BestStreak returns the longest run of done days between the habit's
// creation and today. A not-done day or a gap of more than one day between
// consecutive entries ends a run. The first longest run wins; a later run,
// including one still open today, replaces it only when strictly longer.
func BestStreak(cfg calendar.Config, h *habit.Habit, entries []*habit.Entry, today time.Time) Streak {
	today = cfg.StartOfDay(today)
	byDay := habit.ByDay(cfg, entries)

	days := make([]time.Time, 0, len(byDay))
	for d := range byDay {
		if h.ActiveOn(cfg, d) && !d.After(today) {
			days = append(days, d)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	var best, run Streak
	var prev time.Time
	for i, d := range days {
		if i > 0 && cfg.DaysBetween(prev, d) > 1 {
			run = Streak{}
		}
		prev = d

		if !byDay[d].Statuses.Done(h.ID) {
			run = Streak{}
			continue
		}
		if run.Count == 0 {
			run.Start = d
		}
		run.Count++
		run.End = d
		if run.Count > best.Count {
			best = run
		}
	}

	if best.Count > 0 && best.Start.Equal(run.Start) && best.End.Equal(today) {
		best.Ongoing = true
	}
	return best
}
