// Package stats computes completion ratios and streaks from a snapshot of
// habits and daily entries.
package stats

import (
	"time"

	"tableflip.dev/arc/pkg/calendar"
	"tableflip.dev/arc/pkg/habit"
)

// Ratio returns completed/total, or 0 when total is zero.
func Ratio(completed, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(completed) / float64(total)
}

// HabitCompletion is the share of entries, dated on or after the habit's
// creation day, in which the habit is done.
func HabitCompletion(cfg calendar.Config, h *habit.Habit, entries []*habit.Entry) float64 {
	total, done := 0, 0
	for _, e := range habit.ByDay(cfg, entries) {
		if !h.ActiveOn(cfg, e.Date) {
			continue
		}
		total++
		if e.Statuses.Done(h.ID) {
			done++
		}
	}
	return Ratio(done, total)
}

// DayProgress is the share of habits active on the entry's day that are done.
// The boolean is false when no habit was active, in which case there is no
// progress to show. Statuses for unknown habits are ignored.
func DayProgress(cfg calendar.Config, e *habit.Entry, habits []*habit.Habit) (float64, bool) {
	if e == nil {
		return 0, false
	}
	active := habit.Active(cfg, habits, e.Date)
	if len(active) == 0 {
		return 0, false
	}
	done := 0
	for _, h := range active {
		if e.Statuses.Done(h.ID) {
			done++
		}
	}
	return Ratio(done, len(active)), true
}

// Overall is the ratio of done habit-days over every entry.
func Overall(cfg calendar.Config, habits []*habit.Habit, entries []*habit.Entry) float64 {
	total, done := 0, 0
	for _, e := range habit.ByDay(cfg, entries) {
		for _, h := range habit.Active(cfg, habits, e.Date) {
			total++
			if e.Statuses.Done(h.ID) {
				done++
			}
		}
	}
	return Ratio(done, total)
}

// AllDone reports whether every habit active on the entry's day is done.
func AllDone(cfg calendar.Config, e *habit.Entry, habits []*habit.Habit) bool {
	p, ok := DayProgress(cfg, e, habits)
	return ok && p == 1
}

// Streak is a run of consecutive done days.
type Streak struct {
	Count int       `json:"count" yaml:"count"`
	Start time.Time `json:"start,omitempty" yaml:"start,omitempty"`
	End   time.Time `json:"end,omitempty" yaml:"end,omitempty"`
	// Ongoing is set when the run includes today.
	Ongoing bool `json:"ongoing" yaml:"ongoing"`
}
