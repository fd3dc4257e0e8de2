// Package backfill keeps the daily record gap-free: one entry per day from the
// first tracked day to today, each listing every habit active on that day.
package backfill

import (
	"time"

	"tableflip.dev/arc/pkg/calendar"
	"tableflip.dev/arc/pkg/habit"
)

// Reconcile returns the entries that must be created so every day from the
// earliest habit or entry up to today has one. Days on which no habit was
// active are skipped. Inputs are not modified and running Reconcile again
// after persisting the result yields nothing.
func Reconcile(cfg calendar.Config, habits []*habit.Habit, entries []*habit.Entry, today time.Time) []*habit.Entry {
	start, ok := startDate(cfg, habits, entries)
	if !ok {
		return nil
	}
	existing := habit.ByDay(cfg, entries)

	var out []*habit.Entry
	for _, d := range cfg.Days(start, today) {
		if _, ok := existing[d]; ok {
			continue
		}
		active := habit.Active(cfg, habits, d)
		if len(active) == 0 {
			continue
		}
		out = append(out, habit.NewEntry(cfg, d, active...))
	}
	return out
}

func startDate(cfg calendar.Config, habits []*habit.Habit, entries []*habit.Entry) (time.Time, bool) {
	start, ok := habit.Earliest(habits)
	for _, e := range entries {
		if e == nil {
			continue
		}
		if !ok || e.Date.Before(start) {
			start = e.Date
			ok = true
		}
	}
	return cfg.StartOfDay(start), ok
}

// EnsureEntry returns the entry for date, building one when none exists. The
// boolean reports whether the entry is new and still needs to be persisted.
func EnsureEntry(cfg calendar.Config, date time.Time, habits []*habit.Habit, entries []*habit.Entry) (*habit.Entry, bool) {
	if e, ok := habit.OnDay(cfg, entries, date); ok {
		return e, false
	}
	return habit.NewEntry(cfg, date, habit.Active(cfg, habits, date)...), true
}

// IncludeActive adds a not-done status for every habit active on the entry's
// day that has none yet. It reports whether the entry changed.
func IncludeActive(cfg calendar.Config, e *habit.Entry, habits []*habit.Habit) bool {
	if e == nil {
		return false
	}
	changed := false
	for _, h := range habit.Active(cfg, habits, e.Date) {
		if e.Statuses.Has(h.ID) {
			continue
		}
		habit.Set(e, h.ID, false)
		changed = true
	}
	return changed
}

// Prune drops statuses that reference habits which no longer exist. It
// reports whether the entry changed.
func Prune(e *habit.Entry, habits []*habit.Habit) bool {
	if e == nil {
		return false
	}
	known := habit.Index(habits)
	changed := false
	for id := range e.Statuses {
		if _, ok := known[id]; !ok {
			delete(e.Statuses, id)
			changed = true
		}
	}
	return changed
}
