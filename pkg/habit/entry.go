package habit

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/arc/pkg/calendar"
)

// Statuses maps habit ids to completion. A missing key reads as not done;
// keys are only written for habits active on the entry's day.
type Statuses map[string]bool

// Done reports the status of id, false when absent.
func (s Statuses) Done(id string) bool {
	return s[id]
}

// Has reports whether id has an explicit status.
func (s Statuses) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Clone copies the map.
func (s Statuses) Clone() Statuses {
	out := make(Statuses, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Entry records habit completion for one calendar day.
type Entry struct {
	ID       string    `json:"id" yaml:"id" toml:"id"`
	Date     time.Time `json:"date" yaml:"date" toml:"date"`
	Statuses Statuses  `json:"statuses" yaml:"statuses" toml:"statuses"`
}

// NewEntry builds an entry for the day containing date with every given
// habit marked not done.
func NewEntry(cfg calendar.Config, date time.Time, habits ...*Habit) *Entry {
	e := &Entry{
		ID:       uuid.NewString(),
		Date:     cfg.StartOfDay(date),
		Statuses: make(Statuses, len(habits)),
	}
	for _, h := range habits {
		if h != nil {
			e.Statuses[h.ID] = false
		}
	}
	return e
}

// Clone returns a deep copy.
func (e *Entry) Clone() *Entry {
	if e == nil {
		return nil
	}
	cp := *e
	cp.Statuses = e.Statuses.Clone()
	return &cp
}

// Remove drops the status for id and reports whether it was present.
func (e *Entry) Remove(id string) bool {
	if e == nil || !e.Statuses.Has(id) {
		return false
	}
	delete(e.Statuses, id)
	return true
}

// Toggle flips the status of habitID, an absent status becoming done. It
// returns the new value. Callers are responsible for checking that the habit
// is active on the entry's day.
func Toggle(e *Entry, habitID string) bool {
	if e.Statuses == nil {
		e.Statuses = make(Statuses)
	}
	v := !e.Statuses[habitID]
	e.Statuses[habitID] = v
	return v
}

// Set assigns the status of habitID.
func Set(e *Entry, habitID string, done bool) {
	if e.Statuses == nil {
		e.Statuses = make(Statuses)
	}
	e.Statuses[habitID] = done
}

// SortEntries orders entries by day, ties broken by id.
func SortEntries(entries []*Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		left, right := entries[i], entries[j]
		if left == nil || right == nil {
			return left != nil
		}
		if left.Date.Equal(right.Date) {
			return left.ID < right.ID
		}
		return left.Date.Before(right.Date)
	})
}

// ByDay indexes entries by the start of their day. When two entries share a
// day the earliest in sort order wins.
func ByDay(cfg calendar.Config, entries []*Entry) map[time.Time]*Entry {
	sorted := append([]*Entry(nil), entries...)
	SortEntries(sorted)
	out := make(map[time.Time]*Entry, len(sorted))
	for _, e := range sorted {
		if e == nil {
			continue
		}
		d := cfg.StartOfDay(e.Date)
		if _, ok := out[d]; !ok {
			out[d] = e
		}
	}
	return out
}

// OnDay returns the entry for the day containing date.
func OnDay(cfg calendar.Config, entries []*Entry, date time.Time) (*Entry, bool) {
	e, ok := ByDay(cfg, entries)[cfg.StartOfDay(date)]
	return e, ok
}
