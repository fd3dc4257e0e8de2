// Package habit defines the persisted records: habits and the per-day entries
// recording whether each habit was done.
package habit

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"

	"tableflip.dev/arc/pkg/calendar"
)

// ErrEmptyName is returned when a habit is created without a name.
var ErrEmptyName = errors.New("habit: name required")

// Habit is a user-defined behaviour tracked once per day.
type Habit struct {
	ID      string    `json:"id" yaml:"id" toml:"id"`
	Name    string    `json:"name" yaml:"name" toml:"name"`
	Created time.Time `json:"created" yaml:"created" toml:"created"`
}

// New builds a habit with a fresh id.
func New(name string, created time.Time) (*Habit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	return &Habit{
		ID:      uuid.NewString(),
		Name:    name,
		Created: created,
	}, nil
}

// ActiveOn reports whether the habit existed on day. The creation day itself
// counts.
func (h *Habit) ActiveOn(cfg calendar.Config, day time.Time) bool {
	if h == nil {
		return false
	}
	return !cfg.StartOfDay(h.Created).After(cfg.StartOfDay(day))
}

// Active filters habits down to those active on day.
func Active(cfg calendar.Config, habits []*Habit, day time.Time) []*Habit {
	out := make([]*Habit, 0, len(habits))
	for _, h := range habits {
		if h.ActiveOn(cfg, day) {
			out = append(out, h)
		}
	}
	return out
}

// Index maps habits by id.
func Index(habits []*Habit) map[string]*Habit {
	out := make(map[string]*Habit, len(habits))
	for _, h := range habits {
		if h != nil {
			out[h.ID] = h
		}
	}
	return out
}

// Find looks a habit up by id, then by case-insensitive name, then by id
// prefix.
func Find(habits []*Habit, ref string) (*Habit, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, false
	}
	for _, h := range habits {
		if h != nil && h.ID == ref {
			return h, true
		}
	}
	for _, h := range habits {
		if h != nil && strings.EqualFold(h.Name, ref) {
			return h, true
		}
	}
	var match *Habit
	for _, h := range habits {
		if h != nil && strings.HasPrefix(h.ID, ref) {
			if match != nil {
				return nil, false
			}
			match = h
		}
	}
	return match, match != nil
}

// Suggest returns the habit name closest to ref, for typos Find rejects.
// Names more than a third of their length away are not suggested.
func Suggest(habits []*Habit, ref string) (string, bool) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	if ref == "" {
		return "", false
	}
	best, bestDist := "", -1
	for _, h := range habits {
		if h == nil {
			continue
		}
		name := strings.ToLower(h.Name)
		d := levenshtein.ComputeDistance(ref, name)
		if d > (len(name)+2)/3 {
			continue
		}
		if bestDist < 0 || d < bestDist {
			best, bestDist = h.Name, d
		}
	}
	return best, bestDist >= 0
}

// SortHabits orders habits by creation time then name.
func SortHabits(habits []*Habit) {
	sort.SliceStable(habits, func(i, j int) bool {
		left, right := habits[i], habits[j]
		if left == nil || right == nil {
			return left != nil
		}
		if left.Created.Equal(right.Created) {
			return left.Name < right.Name
		}
		return left.Created.Before(right.Created)
	})
}

// Earliest returns the earliest creation instant, false when habits is empty.
func Earliest(habits []*Habit) (time.Time, bool) {
	var out time.Time
	found := false
	for _, h := range habits {
		if h == nil {
			continue
		}
		if !found || h.Created.Before(out) {
			out = h.Created
			found = true
		}
	}
	return out, found
}
