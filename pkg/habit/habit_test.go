package habit

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"tableflip.dev/arc/pkg/calendar"
)

var cfg = calendar.Config{Location: time.UTC, FirstWeekday: time.Monday}

func TestNewRejectsEmptyName(t *testing.T) {
	if _, err := New("   ", time.Now()); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
	h, err := New("  Read  ", time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.Name != "Read" || h.ID == "" {
		t.Fatalf("unexpected habit %+v", h)
	}
}

func TestActiveOnIgnoresTimeOfDay(t *testing.T) {
	h := &Habit{ID: "a", Name: "Run", Created: time.Date(2025, 1, 2, 18, 30, 0, 0, time.UTC)}
	if !h.ActiveOn(cfg, time.Date(2025, 1, 2, 6, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected habit active on its creation day")
	}
	if h.ActiveOn(cfg, time.Date(2025, 1, 1, 23, 59, 0, 0, time.UTC)) {
		t.Fatalf("expected habit inactive the day before creation")
	}
	var nilHabit *Habit
	if nilHabit.ActiveOn(cfg, time.Now()) {
		t.Fatalf("nil habit must never be active")
	}
}

func TestFind(t *testing.T) {
	habits := []*Habit{
		{ID: "abc-1", Name: "Read"},
		{ID: "abd-2", Name: "Run"},
	}
	if h, ok := Find(habits, "run"); !ok || h.ID != "abd-2" {
		t.Fatalf("expected lookup by name, got %v %v", h, ok)
	}
	if h, ok := Find(habits, "abc"); !ok || h.Name != "Read" {
		t.Fatalf("expected lookup by id prefix, got %v %v", h, ok)
	}
	if _, ok := Find(habits, "ab"); ok {
		t.Fatalf("expected ambiguous prefix to fail")
	}
}

func TestSuggest(t *testing.T) {
	habits := []*Habit{
		{ID: "1", Name: "Read"},
		{ID: "2", Name: "Meditate"},
	}
	tests := []struct {
		ref  string
		want string
		ok   bool
	}{
		{ref: "raed", want: "Read", ok: true},
		{ref: "meditat", want: "Meditate", ok: true},
		{ref: "swim", ok: false},
		{ref: "", ok: false},
	}
	for _, tt := range tests {
		got, ok := Suggest(habits, tt.ref)
		if got != tt.want || ok != tt.ok {
			t.Fatalf("Suggest(%q) = %q, %v, want %q, %v", tt.ref, got, ok, tt.want, tt.ok)
		}
	}
}

func TestToggleInitialisesMissingStatus(t *testing.T) {
	e := &Entry{ID: "e"}
	if got := Toggle(e, "h"); !got {
		t.Fatalf("expected absent status to toggle to done")
	}
	if got := Toggle(e, "h"); got {
		t.Fatalf("expected second toggle to clear")
	}
	if !e.Statuses.Has("h") || e.Statuses.Done("h") {
		t.Fatalf("expected explicit false status, got %v", e.Statuses)
	}
}

func TestStatusesMissPolicy(t *testing.T) {
	s := Statuses{"a": true}
	if s.Done("missing") || s.Has("missing") {
		t.Fatalf("missing key must read as not done and absent")
	}
	var nilMap Statuses
	if nilMap.Done("a") {
		t.Fatalf("nil statuses must read as not done")
	}
}

func TestNewEntryNormalisesDay(t *testing.T) {
	h := &Habit{ID: "h"}
	e := NewEntry(cfg, time.Date(2025, 5, 4, 13, 0, 0, 0, time.UTC), h)
	if !e.Date.Equal(time.Date(2025, 5, 4, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected midnight date, got %v", e.Date)
	}
	if !e.Statuses.Has("h") || e.Statuses.Done("h") {
		t.Fatalf("expected habit initialised to false, got %v", e.Statuses)
	}
}

func TestOnDayPrefersFirstEntry(t *testing.T) {
	d := time.Date(2025, 5, 4, 0, 0, 0, 0, time.UTC)
	entries := []*Entry{{ID: "b", Date: d}, {ID: "a", Date: d}}
	e, ok := OnDay(cfg, entries, d.Add(5*time.Hour))
	if !ok || e.ID != "a" {
		t.Fatalf("expected entry a, got %v", e)
	}
}

func TestEntryJSON(t *testing.T) {
	e := &Entry{ID: "e", Date: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Statuses: Statuses{"h": true}}
	b, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Entry
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Date.Equal(e.Date) || !back.Statuses.Done("h") {
		t.Fatalf("unexpected decoded entry %+v", back)
	}
}
