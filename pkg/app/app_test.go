package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"tableflip.dev/arc/pkg/calendar"
	"tableflip.dev/arc/pkg/habit"
	"tableflip.dev/arc/pkg/store"
)

type memoryPersistence struct {
	mu      sync.Mutex
	cal     calendar.Config
	habits  map[string]*habit.Habit
	entries map[string]*habit.Entry
	failOn  string
}

func newMemoryPersistence(cal calendar.Config) *memoryPersistence {
	return &memoryPersistence{
		cal:     cal,
		habits:  make(map[string]*habit.Habit),
		entries: make(map[string]*habit.Entry),
	}
}

func (m *memoryPersistence) ListHabits(_ context.Context) ([]*habit.Habit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*habit.Habit, 0, len(m.habits))
	for _, h := range m.habits {
		cp := *h
		out = append(out, &cp)
	}
	habit.SortHabits(out)
	return out, nil
}

func (m *memoryPersistence) ListEntries(_ context.Context) ([]*habit.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*habit.Entry, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e.Clone())
	}
	habit.SortEntries(out)
	return out, nil
}

func (m *memoryPersistence) StoreHabit(h *habit.Habit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *h
	m.habits[h.ID] = &cp
	return nil
}

func (m *memoryPersistence) InsertEntries(batch []*habit.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failOn == "insert" {
		return errors.New("insert failed")
	}
	days := make(map[time.Time]bool, len(m.entries))
	for _, e := range m.entries {
		days[m.cal.StartOfDay(e.Date)] = true
	}
	for _, e := range batch {
		d := m.cal.StartOfDay(e.Date)
		if days[d] {
			return fmt.Errorf("%w: %s", store.ErrDuplicateDay, d)
		}
		days[d] = true
	}
	for _, e := range batch {
		m.entries[e.ID] = e.Clone()
	}
	return nil
}

func (m *memoryPersistence) UpdateEntry(e *habit.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[e.ID]; !ok {
		return store.ErrNotFound
	}
	m.entries[e.ID] = e.Clone()
	return nil
}

func (m *memoryPersistence) DeleteHabit(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.habits[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.habits, id)
	for _, e := range m.entries {
		e.Remove(id)
	}
	return nil
}

func (m *memoryPersistence) DeleteEntry(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.entries, id)
	return nil
}

func (m *memoryPersistence) Watch(ctx context.Context) (<-chan store.Event, error) {
	ch := make(chan store.Event)
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch, nil
}

func (m *memoryPersistence) Close() error { return nil }

var cal = calendar.Config{Location: time.UTC, FirstWeekday: time.Monday}

func day(m time.Month, d int) time.Time {
	return time.Date(2025, m, d, 0, 0, 0, 0, time.UTC)
}

func newService(today time.Time) (*Service, *memoryPersistence) {
	mp := newMemoryPersistence(cal)
	return &Service{
		Persistence: mp,
		Calendar:    cal,
		Clock:       calendar.FixedClock(today.Add(9 * time.Hour)),
	}, mp
}

func TestServiceWithoutPersistence(t *testing.T) {
	svc := &Service{}
	if _, err := svc.Habits(context.Background()); err == nil {
		t.Fatal("expected error without persistence")
	}
	if _, err := svc.Backfill(context.Background()); err == nil {
		t.Fatal("expected error without persistence")
	}
}

func TestAddHabitDefaultsToToday(t *testing.T) {
	svc, _ := newService(day(3, 10))
	h, err := svc.AddHabit(context.Background(), "  Read ", time.Time{})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if h.Name != "Read" || !h.Created.Equal(day(3, 10)) {
		t.Fatalf("unexpected habit %+v", h)
	}

	if _, err := svc.AddHabit(context.Background(), "read", time.Time{}); !errors.Is(err, ErrDuplicateHabit) {
		t.Fatalf("expected ErrDuplicateHabit, got %v", err)
	}
	if _, err := svc.AddHabit(context.Background(), " ", time.Time{}); !errors.Is(err, habit.ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
}

func TestBackfillFillsToToday(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(day(1, 5))
	if _, err := svc.AddHabit(ctx, "Read", day(1, 1)); err != nil {
		t.Fatalf("add: %v", err)
	}

	planned, err := svc.Plan(ctx)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if len(planned.Insert) != 5 {
		t.Fatalf("expected 5 planned inserts, got %d", len(planned.Insert))
	}
	entries, _ := svc.Entries(ctx)
	if len(entries) != 0 {
		t.Fatal("plan must not write")
	}

	if err := svc.Commit(ctx, planned); err != nil {
		t.Fatalf("commit: %v", err)
	}
	again, err := svc.Backfill(ctx)
	if err != nil {
		t.Fatalf("backfill: %v", err)
	}
	if !again.Empty() {
		t.Fatalf("second backfill should be empty, got %+v", again)
	}
}

func TestBackfillAddsLateHabitToExistingEntries(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(day(1, 3))
	if _, err := svc.AddHabit(ctx, "Read", day(1, 1)); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.Backfill(ctx); err != nil {
		t.Fatalf("backfill: %v", err)
	}
	run, err := svc.AddHabit(ctx, "Run", day(1, 2))
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	b, err := svc.Backfill(ctx)
	if err != nil {
		t.Fatalf("backfill: %v", err)
	}
	if len(b.Insert) != 0 || len(b.Update) != 2 {
		t.Fatalf("expected 2 updates, got %+v", b)
	}
	entries, _ := svc.Entries(ctx)
	for _, e := range entries {
		want := !e.Date.Before(day(1, 2))
		if e.Statuses.Has(run.ID) != want {
			t.Fatalf("%s: run status present=%v, want %v", e.Date, e.Statuses.Has(run.ID), want)
		}
	}
}

func TestCommitFailureLeavesStoreUnchanged(t *testing.T) {
	ctx := context.Background()
	svc, mp := newService(day(1, 3))
	if _, err := svc.AddHabit(ctx, "Read", day(1, 1)); err != nil {
		t.Fatalf("add: %v", err)
	}
	mp.failOn = "insert"
	if _, err := svc.Backfill(ctx); err == nil {
		t.Fatal("expected error")
	}
	entries, _ := svc.Entries(ctx)
	if len(entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(entries))
	}
}

func TestToggle(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(day(1, 3))
	read, _ := svc.AddHabit(ctx, "Read", day(1, 1))
	if _, err := svc.AddHabit(ctx, "Run", day(1, 1)); err != nil {
		t.Fatalf("add: %v", err)
	}

	d, done, err := svc.Toggle(ctx, "read", day(1, 3))
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !done || !d.Entry.Statuses.Done(read.ID) {
		t.Fatalf("expected read done, got %+v", d.Entry.Statuses)
	}
	if d.Progress != 0.5 || !d.Tracked {
		t.Fatalf("expected progress 0.5, got %v", d.Progress)
	}

	_, done, err = svc.Toggle(ctx, read.ID, day(1, 3))
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if done {
		t.Fatal("second toggle should clear status")
	}
}

func TestToggleErrors(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(day(1, 10))
	if _, err := svc.AddHabit(ctx, "Read", day(1, 5)); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, _, err := svc.Toggle(ctx, "Swim", day(1, 6)); !errors.Is(err, ErrHabitNotFound) {
		t.Fatalf("expected ErrHabitNotFound, got %v", err)
	}
	_, _, err := svc.Toggle(ctx, "Raed", day(1, 6))
	if !errors.Is(err, ErrHabitNotFound) || !strings.Contains(err.Error(), `did you mean "Read"`) {
		t.Fatalf("expected a suggestion, got %v", err)
	}
	if _, _, err := svc.Toggle(ctx, "Read", day(1, 4)); !errors.Is(err, ErrHabitInactive) {
		t.Fatalf("expected ErrHabitInactive, got %v", err)
	}
	if _, _, err := svc.Toggle(ctx, "Read", day(1, 11)); err == nil {
		t.Fatal("expected error for a future day")
	}
}

func TestOpenDayWithoutHabitsIsNotPersisted(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(day(1, 3))
	d, err := svc.OpenDay(ctx, day(1, 3))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if d.Tracked || len(d.Entry.Statuses) != 0 {
		t.Fatalf("expected untracked empty day, got %+v", d)
	}
	entries, _ := svc.Entries(ctx)
	if len(entries) != 0 {
		t.Fatal("empty day should not be stored")
	}
}

func TestDeleteHabitRemovesStatuses(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(day(1, 3))
	read, _ := svc.AddHabit(ctx, "Read", day(1, 1))
	if _, err := svc.Backfill(ctx); err != nil {
		t.Fatalf("backfill: %v", err)
	}
	if _, err := svc.DeleteHabit(ctx, "Read"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	entries, _ := svc.Entries(ctx)
	for _, e := range entries {
		if e.Statuses.Has(read.ID) {
			t.Fatalf("entry %s still has deleted habit", e.Date)
		}
	}
	b, err := svc.Plan(ctx)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	for _, e := range append(b.Insert, b.Update...) {
		if e.Statuses.Has(read.ID) {
			t.Fatal("backfill reintroduced deleted habit")
		}
	}
}

func TestDeleteEntry(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(day(1, 3))
	if _, err := svc.AddHabit(ctx, "Read", day(1, 1)); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.Backfill(ctx); err != nil {
		t.Fatalf("backfill: %v", err)
	}
	if _, err := svc.DeleteEntry(ctx, day(1, 2)); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.DeleteEntry(ctx, day(1, 2)); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	b, _ := svc.Plan(ctx)
	if len(b.Insert) != 1 || !b.Insert[0].Date.Equal(day(1, 2)) {
		t.Fatalf("expected the deleted day to be planned again, got %+v", b.Insert)
	}
}
