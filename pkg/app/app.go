package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/arc/pkg/backfill"
	"tableflip.dev/arc/pkg/calendar"
	"tableflip.dev/arc/pkg/habit"
	"tableflip.dev/arc/pkg/stats"
	"tableflip.dev/arc/pkg/store"
)

// Service provides high-level operations for habits and daily entries.
// It wraps persistence and the backfill and stats engines so the CLI, the
// watcher and the MCP server share logic.
type Service struct {
	Persistence store.Persistence
	Calendar    calendar.Config
	// Clock defaults to the system clock.
	Clock calendar.Clock
	Log   *zap.Logger

	mu sync.Mutex
}

var (
	ErrHabitNotFound  = errors.New("app: habit not found")
	ErrHabitInactive  = errors.New("app: habit not active on that day")
	ErrDuplicateHabit = errors.New("app: habit already exists")

	errNoPersistence = errors.New("app: no persistence configured")
)

func (s *Service) today() time.Time {
	clock := s.Clock
	if clock == nil {
		clock = calendar.SystemClock{}
	}
	return s.Calendar.Today(clock)
}

func (s *Service) log() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

// Today returns the current day in the configured calendar.
func (s *Service) Today() time.Time {
	return s.today()
}

type snapshot struct {
	habits  []*habit.Habit
	entries []*habit.Entry
}

func (s *Service) load(ctx context.Context) (*snapshot, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	habits, err := s.Persistence.ListHabits(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := s.Persistence.ListEntries(ctx)
	if err != nil {
		return nil, err
	}
	return &snapshot{habits: habits, entries: entries}, nil
}

// Habits returns all habits ordered by creation.
func (s *Service) Habits(ctx context.Context) ([]*habit.Habit, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	return s.Persistence.ListHabits(ctx)
}

// Entries returns all entries ordered by day.
func (s *Service) Entries(ctx context.Context) ([]*habit.Entry, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	return s.Persistence.ListEntries(ctx)
}

// Habit resolves ref (id, name or unique id prefix).
func (s *Service) Habit(ctx context.Context, ref string) (*habit.Habit, error) {
	habits, err := s.Habits(ctx)
	if err != nil {
		return nil, err
	}
	h, ok := habit.Find(habits, ref)
	if !ok {
		return nil, notFound(habits, ref)
	}
	return h, nil
}

func notFound(habits []*habit.Habit, ref string) error {
	if name, ok := habit.Suggest(habits, ref); ok {
		return fmt.Errorf("%w: %q, did you mean %q?", ErrHabitNotFound, ref, name)
	}
	return fmt.Errorf("%w: %q", ErrHabitNotFound, ref)
}

// AddHabit creates a habit tracked from the day containing created, or from
// today when created is zero. Names are unique, ignoring case.
func (s *Service) AddHabit(ctx context.Context, name string, created time.Time) (*habit.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	habits, err := s.Habits(ctx)
	if err != nil {
		return nil, err
	}
	for _, h := range habits {
		if strings.EqualFold(h.Name, strings.TrimSpace(name)) {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateHabit, h.Name)
		}
	}
	if created.IsZero() {
		created = s.today()
	}
	h, err := habit.New(name, s.Calendar.StartOfDay(created))
	if err != nil {
		return nil, err
	}
	if err := s.Persistence.StoreHabit(h); err != nil {
		return nil, err
	}
	s.log().Info("habit added", zap.String("id", h.ID), zap.String("name", h.Name))
	return h, nil
}

// DeleteHabit removes the habit and its status from every entry.
func (s *Service) DeleteHabit(ctx context.Context, ref string) (*habit.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, err := s.Habit(ctx, ref)
	if err != nil {
		return nil, err
	}
	if err := s.Persistence.DeleteHabit(h.ID); err != nil {
		return nil, err
	}
	s.log().Info("habit deleted", zap.String("id", h.ID), zap.String("name", h.Name))
	return h, nil
}

// DeleteEntry removes the entry for the day containing date. The next
// backfill recreates it empty.
func (s *Service) DeleteEntry(ctx context.Context, date time.Time) (*habit.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.Entries(ctx)
	if err != nil {
		return nil, err
	}
	e, ok := habit.OnDay(s.Calendar, entries, date)
	if !ok {
		return nil, fmt.Errorf("%w: entry for %s", store.ErrNotFound, date.Format("2006-01-02"))
	}
	if err := s.Persistence.DeleteEntry(e.ID); err != nil {
		return nil, err
	}
	return e, nil
}

// Batch is a set of writes computed from a snapshot and not yet persisted.
type Batch struct {
	// Insert holds entries for days that had none.
	Insert []*habit.Entry `json:"insert" yaml:"insert"`
	// Update holds existing entries that gained active habits or dropped
	// statuses for deleted ones.
	Update []*habit.Entry `json:"update" yaml:"update"`
}

// Empty reports whether the batch has no writes.
func (b *Batch) Empty() bool {
	return b == nil || len(b.Insert)+len(b.Update) == 0
}

// Plan computes the backfill batch up to today without writing anything.
func (s *Service) Plan(ctx context.Context) (*Batch, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return s.plan(snap), nil
}

func (s *Service) plan(snap *snapshot) *Batch {
	b := &Batch{
		Insert: backfill.Reconcile(s.Calendar, snap.habits, snap.entries, s.today()),
	}
	for _, e := range snap.entries {
		cp := e.Clone()
		pruned := backfill.Prune(cp, snap.habits)
		included := backfill.IncludeActive(s.Calendar, cp, snap.habits)
		if pruned || included {
			b.Update = append(b.Update, cp)
		}
	}
	return b
}

// Commit persists a batch. Inserts are all or nothing; updates are applied
// one by one afterwards.
func (s *Service) Commit(ctx context.Context, b *Batch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(ctx, b)
}

func (s *Service) commit(ctx context.Context, b *Batch) error {
	if b.Empty() {
		return nil
	}
	if s.Persistence == nil {
		return errNoPersistence
	}
	if err := s.Persistence.InsertEntries(b.Insert); err != nil {
		return err
	}
	for _, e := range b.Update {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.Persistence.UpdateEntry(e); err != nil {
			return err
		}
	}
	s.log().Debug("backfill committed", zap.Int("inserted", len(b.Insert)), zap.Int("updated", len(b.Update)))
	return nil
}

// Backfill plans and commits in one step and returns what was written.
func (s *Service) Backfill(ctx context.Context) (*Batch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	b := s.plan(snap)
	if err := s.commit(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Day is a single day's checklist. Habits lists the habits active on Date in
// creation order; Tracked is false when there are none.
type Day struct {
	Date     time.Time      `json:"date" yaml:"date"`
	Entry    *habit.Entry   `json:"entry" yaml:"entry"`
	Habits   []*habit.Habit `json:"habits" yaml:"habits"`
	Progress float64        `json:"progress" yaml:"progress"`
	Tracked  bool           `json:"tracked" yaml:"tracked"`
}

// OpenDay returns the day containing date, creating its entry and adding
// missing active habits when needed. Days after today are rejected.
func (s *Service) OpenDay(ctx context.Context, date time.Time) (*Day, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return s.openDay(snap, date)
}

func (s *Service) openDay(snap *snapshot, date time.Time) (*Day, error) {
	date = s.Calendar.StartOfDay(date)
	if date.After(s.today()) {
		return nil, fmt.Errorf("app: %s is in the future", date.Format("2006-01-02"))
	}

	e, created := backfill.EnsureEntry(s.Calendar, date, snap.habits, snap.entries)
	active := habit.Active(s.Calendar, snap.habits, date)
	switch {
	case created && len(active) > 0:
		if err := s.Persistence.InsertEntries([]*habit.Entry{e}); err != nil {
			return nil, err
		}
		snap.entries = append(snap.entries, e)
	case !created:
		pruned := backfill.Prune(e, snap.habits)
		if backfill.IncludeActive(s.Calendar, e, snap.habits) || pruned {
			if err := s.Persistence.UpdateEntry(e); err != nil {
				return nil, err
			}
		}
	}

	progress, tracked := stats.DayProgress(s.Calendar, e, snap.habits)
	return &Day{
		Date:     date,
		Entry:    e,
		Habits:   active,
		Progress: progress,
		Tracked:  tracked,
	}, nil
}

// Toggle flips the habit's status on the day containing date and returns the
// updated day along with the new status.
func (s *Service) Toggle(ctx context.Context, ref string, date time.Time) (*Day, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load(ctx)
	if err != nil {
		return nil, false, err
	}
	h, ok := habit.Find(snap.habits, ref)
	if !ok {
		return nil, false, notFound(snap.habits, ref)
	}
	if !h.ActiveOn(s.Calendar, date) {
		return nil, false, fmt.Errorf("%w: %s created %s", ErrHabitInactive, h.Name, h.Created.Format("2006-01-02"))
	}

	day, err := s.openDay(snap, date)
	if err != nil {
		return nil, false, err
	}
	done := habit.Toggle(day.Entry, h.ID)
	if err := s.Persistence.UpdateEntry(day.Entry); err != nil {
		return nil, false, err
	}
	day.Progress, day.Tracked = stats.DayProgress(s.Calendar, day.Entry, snap.habits)
	s.log().Debug("habit toggled",
		zap.String("habit", h.Name),
		zap.Time("day", day.Date),
		zap.Bool("done", done),
	)
	return day, done, nil
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	return s.Persistence.Watch(ctx)
}
