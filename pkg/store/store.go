package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/arc/pkg/calendar"
	"tableflip.dev/arc/pkg/habit"
)

var (
	// ErrDuplicateDay is returned when an insert would create a second entry
	// for a calendar day.
	ErrDuplicateDay = errors.New("store: entry already exists for day")
	// ErrNotFound is returned when a record id is unknown.
	ErrNotFound = errors.New("store: not found")
)

// Persistence defines the persistence contract for habits and daily entries.
// Reads return snapshots: callers may modify the returned records freely and
// must write them back explicitly.
type Persistence interface {
	ListHabits(ctx context.Context) ([]*habit.Habit, error)
	ListEntries(ctx context.Context) ([]*habit.Entry, error)
	StoreHabit(h *habit.Habit) error
	// InsertEntries stores a batch of new entries. Either every entry is
	// written or none is.
	InsertEntries(batch []*habit.Entry) error
	UpdateEntry(e *habit.Entry) error
	// DeleteHabit removes the habit and strips its status from every entry.
	DeleteHabit(id string) error
	DeleteEntry(id string) error
	Watch(ctx context.Context) (<-chan Event, error)
	Close() error
}

// Driver names a persistence backend.
type Driver string

const (
	DriverDiskv  Driver = "diskv"
	DriverSQLite Driver = "sqlite"
)

// Load creates a Persistence for the configured driver. A nil config is read
// from the environment with LoadConfig and a nil logger discards output.
func Load(cfg Config, log *zap.Logger) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	if log == nil {
		log = zap.NewNop()
	}

	switch d := Driver(strings.ToLower(strings.TrimSpace(cfg.Driver()))); d {
	case "", DriverDiskv:
		p, err := openDiskv(cfg, log)
		if err != nil {
			return nil, err
		}
		return p, nil
	case DriverSQLite, "sqlite3":
		p, err := openSQLite(cfg, log)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("store: unknown driver %q", d)
	}
}

// checkBatch rejects batches that would put two entries on one day, either
// within the batch or against existing entries.
func checkBatch(cal calendar.Config, existing, batch []*habit.Entry) error {
	seen := make(map[time.Time]bool, len(existing)+len(batch))
	for _, e := range existing {
		seen[cal.StartOfDay(e.Date)] = true
	}
	for _, e := range batch {
		if e == nil {
			return errors.New("store: nil entry in batch")
		}
		d := cal.StartOfDay(e.Date)
		if seen[d] {
			return fmt.Errorf("%w: %s", ErrDuplicateDay, d.Format(layoutISO))
		}
		seen[d] = true
	}
	return nil
}

const layoutISO = "2006-01-02"
