package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"tableflip.dev/arc/pkg/calendar"
	"tableflip.dev/arc/pkg/habit"
)

// SQLiteFile is the database file name created under the base path.
const SQLiteFile = "arc.sqlite"

const schema = `
CREATE TABLE IF NOT EXISTS habits (
	id      TEXT PRIMARY KEY,
	name    TEXT NOT NULL,
	created TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS entries (
	id       TEXT PRIMARY KEY,
	day      TEXT NOT NULL UNIQUE,
	statuses TEXT NOT NULL DEFAULT '{}'
);
`

type sqlitePersistence struct {
	db       *sql.DB
	basePath string
	file     string
	cal      calendar.Config
	log      *zap.Logger
}

func openSQLite(cfg Config, log *zap.Logger) (*sqlitePersistence, error) {
	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	file := filepath.Join(basePath, SQLiteFile)
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", file)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1) // sqlite
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: ensure schema: %w", err)
	}
	return &sqlitePersistence{
		db:       db,
		basePath: basePath,
		file:     file,
		cal:      cfg.Calendar(),
		log:      log.Named("sqlite"),
	}, nil
}

func (s *sqlitePersistence) withTx(fn func(tx *sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			s.log.Error("rollback failed", zap.Error(rbErr))
		}
		return err
	}
	return tx.Commit()
}

func (s *sqlitePersistence) ListHabits(ctx context.Context) ([]*habit.Habit, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, created FROM habits`)
	if err != nil {
		return nil, fmt.Errorf("store: list habits: %w", err)
	}
	defer rows.Close()

	all := make([]*habit.Habit, 0)
	for rows.Next() {
		var (
			h       habit.Habit
			created string
		)
		if err := rows.Scan(&h.ID, &h.Name, &created); err != nil {
			return nil, err
		}
		h.Created, err = time.Parse(time.RFC3339Nano, created)
		if err != nil {
			s.log.Warn("skipping habit with bad timestamp", zap.String("id", h.ID), zap.Error(err))
			continue
		}
		all = append(all, &h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	habit.SortHabits(all)
	return all, nil
}

func (s *sqlitePersistence) ListEntries(ctx context.Context) ([]*habit.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, day, statuses FROM entries`)
	if err != nil {
		return nil, fmt.Errorf("store: list entries: %w", err)
	}
	defer rows.Close()

	all := make([]*habit.Entry, 0)
	for rows.Next() {
		var id, day, raw string
		if err := rows.Scan(&id, &day, &raw); err != nil {
			return nil, err
		}
		e, err := s.decodeEntry(id, day, raw)
		if err != nil {
			s.log.Warn("skipping unreadable entry", zap.String("id", id), zap.Error(err))
			continue
		}
		all = append(all, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	habit.SortEntries(all)
	return all, nil
}

func (s *sqlitePersistence) decodeEntry(id, day, raw string) (*habit.Entry, error) {
	loc := s.cal.Location
	if loc == nil {
		loc = time.Local
	}
	date, err := time.ParseInLocation(layoutISO, day, loc)
	if err != nil {
		return nil, err
	}
	statuses := habit.Statuses{}
	if err := json.Unmarshal([]byte(raw), &statuses); err != nil {
		return nil, err
	}
	return &habit.Entry{ID: id, Date: date, Statuses: statuses}, nil
}

func (s *sqlitePersistence) dayKey(t time.Time) string {
	return s.cal.StartOfDay(t).Format(layoutISO)
}

func (s *sqlitePersistence) StoreHabit(h *habit.Habit) error {
	if h == nil || h.ID == "" {
		return errors.New("store: habit id required")
	}
	_, err := s.db.Exec(
		`INSERT INTO habits (id, name, created) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET name = excluded.name, created = excluded.created`,
		h.ID, h.Name, h.Created.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("store: store habit: %w", err)
	}
	return nil
}

func (s *sqlitePersistence) InsertEntries(batch []*habit.Entry) error {
	if len(batch) == 0 {
		return nil
	}
	existing, err := s.ListEntries(context.Background())
	if err != nil {
		return err
	}
	if err := checkBatch(s.cal, existing, batch); err != nil {
		return err
	}
	return s.withTx(func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`INSERT INTO entries (id, day, statuses) VALUES (?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, e := range batch {
			if e.ID == "" {
				return errors.New("store: entry id required")
			}
			raw, err := json.Marshal(statusesOrEmpty(e.Statuses))
			if err != nil {
				return err
			}
			if _, err := stmt.Exec(e.ID, s.dayKey(e.Date), string(raw)); err != nil {
				if strings.Contains(err.Error(), "UNIQUE") {
					return fmt.Errorf("%w: %s", ErrDuplicateDay, s.dayKey(e.Date))
				}
				return fmt.Errorf("store: insert %s: %w", s.dayKey(e.Date), err)
			}
		}
		return nil
	})
}

func (s *sqlitePersistence) UpdateEntry(e *habit.Entry) error {
	if e == nil || e.ID == "" {
		return errors.New("store: entry id required")
	}
	raw, err := json.Marshal(statusesOrEmpty(e.Statuses))
	if err != nil {
		return err
	}
	res, err := s.db.Exec(`UPDATE entries SET day = ?, statuses = ? WHERE id = ?`, s.dayKey(e.Date), string(raw), e.ID)
	if err != nil {
		return fmt.Errorf("store: update entry: %w", err)
	}
	return expectRow(res, "entry", e.ID)
}

func (s *sqlitePersistence) DeleteHabit(id string) error {
	entries, err := s.ListEntries(context.Background())
	if err != nil {
		return err
	}
	return s.withTx(func(tx *sql.Tx) error {
		res, err := tx.Exec(`DELETE FROM habits WHERE id = ?`, id)
		if err != nil {
			return err
		}
		if err := expectRow(res, "habit", id); err != nil {
			return err
		}
		for _, e := range entries {
			if !e.Remove(id) {
				continue
			}
			raw, err := json.Marshal(e.Statuses)
			if err != nil {
				return err
			}
			if _, err := tx.Exec(`UPDATE entries SET statuses = ? WHERE id = ?`, string(raw), e.ID); err != nil {
				return fmt.Errorf("store: strip habit from %s: %w", e.ID, err)
			}
		}
		return nil
	})
}

func (s *sqlitePersistence) DeleteEntry(id string) error {
	res, err := s.db.Exec(`DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete entry: %w", err)
	}
	return expectRow(res, "entry", id)
}

// Watch reports every write to the database file as EventInvalidated; sqlite
// does not say which table changed.
func (s *sqlitePersistence) Watch(ctx context.Context) (<-chan Event, error) {
	name := filepath.Base(s.file)
	return watchTree(ctx, s.basePath, func(path string) (Event, bool) {
		if !strings.HasPrefix(filepath.Base(path), name) {
			return Event{}, false
		}
		return Event{Type: EventInvalidated, Path: path}, true
	}, s.log)
}

func (s *sqlitePersistence) Close() error {
	return s.db.Close()
}

func expectRow(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s %s", ErrNotFound, kind, id)
	}
	return nil
}

func statusesOrEmpty(s habit.Statuses) habit.Statuses {
	if s == nil {
		return habit.Statuses{}
	}
	return s
}
