package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/peterbourgon/diskv/v3"
	"go.uber.org/zap"

	"tableflip.dev/arc/pkg/calendar"
	"tableflip.dev/arc/pkg/habit"
)

const (
	kindHabit = "habits"
	kindEntry = "entries"
	keySep    = ":"
)

func openDiskv(cfg Config, log *zap.Logger) (*persistence, error) {
	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &persistence{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			// Other processes write the same tree; every read goes to disk.
			CacheSizeMax: 0,
		}),
		basePath: basePath,
		cal:      cfg.Calendar(),
		log:      log.Named("diskv"),
	}, nil
}

// persistence stores one JSON document per record under
// <base>/habits/<id> and <base>/entries/<id>.
type persistence struct {
	mu       sync.Mutex
	d        *diskv.Diskv
	basePath string
	cal      calendar.Config
	log      *zap.Logger
}

func (p *persistence) keys(ctx context.Context, kind string) []string {
	var out []string
	for key := range p.d.KeysPrefix(kind+keySep, ctx.Done()) {
		out = append(out, key)
	}
	return out
}

func (p *persistence) ListHabits(ctx context.Context) ([]*habit.Habit, error) {
	all := make([]*habit.Habit, 0)
	for _, key := range p.keys(ctx, kindHabit) {
		h := &habit.Habit{}
		if err := p.read(key, h); err != nil {
			p.log.Warn("skipping unreadable habit", zap.String("key", key), zap.Error(err))
			continue
		}
		h.ID = idFromKey(key)
		all = append(all, h)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	habit.SortHabits(all)
	return all, nil
}

func (p *persistence) ListEntries(ctx context.Context) ([]*habit.Entry, error) {
	all := make([]*habit.Entry, 0)
	for _, key := range p.keys(ctx, kindEntry) {
		e := &habit.Entry{}
		if err := p.read(key, e); err != nil {
			p.log.Warn("skipping unreadable entry", zap.String("key", key), zap.Error(err))
			continue
		}
		e.ID = idFromKey(key)
		if e.Statuses == nil {
			e.Statuses = habit.Statuses{}
		}
		all = append(all, e)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	habit.SortEntries(all)
	return all, nil
}

func (p *persistence) read(key string, v any) error {
	val, err := p.d.Read(key)
	if err != nil {
		return err
	}
	return json.Unmarshal(val, v)
}

func (p *persistence) write(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return p.d.Write(key, data)
}

func (p *persistence) StoreHabit(h *habit.Habit) error {
	if h == nil || h.ID == "" {
		return errors.New("store: habit id required")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.write(toKey(kindHabit, h.ID), h)
}

func (p *persistence) InsertEntries(batch []*habit.Entry) error {
	if len(batch) == 0 {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	existing, err := p.ListEntries(context.Background())
	if err != nil {
		return err
	}
	if err := checkBatch(p.cal, existing, batch); err != nil {
		return err
	}

	written := make([]string, 0, len(batch))
	for _, e := range batch {
		if e.ID == "" {
			p.rollback(written)
			return errors.New("store: entry id required")
		}
		key := toKey(kindEntry, e.ID)
		if err := p.write(key, e); err != nil {
			p.rollback(written)
			return fmt.Errorf("store: insert %s: %w", e.Date.Format(layoutISO), err)
		}
		written = append(written, key)
	}
	return nil
}

func (p *persistence) rollback(keys []string) {
	for _, key := range keys {
		if err := p.d.Erase(key); err != nil {
			p.log.Error("rollback failed", zap.String("key", key), zap.Error(err))
		}
	}
	if len(keys) > 0 {
		p.log.Warn("rolled back partial batch", zap.Int("entries", len(keys)))
	}
}

func (p *persistence) UpdateEntry(e *habit.Entry) error {
	if e == nil || e.ID == "" {
		return errors.New("store: entry id required")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	key := toKey(kindEntry, e.ID)
	if !p.d.Has(key) {
		return fmt.Errorf("%w: entry %s", ErrNotFound, e.ID)
	}
	return p.write(key, e)
}

func (p *persistence) DeleteHabit(id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	key := toKey(kindHabit, id)
	if !p.d.Has(key) {
		return fmt.Errorf("%w: habit %s", ErrNotFound, id)
	}

	entries, err := p.ListEntries(context.Background())
	if err != nil {
		return err
	}
	for _, e := range entries {
		if !e.Remove(id) {
			continue
		}
		if err := p.write(toKey(kindEntry, e.ID), e); err != nil {
			return fmt.Errorf("store: strip habit from %s: %w", e.ID, err)
		}
	}
	return p.d.Erase(key)
}

func (p *persistence) DeleteEntry(id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	key := toKey(kindEntry, id)
	if !p.d.Has(key) {
		return fmt.Errorf("%w: entry %s", ErrNotFound, id)
	}
	return p.d.Erase(key)
}

func (p *persistence) Close() error {
	return nil
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.SplitN(s, keySep, 2)
	if len(parts) != 2 {
		return &diskv.PathKey{FileName: s}
	}
	return &diskv.PathKey{
		Path:     []string{parts[0]},
		FileName: parts[1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) == 0 {
		return pathKey.FileName
	}
	return strings.Join(pathKey.Path, "/") + keySep + pathKey.FileName
}

// toKey makes `kind:id`.
func toKey(kind, id string) string {
	return kind + keySep + id
}

func idFromKey(key string) string {
	return keyToPathTransform(key).FileName
}
