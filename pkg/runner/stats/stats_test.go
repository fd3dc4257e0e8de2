package stats

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"tableflip.dev/arc/pkg/app"
	"tableflip.dev/arc/pkg/calendar"
	"tableflip.dev/arc/pkg/store"
)

func newApp(t *testing.T, now time.Time) *app.Service {
	t.Helper()
	cfg, err := store.NewFileConfig(t.TempDir(), string(store.DriverDiskv), "monday", "UTC")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	p, err := store.Load(cfg, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	t.Cleanup(func() { _ = p.Close() })
	return &app.Service{
		Persistence: p,
		Calendar:    cfg.Calendar(),
		Clock:       calendar.FixedClock(now),
	}
}

func TestStatsHabit(t *testing.T) {
	ctx := context.Background()
	svc := newApp(t, time.Date(2025, 1, 3, 9, 0, 0, 0, time.UTC))
	if _, err := svc.AddHabit(ctx, "Read", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("add: %v", err)
	}
	for _, d := range []int{2, 3} {
		if _, _, err := svc.Toggle(ctx, "Read", time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC)); err != nil {
			t.Fatalf("toggle %d: %v", d, err)
		}
	}

	var buf bytes.Buffer
	n := Stats{App: svc, Habit: "Read", Period: calendar.Week, JSON: true, Out: &buf}
	if err := n.Do(ctx); err != nil {
		t.Fatalf("stats: %v", err)
	}

	var got app.HabitReport
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v\n%s", err, buf.String())
	}
	if got.Current.Count != 2 || got.Best.Count != 2 || len(got.Points) != 7 {
		t.Fatalf("unexpected report:\n%s", buf.String())
	}
}

func TestStatsOverview(t *testing.T) {
	ctx := context.Background()
	svc := newApp(t, time.Date(2025, 1, 3, 9, 0, 0, 0, time.UTC))
	if _, err := svc.AddHabit(ctx, "Read", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("add: %v", err)
	}

	var buf bytes.Buffer
	n := Stats{App: svc, Period: calendar.AllTime, JSON: true, Out: &buf}
	if err := n.Do(ctx); err != nil {
		t.Fatalf("stats: %v", err)
	}
	var got app.Overview
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v\n%s", err, buf.String())
	}
	if len(got.Habits) != 1 || got.Overall != 0 {
		t.Fatalf("unexpected overview:\n%s", buf.String())
	}
}
