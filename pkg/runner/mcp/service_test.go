package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"tableflip.dev/arc/pkg/app"
	"tableflip.dev/arc/pkg/calendar"
	"tableflip.dev/arc/pkg/store"
)

func newTestService(t *testing.T, today time.Time) *Service {
	t.Helper()
	cfg, err := store.NewFileConfig(t.TempDir(), string(store.DriverDiskv), "monday", "UTC")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	p, err := store.Load(cfg, nil)
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	t.Cleanup(func() { _ = p.Close() })
	return NewService(&app.Service{
		Persistence: p,
		Calendar:    cfg.Calendar(),
		Clock:       calendar.FixedClock(today),
	})
}

func TestServiceAddAndListHabits(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC))

	dto, err := svc.AddHabit(ctx, "Read", "2025-01-08")
	if err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}
	if dto.Name != "Read" || dto.Created != "2025-01-08" || dto.ID == "" {
		t.Fatalf("unexpected habit %+v", dto)
	}

	habits, err := svc.ListHabits(ctx)
	if err != nil {
		t.Fatalf("ListHabits failed: %v", err)
	}
	if len(habits) != 1 || habits[0].ID != dto.ID {
		t.Fatalf("unexpected habits %+v", habits)
	}
}

func TestServiceToggleAndProgress(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC))
	if _, err := svc.AddHabit(ctx, "Read", "2025-01-08"); err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}
	if _, err := svc.AddHabit(ctx, "Run", "2025-01-08"); err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}

	day, err := svc.Toggle(ctx, "read", "yesterday")
	if err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if day.Date != "2025-01-09" || day.Progress != 0.5 || !day.Habits[0].Done {
		t.Fatalf("unexpected day %+v", day)
	}

	today, err := svc.DayProgress(ctx, "")
	if err != nil {
		t.Fatalf("DayProgress failed: %v", err)
	}
	if today.Date != "2025-01-10" || today.Progress != 0 || len(today.Habits) != 2 {
		t.Fatalf("unexpected today %+v", today)
	}
}

func TestServiceHabitStats(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC))
	if _, err := svc.AddHabit(ctx, "Read", "2025-01-08"); err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}
	for _, d := range []string{"2025-01-09", "2025-01-10"} {
		if _, err := svc.Toggle(ctx, "Read", d); err != nil {
			t.Fatalf("Toggle %s failed: %v", d, err)
		}
	}

	out, err := svc.HabitStats(ctx, "Read", "week", 0)
	if err != nil {
		t.Fatalf("HabitStats failed: %v", err)
	}
	report, ok := out.(*app.HabitReport)
	if !ok {
		t.Fatalf("expected a habit report, got %T", out)
	}
	if report.Current.Count != 2 || report.Best.Count != 2 || !report.Best.Ongoing {
		t.Fatalf("unexpected streaks %+v %+v", report.Current, report.Best)
	}

	all, err := svc.HabitStats(ctx, "", "all", 0)
	if err != nil {
		t.Fatalf("HabitStats failed: %v", err)
	}
	if _, ok := all.(*app.Overview); !ok {
		t.Fatalf("expected an overview, got %T", all)
	}

	if _, err := svc.HabitStats(ctx, "Read", "week", -1); err == nil {
		t.Fatal("expected error for negative offset")
	}
	if _, err := svc.HabitStats(ctx, "Swim", "week", 0); !errors.Is(err, app.ErrHabitNotFound) {
		t.Fatalf("expected ErrHabitNotFound, got %v", err)
	}
}

func TestServiceMonthCalendar(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))

	m, err := svc.MonthCalendar(ctx, "", 1)
	if err != nil {
		t.Fatalf("MonthCalendar failed: %v", err)
	}
	if m.Start.Month() != time.February {
		t.Fatalf("expected February, got %v", m.Start)
	}

	m, err = svc.MonthCalendar(ctx, "2024-12", 0)
	if err != nil {
		t.Fatalf("MonthCalendar failed: %v", err)
	}
	if m.Start.Year() != 2024 || m.Start.Month() != time.December {
		t.Fatalf("expected December 2024, got %v", m.Start)
	}
}

func TestServiceDeleteHabit(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC))
	dto, err := svc.AddHabit(ctx, "Read", "")
	if err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}
	if _, err := svc.DeleteHabit(ctx, dto.ID[:6]); err != nil {
		t.Fatalf("DeleteHabit failed: %v", err)
	}
	habits, _ := svc.ListHabits(ctx)
	if len(habits) != 0 {
		t.Fatalf("expected no habits, got %+v", habits)
	}
}

func TestServiceRequiresApp(t *testing.T) {
	svc := NewService(nil)
	if _, err := svc.ListHabits(context.Background()); err == nil {
		t.Fatal("expected error without app service")
	}
}
