package calendar

import (
	"testing"
	"time"
)

var utcMonday = Config{Location: time.UTC, FirstWeekday: time.Monday}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStartOfDayIgnoresTime(t *testing.T) {
	in := time.Date(2025, 3, 9, 23, 59, 59, 0, time.UTC)
	if got := utcMonday.StartOfDay(in); !got.Equal(day(2025, 3, 9)) {
		t.Fatalf("expected midnight, got %v", got)
	}
	if !utcMonday.IsSameDay(in, day(2025, 3, 9)) {
		t.Fatalf("expected same day")
	}
	if utcMonday.IsSameDay(in, day(2025, 3, 10)) {
		t.Fatalf("expected different days")
	}
}

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		in   time.Time
		want time.Time
	}{
		{"monday itself", utcMonday, day(2025, 1, 6), day(2025, 1, 6)},
		{"sunday belongs to previous monday", utcMonday, day(2025, 1, 12), day(2025, 1, 6)},
		{"across year", utcMonday, day(2025, 1, 1), day(2024, 12, 30)},
		{"sunday first", Config{Location: time.UTC, FirstWeekday: time.Sunday}, day(2025, 1, 8), day(2025, 1, 5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.WeekStart(tt.in); !got.Equal(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestDaysInclusive(t *testing.T) {
	days := utcMonday.Days(day(2024, 2, 27), day(2024, 3, 2))
	if len(days) != 5 {
		t.Fatalf("expected 5 days across leap day, got %d", len(days))
	}
	if !days[2].Equal(day(2024, 2, 29)) {
		t.Fatalf("expected leap day at index 2, got %v", days[2])
	}
	if got := utcMonday.Days(day(2024, 3, 2), day(2024, 3, 1)); len(got) != 0 {
		t.Fatalf("expected empty range, got %d days", len(got))
	}
}

func TestDaysBetweenAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	cfg := Config{Location: loc, FirstWeekday: time.Monday}
	a := time.Date(2025, 3, 29, 12, 0, 0, 0, loc)
	b := time.Date(2025, 3, 31, 1, 0, 0, 0, loc)
	if got := cfg.DaysBetween(a, b); got != 2 {
		t.Fatalf("expected 2 days, got %d", got)
	}
	if got := len(cfg.Days(a, b)); got != 3 {
		t.Fatalf("expected 3 days, got %d", got)
	}
}

func TestPeriodRange(t *testing.T) {
	today := day(2025, 1, 15) // Wednesday
	created := day(2024, 11, 20)
	tests := []struct {
		name       string
		period     Period
		offset     int
		start, end time.Time
	}{
		{"current week", Week, 0, day(2025, 1, 13), day(2025, 1, 19)},
		{"previous week", Week, 1, day(2025, 1, 6), day(2025, 1, 12)},
		{"next week", Week, -1, day(2025, 1, 20), day(2025, 1, 26)},
		{"current month", Month, 0, day(2025, 1, 1), day(2025, 1, 31)},
		{"previous month", Month, 1, day(2024, 12, 1), day(2024, 12, 31)},
		{"february", Month, -1, day(2025, 2, 1), day(2025, 2, 28)},
		{"current year", Year, 0, day(2025, 1, 1), day(2025, 12, 31)},
		{"previous year", Year, 1, day(2024, 1, 1), day(2024, 12, 31)},
		{"all time ignores offset", AllTime, 7, created, today},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := utcMonday.PeriodRange(tt.period, tt.offset, created, today)
			if !start.Equal(tt.start) || !end.Equal(tt.end) {
				t.Fatalf("expected %v..%v, got %v..%v", tt.start, tt.end, start, end)
			}
		})
	}
}

func TestMonthGrid(t *testing.T) {
	// February 2025 starts on a Saturday.
	grid := utcMonday.MonthGrid(day(2025, 2, 14))
	if len(grid)%7 != 0 {
		t.Fatalf("grid length %d is not a multiple of 7", len(grid))
	}
	for i := 0; i < 5; i++ {
		if !grid[i].IsZero() {
			t.Fatalf("expected blank lead slot at %d, got %v", i, grid[i])
		}
	}
	if !grid[5].Equal(day(2025, 2, 1)) {
		t.Fatalf("expected Feb 1 in the Saturday column, got %v", grid[5])
	}
	count := 0
	for _, d := range grid {
		if !d.IsZero() {
			count++
		}
	}
	if count != 28 {
		t.Fatalf("expected 28 days, got %d", count)
	}
	if len(grid) != 35 {
		t.Fatalf("expected 35 slots, got %d", len(grid))
	}
}

func TestMonthGridStartsOnFirstWeekday(t *testing.T) {
	// September 2025 starts on a Monday: no lead padding.
	grid := utcMonday.MonthGrid(day(2025, 9, 30))
	if !grid[0].Equal(day(2025, 9, 1)) {
		t.Fatalf("expected Sep 1 first, got %v", grid[0])
	}
}

func TestMonthAt(t *testing.T) {
	epoch := day(2024, 12, 1)
	if got := utcMonday.MonthAt(epoch, 2); !got.Equal(day(2025, 2, 1)) {
		t.Fatalf("expected Feb 2025, got %v", got)
	}
}

func TestParsePeriod(t *testing.T) {
	for in, want := range map[string]Period{"": Week, "M": Month, "yearly": Year, "all-time": AllTime} {
		got, err := ParsePeriod(in)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", in, err)
		}
		if got != want {
			t.Fatalf("%q: expected %s, got %s", in, want, got)
		}
	}
	if _, err := ParsePeriod("fortnight"); err == nil {
		t.Fatalf("expected error for unknown period")
	}
}

func TestWeekdayHeader(t *testing.T) {
	got := utcMonday.WeekdayHeader()
	want := []string{"M", "T", "W", "T", "F", "S", "S"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
