package app

import (
	"context"
	"fmt"
	"time"

	"tableflip.dev/arc/pkg/calendar"
	"tableflip.dev/arc/pkg/habit"
	"tableflip.dev/arc/pkg/series"
	"tableflip.dev/arc/pkg/stats"
)

// HabitReport is a habit's statistics for one period window.
type HabitReport struct {
	Habit  *habit.Habit    `json:"habit" yaml:"habit"`
	Period calendar.Period `json:"period" yaml:"period"`
	Offset int             `json:"offset" yaml:"offset"`
	Start  time.Time       `json:"start" yaml:"start"`
	End    time.Time       `json:"end" yaml:"end"`
	Label  string          `json:"label" yaml:"label"`

	Points []series.Point `json:"points" yaml:"points"`
	Axis   []string       `json:"axis" yaml:"axis"`
	// Completion covers the window; Lifetime covers every entry.
	Completion float64 `json:"completion" yaml:"completion"`
	Lifetime   float64 `json:"lifetime" yaml:"lifetime"`

	Current stats.Streak `json:"current_streak" yaml:"current_streak"`
	Best    stats.Streak `json:"best_streak" yaml:"best_streak"`
}

func (s *Service) habitReport(snap *snapshot, h *habit.Habit, p calendar.Period, offset int) *HabitReport {
	today := s.today()
	start, end := s.Calendar.PeriodRange(p, offset, h.Created, today)
	points := series.Build(s.Calendar, h, p, offset, snap.entries, today)
	return &HabitReport{
		Habit:      h,
		Period:     p,
		Offset:     offset,
		Start:      start,
		End:        end,
		Label:      series.RangeLabel(p, start, end),
		Points:     points,
		Axis:       series.AxisLabels(points),
		Completion: series.Completion(points),
		Lifetime:   stats.HabitCompletion(s.Calendar, h, snap.entries),
		Current:    stats.CurrentStreak(s.Calendar, h, snap.entries, today),
		Best:       stats.BestStreak(s.Calendar, h, snap.entries, today),
	}
}

// Report builds the report for one habit. Offset counts periods back from the
// current one.
func (s *Service) Report(ctx context.Context, ref string, p calendar.Period, offset int) (*HabitReport, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("app: unknown period %q", p)
	}
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	h, ok := habit.Find(snap.habits, ref)
	if !ok {
		return nil, notFound(snap.habits, ref)
	}
	return s.habitReport(snap, h, p, offset), nil
}

// Overview summarises every habit for one period window.
type Overview struct {
	Today   time.Time       `json:"today" yaml:"today"`
	Period  calendar.Period `json:"period" yaml:"period"`
	Offset  int             `json:"offset" yaml:"offset"`
	Overall float64         `json:"overall" yaml:"overall"`
	// TodayProgress is nil when no habit is active today or today has no
	// entry yet.
	TodayProgress *float64       `json:"today_progress,omitempty" yaml:"today_progress,omitempty"`
	Habits        []*HabitReport `json:"habits" yaml:"habits"`
}

// Overview reports all habits in creation order.
func (s *Service) Overview(ctx context.Context, p calendar.Period, offset int) (*Overview, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("app: unknown period %q", p)
	}
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	today := s.today()
	out := &Overview{
		Today:   today,
		Period:  p,
		Offset:  offset,
		Overall: stats.Overall(s.Calendar, snap.habits, snap.entries),
		Habits:  make([]*HabitReport, 0, len(snap.habits)),
	}
	if e, ok := habit.OnDay(s.Calendar, snap.entries, today); ok {
		if progress, tracked := stats.DayProgress(s.Calendar, e, snap.habits); tracked {
			out.TodayProgress = &progress
		}
	}
	for _, h := range snap.habits {
		out.Habits = append(out.Habits, s.habitReport(snap, h, p, offset))
	}
	return out, nil
}

// Cell is one slot of a month grid. Padding slots have a zero Date.
type Cell struct {
	Date     time.Time `json:"date" yaml:"date"`
	Progress float64   `json:"progress" yaml:"progress"`
	Tracked  bool      `json:"tracked" yaml:"tracked"`
	AllDone  bool      `json:"all_done" yaml:"all_done"`
	Today    bool      `json:"today" yaml:"today"`
}

// Month is a calendar page with per-day progress.
type Month struct {
	Start  time.Time `json:"start" yaml:"start"`
	Header []string  `json:"header" yaml:"header"`
	Cells  []Cell    `json:"cells" yaml:"cells"`
}

// Month builds the grid for the month containing month.
func (s *Service) Month(ctx context.Context, month time.Time) (*Month, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	today := s.today()
	byDay := habit.ByDay(s.Calendar, snap.entries)

	grid := s.Calendar.MonthGrid(month)
	out := &Month{
		Start:  s.Calendar.MonthStart(month),
		Header: s.Calendar.WeekdayHeader(),
		Cells:  make([]Cell, 0, len(grid)),
	}
	for _, d := range grid {
		c := Cell{Date: d}
		if !d.IsZero() {
			c.Today = d.Equal(today)
			if e, ok := byDay[d]; ok {
				c.Progress, c.Tracked = stats.DayProgress(s.Calendar, e, snap.habits)
				c.AllDone = c.Tracked && c.Progress == 1
			}
		}
		out.Cells = append(out.Cells, c)
	}
	return out, nil
}

// MonthAt resolves a month offset from the current month, positive values
// going back in time.
func (s *Service) MonthAt(offset int) time.Time {
	return s.Calendar.MonthAt(s.today(), -offset)
}

// Snapshot is a full dump of the store.
type Snapshot struct {
	Exported time.Time      `json:"exported" yaml:"exported" toml:"exported"`
	Habits   []*habit.Habit `json:"habits" yaml:"habits" toml:"habits"`
	Entries  []*habit.Entry `json:"entries" yaml:"entries" toml:"entries"`
}

// Export returns every habit and entry.
func (s *Service) Export(ctx context.Context) (*Snapshot, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	clock := s.Clock
	if clock == nil {
		clock = calendar.SystemClock{}
	}
	return &Snapshot{
		Exported: clock.Now(),
		Habits:   snap.habits,
		Entries:  snap.entries,
	}, nil
}
