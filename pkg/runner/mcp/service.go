// Package mcp provides the Model Context Protocol server integration for arc.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/arc/pkg/app"
	"tableflip.dev/arc/pkg/calendar"
	"tableflip.dev/arc/pkg/habit"
	"tableflip.dev/arc/pkg/timeutil"
)

// Service adapts app.Service to transport-friendly DTOs shared by the MCP
// tools and resources.
type Service struct {
	App *app.Service
}

// HabitDTO is a transport-friendly projection of a habit.
type HabitDTO struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Created string `json:"created"`
}

// HabitStatusDTO is a habit's status on one day.
type HabitStatusDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Done bool   `json:"done"`
}

// DayDTO is a day's checklist.
type DayDTO struct {
	Date     string           `json:"date"`
	Tracked  bool             `json:"tracked"`
	Progress float64          `json:"progress"`
	Habits   []HabitStatusDTO `json:"habits"`
}

// NewService builds a service wrapper around the application service.
func NewService(a *app.Service) *Service {
	return &Service{App: a}
}

func (s *Service) ready() error {
	if s.App == nil {
		return errors.New("habit service is not configured")
	}
	return nil
}

func toHabitDTO(h *habit.Habit) HabitDTO {
	return HabitDTO{ID: h.ID, Name: h.Name, Created: timeutil.FormatDay(h.Created)}
}

func toDayDTO(d *app.Day) DayDTO {
	out := DayDTO{
		Date:     timeutil.FormatDay(d.Date),
		Tracked:  d.Tracked,
		Progress: d.Progress,
		Habits:   make([]HabitStatusDTO, 0, len(d.Habits)),
	}
	for _, h := range d.Habits {
		out.Habits = append(out.Habits, HabitStatusDTO{
			ID:   h.ID,
			Name: h.Name,
			Done: d.Entry.Statuses.Done(h.ID),
		})
	}
	return out
}

// ListHabits returns every habit in creation order.
func (s *Service) ListHabits(ctx context.Context) ([]HabitDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	habits, err := s.App.Habits(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]HabitDTO, 0, len(habits))
	for _, h := range habits {
		out = append(out, toHabitDTO(h))
	}
	return out, nil
}

// AddHabit creates a habit. since accepts any day reference; empty is today.
func (s *Service) AddHabit(ctx context.Context, name, since string) (HabitDTO, error) {
	if err := s.ready(); err != nil {
		return HabitDTO{}, err
	}
	created, err := timeutil.ParseDay(s.App.Calendar, since, s.App.Today())
	if err != nil {
		return HabitDTO{}, err
	}
	h, err := s.App.AddHabit(ctx, name, created)
	if err != nil {
		return HabitDTO{}, err
	}
	return toHabitDTO(h), nil
}

// DeleteHabit removes a habit by id or name.
func (s *Service) DeleteHabit(ctx context.Context, ref string) (HabitDTO, error) {
	if err := s.ready(); err != nil {
		return HabitDTO{}, err
	}
	h, err := s.App.DeleteHabit(ctx, ref)
	if err != nil {
		return HabitDTO{}, err
	}
	return toHabitDTO(h), nil
}

// Toggle flips a habit on the given day, today when empty.
func (s *Service) Toggle(ctx context.Context, ref, day string) (DayDTO, error) {
	if err := s.ready(); err != nil {
		return DayDTO{}, err
	}
	on, err := timeutil.ParseDay(s.App.Calendar, day, s.App.Today())
	if err != nil {
		return DayDTO{}, err
	}
	if _, err := s.App.Backfill(ctx); err != nil {
		return DayDTO{}, err
	}
	d, _, err := s.App.Toggle(ctx, ref, on)
	if err != nil {
		return DayDTO{}, err
	}
	return toDayDTO(d), nil
}

// DayProgress returns the checklist for a day, today when empty.
func (s *Service) DayProgress(ctx context.Context, day string) (DayDTO, error) {
	if err := s.ready(); err != nil {
		return DayDTO{}, err
	}
	on, err := timeutil.ParseDay(s.App.Calendar, day, s.App.Today())
	if err != nil {
		return DayDTO{}, err
	}
	if _, err := s.App.Backfill(ctx); err != nil {
		return DayDTO{}, err
	}
	d, err := s.App.OpenDay(ctx, on)
	if err != nil {
		return DayDTO{}, err
	}
	return toDayDTO(d), nil
}

// HabitStats reports one habit, or every habit when ref is empty.
func (s *Service) HabitStats(ctx context.Context, ref, period string, offset int) (any, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	p, err := calendar.ParsePeriod(period)
	if err != nil {
		return nil, err
	}
	if offset < 0 {
		return nil, fmt.Errorf("offset must not be negative, got %d", offset)
	}
	if strings.TrimSpace(ref) == "" {
		return s.App.Overview(ctx, p, offset)
	}
	return s.App.Report(ctx, ref, p, offset)
}

// MonthCalendar returns the month grid. month accepts "2025-02" style
// references; offset counts months back and is used when month is empty.
func (s *Service) MonthCalendar(ctx context.Context, month string, offset int) (*app.Month, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	at := s.App.MonthAt(offset)
	if strings.TrimSpace(month) != "" {
		var err error
		at, err = timeutil.ParseMonth(s.App.Calendar, month, s.App.Today())
		if err != nil {
			return nil, err
		}
	}
	return s.App.Month(ctx, at)
}
