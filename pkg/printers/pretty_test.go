package printers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/arc/pkg/app"
	"tableflip.dev/arc/pkg/calendar"
	"tableflip.dev/arc/pkg/habit"
	"tableflip.dev/arc/pkg/series"
)

func init() {
	color.NoColor = true
}

func TestAxis(t *testing.T) {
	tests := []struct {
		labels []string
		cell   int
		want   string
	}{
		{labels: []string{"6", "7", "8"}, cell: 3, want: "6  7  8"},
		{labels: []string{"1", "", "", "", "", "6", "", "8"}, cell: 1, want: "1    6 8"},
		// "31" would collide with "30".
		{labels: []string{"30", "31"}, cell: 1, want: "30"},
		{labels: []string{"", ""}, cell: 1, want: ""},
	}
	for _, tt := range tests {
		if got := Axis(tt.labels, tt.cell); got != tt.want {
			t.Fatalf("Axis(%q, %d) = %q, want %q", tt.labels, tt.cell, got, tt.want)
		}
	}
}

func TestMark(t *testing.T) {
	if Mark(series.Point{Active: true, Completed: true}) != "■" {
		t.Fatal("completed mark")
	}
	if Mark(series.Point{Active: true}) != "□" {
		t.Fatal("missed mark")
	}
	if Mark(series.Point{}) != "·" {
		t.Fatal("inactive mark")
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(0.5); got != " 50%" {
		t.Fatalf("unexpected %q", got)
	}
	if got := Percent(1); got != "100%" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestMonthLayout(t *testing.T) {
	cal := calendar.Config{Location: time.UTC, FirstWeekday: time.Monday}
	first := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	m := &app.Month{Start: first, Header: cal.WeekdayHeader()}
	for _, d := range cal.MonthGrid(first) {
		m.Cells = append(m.Cells, app.Cell{Date: d})
	}

	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	pp.Month(m)

	lines := strings.Split(buf.String(), "\n")
	if !strings.Contains(lines[0], "February 2025") {
		t.Fatalf("unexpected title %q", lines[0])
	}
	if lines[1] != " M  T  W  T  F  S  S " {
		t.Fatalf("unexpected header %q", lines[1])
	}
	if lines[2] != "                1  2 " {
		t.Fatalf("unexpected first week %q", lines[2])
	}
}

func TestDayChecklist(t *testing.T) {
	cal := calendar.Config{Location: time.UTC, FirstWeekday: time.Monday}
	today := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	read, _ := habit.New("Read", today)
	run, _ := habit.New("Run", today)
	e := habit.NewEntry(cal, today, read, run)
	habit.Toggle(e, read.ID)

	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf, Calendar: cal}
	pp.Day(&app.Day{Date: today, Entry: e, Habits: []*habit.Habit{read, run}, Progress: 0.5, Tracked: true})

	out := buf.String()
	for _, want := range []string{"Thursday, January 2 2025", "[x] Read", "[ ] Run", " 50%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestEntriesIgnoreUnknownStatuses(t *testing.T) {
	cal := calendar.Config{Location: time.UTC, FirstWeekday: time.Monday}
	d := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	read, _ := habit.New("Read", d)
	e := &habit.Entry{ID: "e1", Date: d, Statuses: habit.Statuses{read.ID: false, "gone1": true, "gone2": true}}

	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf, Calendar: cal}
	pp.Entries([]*habit.Habit{read}, e)

	out := buf.String()
	if !strings.Contains(out, "0/1") || strings.Contains(out, "2/3") {
		t.Fatalf("expected only known habits to count:\n%s", out)
	}
}

func TestEncode(t *testing.T) {
	v := map[string]int{"count": 2}

	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	if err := pp.Encode(FormatYAML, v); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if buf.String() != "count: 2\n" {
		t.Fatalf("unexpected yaml %q", buf.String())
	}

	buf.Reset()
	if err := pp.JSON(v); err != nil {
		t.Fatalf("json: %v", err)
	}
	if buf.String() != "{\n  \"count\": 2\n}\n" {
		t.Fatalf("unexpected json %q", buf.String())
	}

	buf.Reset()
	if err := pp.Encode(FormatTOML, v); err != nil {
		t.Fatalf("toml: %v", err)
	}
	if buf.String() != "count = 2\n" {
		t.Fatalf("unexpected toml %q", buf.String())
	}

	if err := pp.Encode(Format("xml"), v); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
