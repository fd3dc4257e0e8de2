package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerListHabitsTool(srv, svc)
	registerAddHabitTool(srv, svc)
	registerDeleteHabitTool(srv, svc)
	registerToggleHabitTool(srv, svc)
	registerHabitStatsTool(srv, svc)
	registerDayProgressTool(srv, svc)
	registerMonthCalendarTool(srv, svc)
}

func registerListHabitsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_habits",
		mcp.WithDescription("List every tracked habit."),
	)

	srv.AddTool(tool, func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		habits, err := svc.ListHabits(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"habits": habits,
			"count":  len(habits),
		})
	})
}

func registerAddHabitTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_habit",
		mcp.WithDescription("Start tracking a new habit."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Habit name, unique ignoring case."),
		),
		mcp.WithString("since",
			mcp.Description("First tracked day such as 2025-01-31, yesterday or 3d. Defaults to today."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Name  string `json:"name"`
			Since string `json:"since"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, err := svc.AddHabit(ctx, args.Name, args.Since)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerDeleteHabitTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_habit",
		mcp.WithDescription("Stop tracking a habit and erase its history."),
		mcp.WithString("habit",
			mcp.Required(),
			mcp.Description("Habit id, id prefix or name."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ref, err := request.RequireString("habit")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, err := svc.DeleteHabit(ctx, ref)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerToggleHabitTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"toggle_habit",
		mcp.WithDescription("Flip a habit between done and not done for a day."),
		mcp.WithString("habit",
			mcp.Required(),
			mcp.Description("Habit id, id prefix or name."),
		),
		mcp.WithString("day",
			mcp.Description("Day such as 2025-01-31, yesterday or 3d. Defaults to today."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Habit string `json:"habit"`
			Day   string `json:"day"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, err := svc.Toggle(ctx, args.Habit, args.Day)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerHabitStatsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"habit_stats",
		mcp.WithDescription("Completion, streaks and the day-by-day series for a habit, or for every habit when none is given."),
		mcp.WithString("habit",
			mcp.Description("Habit id, id prefix or name. Omit for all habits."),
		),
		mcp.WithString("period",
			mcp.Description("Window to report."),
			mcp.Enum("week", "month", "year", "all"),
		),
		mcp.WithNumber("offset",
			mcp.Description("Number of periods back from the current one."),
			mcp.Min(0),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Habit  string `json:"habit"`
			Period string `json:"period"`
			Offset int    `json:"offset"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		report, err := svc.HabitStats(ctx, args.Habit, args.Period, args.Offset)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(report)
	})
}

func registerDayProgressTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"day_progress",
		mcp.WithDescription("The habit checklist and completion ratio for a day."),
		mcp.WithString("day",
			mcp.Description("Day such as 2025-01-31, yesterday or 3d. Defaults to today."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dto, err := svc.DayProgress(ctx, request.GetString("day", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerMonthCalendarTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"month_calendar",
		mcp.WithDescription("A month grid with the completion ratio of every day."),
		mcp.WithString("month",
			mcp.Description("Month such as 2025-02 or February 2025."),
		),
		mcp.WithNumber("offset",
			mcp.Description("Months back from the current month, used when month is omitted."),
			mcp.Min(0),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		month, err := svc.MonthCalendar(ctx, request.GetString("month", ""), request.GetInt("offset", 0))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(month)
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
