package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolGetWorkout = mcp.NewTool("get_workout",
	mcp.WithDescription("Get the workout scheduled on a date: plan title and type, program week and phase, every section with exercise prescriptions for that week, completion flags, and the day's completion percentage."),
	mcp.WithString("date", mcp.Description("Date (YYYY-MM-DD). Defaults to today.")),
)

var toolToggleExercise = mcp.NewTool("toggle_exercise",
	mcp.WithDescription("Flip the completion of one exercise on a date. Returns the new state and the day's updated progress."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exact exercise name as listed by get_workout (e.g. 'A2: Push Ups')")),
	mcp.WithString("date", mcp.Description("Date (YYYY-MM-DD). Defaults to today.")),
)

var toolGetSchedule = mcp.NewTool("get_schedule",
	mcp.WithDescription("Get the full 8-week schedule: each week's date range, phase, completion percentage, and the workout assigned to each day."),
)

var toolGetWeekProgress = mcp.NewTool("get_week_progress",
	mcp.WithDescription("Get completion totals for one program week and each of its seven days."),
	mcp.WithNumber("week", mcp.Required(), mcp.Description("Program week, 1 to 8")),
)

var toolSetStartDate = mcp.NewTool("set_start_date",
	mcp.WithDescription("Move the program start date. Every scheduled workout moves with it; recorded completions stay on their calendar dates."),
	mcp.WithString("date", mcp.Required(), mcp.Description("New start date (YYYY-MM-DD)")),
)

// --- Tool handlers ---

func (h *handlers) getWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	day, err := h.ds.Daily(ctx, req.GetString("date", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date: " + err.Error()), nil
	}
	return jsonResult(day)
}

func (h *handlers) toggleExercise(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercise, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}

	res, err := h.ds.ToggleExercise(ctx, req.GetString("date", ""), exercise)
	if err != nil {
		h.log.Warn("mcp toggle_exercise", "exercise", exercise, "error", err)
		return mcp.NewToolResultError("toggle failed: " + err.Error()), nil
	}
	return jsonResult(res)
}

func (h *handlers) getSchedule(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	v, err := h.ds.Schedule(ctx)
	if err != nil {
		h.log.Error("mcp get_schedule", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(v)
}

func (h *handlers) getWeekProgress(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	week, err := req.RequireInt("week")
	if err != nil {
		return mcp.NewToolResultError("week parameter is required"), nil
	}

	w, err := h.ds.Week(ctx, week)
	if err != nil {
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(w)
}

func (h *handlers) setStartDate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError("date parameter is required"), nil
	}

	v, err := h.ds.SetStartDate(ctx, date)
	if err != nil {
		h.log.Warn("mcp set_start_date", "date", date, "error", err)
		return mcp.NewToolResultError("update failed: " + err.Error()), nil
	}
	return jsonResult(v)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
