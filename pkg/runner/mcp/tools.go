package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/daybook/pkg/task"
)

func statusEnum() []string {
	all := task.AllStatuses()
	out := make([]string, 0, len(all))
	for _, s := range all {
		out = append(out, string(s))
	}
	return out
}

func registerTools(srv *server.MCPServer, svc *Service) {
	registerAddTaskTool(srv, svc)
	registerToggleTaskTool(srv, svc)
	registerSetTaskStatusTool(srv, svc)
	registerGetTaskTool(srv, svc)
	registerListBucketsTool(srv, svc)
	registerBoardTool(srv, svc)
	registerLogActivityTool(srv, svc)
	registerListActivityTool(srv, svc)
	registerStreakTool(srv, svc)
	registerStatsTool(srv, svc)
	registerBudgetTool(srv, svc)
}

func registerAddTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_task",
		mcp.WithDescription("Create a new task dated today."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Title of the task."),
		),
		mcp.WithString("status",
			mcp.Description("Initial workflow status, todo when omitted."),
			mcp.Enum(statusEnum()...),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Title  string `json:"title"`
			Status string `json:"status"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, err := svc.AddTask(ctx, args.Title, args.Status)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerToggleTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"toggle_task",
		mcp.WithDescription("Toggle completion of a task. A completed task becomes todo, anything else becomes done."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task identifier to toggle."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, err := svc.ToggleTask(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerSetTaskStatusTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"set_task_status",
		mcp.WithDescription("Move a task to a workflow status; completion follows the status."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task identifier to move."),
		),
		mcp.WithString("status",
			mcp.Required(),
			mcp.Description("Target workflow status."),
			mcp.Enum(statusEnum()...),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		status, err := request.RequireString("status")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, err := svc.SetTaskStatus(ctx, id, status)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerGetTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_task",
		mcp.WithDescription("Fetch a single task by identifier."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task identifier to fetch."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, err := svc.TaskByID(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerListBucketsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_buckets",
		mcp.WithDescription("List tasks grouped into today, yesterday and earlier. Unfinished tasks from past days stay in today."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		bs, err := svc.Buckets(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(bs)
	})
}

func registerBoardTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"board",
		mcp.WithDescription("List tasks grouped by workflow status."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		columns, err := svc.Board(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"columns": columns,
		})
	})
}

func registerLogActivityTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"log_activity",
		mcp.WithDescription("Log an amount for a tracker such as food, meditation, exercise or expense. Mood takes a whole score from 1 to 5."),
		mcp.WithString("kind",
			mcp.Required(),
			mcp.Description("Tracker name."),
		),
		mcp.WithNumber("value",
			mcp.Required(),
			mcp.Description("Per-unit amount, for example calories or minutes."),
			mcp.Min(0),
		),
		mcp.WithNumber("quantity",
			mcp.Description("Number of units; treated as 1 when omitted."),
			mcp.Min(0),
		),
		mcp.WithString("note",
			mcp.Description("Optional note."),
		),
		mcp.WithString("day",
			mcp.Description("Day in YYYY-MM-DD form, today when omitted."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Kind     string  `json:"kind"`
			Value    float64 `json:"value"`
			Quantity float64 `json:"quantity"`
			Note     string  `json:"note"`
			Day      string  `json:"day"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		r, err := svc.LogActivity(ctx, LogActivityOptions{
			Kind:     args.Kind,
			Value:    args.Value,
			Quantity: args.Quantity,
			Note:     args.Note,
			Day:      args.Day,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(r)
	})
}

func registerListActivityTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_activity",
		mcp.WithDescription("List logged records for a tracker, optionally bounded by day."),
		mcp.WithString("kind",
			mcp.Required(),
			mcp.Description("Tracker name."),
		),
		mcp.WithString("since",
			mcp.Description("First day to include, YYYY-MM-DD."),
		),
		mcp.WithString("until",
			mcp.Description("Last day to include, YYYY-MM-DD."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		kind, err := request.RequireString("kind")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		since := request.GetString("since", "")
		until := request.GetString("until", "")

		records, err := svc.Activity(ctx, kind, since, until)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"kind":    kind,
			"count":   len(records),
			"records": records,
		})
	})
}

func registerStreakTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"streak",
		mcp.WithDescription("Current and longest run of consecutive active days for a tracker."),
		mcp.WithString("kind",
			mcp.Required(),
			mcp.Description("Tracker name."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		kind, err := request.RequireString("kind")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		r, err := svc.Streak(ctx, kind)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(r)
	})
}

func registerStatsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"stats",
		mcp.WithDescription("Totals and averages for a tracker."),
		mcp.WithString("kind",
			mcp.Required(),
			mcp.Description("Tracker name."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		kind, err := request.RequireString("kind")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		sum, err := svc.Stats(ctx, kind)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(sum)
	})
}

func registerBudgetTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"budget",
		mcp.WithDescription("Total expense spending against the budget, with the remaining balance and percent used."),
		mcp.WithNumber("total",
			mcp.Description("Budget to measure against; the saved budget when omitted."),
			mcp.Min(0),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Total *float64 `json:"total"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		b, err := svc.Budget(ctx, args.Total)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(b)
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
