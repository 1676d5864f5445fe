package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/taskporter/taskporter/internal/entities"
	"github.com/taskporter/taskporter/internal/query"
	"github.com/taskporter/taskporter/internal/tracker"
)

// ListTasksTool handles the list_tasks MCP tool.
type ListTasksTool struct {
	svc *tracker.Service
}

// NewListTasksTool creates a ListTasksTool.
func NewListTasksTool(svc *tracker.Service) *ListTasksTool {
	return &ListTasksTool{svc: svc}
}

// Definition returns the MCP tool definition for registration.
func (t *ListTasksTool) Definition() mcp.Tool {
	return mcp.NewTool("list_tasks",
		mcp.WithDescription(
			"List task summaries, most recently updated first. All filter fields are "+
				"optional; a tags filter matches only tasks carrying every listed tag.",
		),
		mcp.WithString("project_id",
			mcp.Description("Filter by owning project id"),
		),
		mcp.WithString("status",
			mcp.Description("Filter by exact status"),
			mcp.Enum("todo", "in_progress", "blocked", "review", "done", "cancelled"),
		),
		mcp.WithString("priority",
			mcp.Description("Filter by exact priority"),
			mcp.Enum("low", "medium", "high", "critical"),
		),
		mcp.WithString("assignee",
			mcp.Description("Filter by exact assignee"),
		),
		mcp.WithArray("tags",
			mcp.Description("Tags that must all be present"),
		),
	)
}

// Handle processes the list_tasks tool call.
func (t *ListTasksTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tags, err := stringSliceArg(req, "tags")
	if err != nil {
		return argError(err), nil
	}
	f := query.TaskFilter{
		ProjectID: req.GetString("project_id", ""),
		Status:    entities.TaskStatus(req.GetString("status", "")),
		Priority:  entities.Priority(req.GetString("priority", "")),
		Assignee:  req.GetString("assignee", ""),
		Tags:      tags,
	}
	summaries, err := t.svc.ListTasks(f)
	if err != nil {
		return failure(err)
	}
	return jsonResult(summaries)
}
