package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/taskporter/taskporter/internal/tracker"
)

// GetTaskTool handles the get_task MCP tool.
type GetTaskTool struct {
	svc *tracker.Service
}

// NewGetTaskTool creates a GetTaskTool.
func NewGetTaskTool(svc *tracker.Service) *GetTaskTool {
	return &GetTaskTool{svc: svc}
}

// Definition returns the MCP tool definition for registration.
func (t *GetTaskTool) Definition() mcp.Tool {
	return mcp.NewTool("get_task",
		mcp.WithDescription("Fetch one task record by id."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task id"),
		),
	)
}

// Handle processes the get_task tool call.
func (t *GetTaskTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	task, err := t.svc.GetTask(id)
	if err != nil {
		return failure(err)
	}
	if task == nil {
		return notFoundResult("task", id), nil
	}
	return jsonResult(task)
}
