package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/taskporter/taskporter/internal/tracker"
)

// DeleteTaskTool handles the delete_task MCP tool.
type DeleteTaskTool struct {
	svc *tracker.Service
}

// NewDeleteTaskTool creates a DeleteTaskTool.
func NewDeleteTaskTool(svc *tracker.Service) *DeleteTaskTool {
	return &DeleteTaskTool{svc: svc}
}

// Definition returns the MCP tool definition for registration.
func (t *DeleteTaskTool) Definition() mcp.Tool {
	return mcp.NewTool("delete_task",
		mcp.WithDescription(
			"Delete a task by id. Reports whether it existed. Subtask references held "+
				"by other tasks are left as-is; they are advisory only.",
		),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task id"),
		),
	)
}

// Handle processes the delete_task tool call.
func (t *DeleteTaskTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	existed, err := t.svc.DeleteTask(id)
	if err != nil {
		return failure(err)
	}
	return jsonResult(map[string]any{"id": id, "deleted": existed})
}
