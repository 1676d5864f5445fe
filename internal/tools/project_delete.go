package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/taskporter/taskporter/internal/tracker"
)

// DeleteProjectTool handles the delete_project MCP tool.
type DeleteProjectTool struct {
	svc *tracker.Service
}

// NewDeleteProjectTool creates a DeleteProjectTool.
func NewDeleteProjectTool(svc *tracker.Service) *DeleteProjectTool {
	return &DeleteProjectTool{svc: svc}
}

// Definition returns the MCP tool definition for registration.
func (t *DeleteProjectTool) Definition() mcp.Tool {
	return mcp.NewTool("delete_project",
		mcp.WithDescription(
			"Delete a project and, best-effort, every task belonging to it. "+
				"Reports whether the project existed; deleting an unknown id is not an error.",
		),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Project id"),
		),
	)
}

// Handle processes the delete_project tool call.
func (t *DeleteProjectTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	existed, err := t.svc.DeleteProject(id)
	if err != nil {
		return failure(err)
	}
	return jsonResult(map[string]any{"id": id, "deleted": existed})
}
