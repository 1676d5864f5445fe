package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/taskporter/taskporter/internal/tracker"
)

// ProjectStatusTool handles the get_project_status MCP tool.
type ProjectStatusTool struct {
	svc *tracker.Service
}

// NewProjectStatusTool creates a ProjectStatusTool.
func NewProjectStatusTool(svc *tracker.Service) *ProjectStatusTool {
	return &ProjectStatusTool{svc: svc}
}

// Definition returns the MCP tool definition for registration.
func (t *ProjectStatusTool) Definition() mcp.Tool {
	return mcp.NewTool("get_project_status",
		mcp.WithDescription(
			"Compute a rollup report for a project: completion percentage, estimated and "+
				"actual hour totals, and up to 5 upcoming deadlines (unfinished tasks with a "+
				"due date, earliest first). Recomputed from the live task collection on every call.",
		),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Project id"),
		),
	)
}

// Handle processes the get_project_status tool call.
func (t *ProjectStatusTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, err := t.svc.ProjectStatus(req.GetString("id", ""))
	if err != nil {
		return failure(err)
	}
	return jsonResult(report)
}
