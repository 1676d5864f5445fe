package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/taskporter/taskporter/internal/tracker"
)

// GetProjectTool handles the get_project MCP tool.
type GetProjectTool struct {
	svc *tracker.Service
}

// NewGetProjectTool creates a GetProjectTool.
func NewGetProjectTool(svc *tracker.Service) *GetProjectTool {
	return &GetProjectTool{svc: svc}
}

// Definition returns the MCP tool definition for registration.
func (t *GetProjectTool) Definition() mcp.Tool {
	return mcp.NewTool("get_project",
		mcp.WithDescription("Fetch one project record by id, PRD included."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Project id"),
		),
	)
}

// Handle processes the get_project tool call.
func (t *GetProjectTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	project, err := t.svc.GetProject(id)
	if err != nil {
		return failure(err)
	}
	if project == nil {
		return notFoundResult("project", id), nil
	}
	return jsonResult(project)
}
