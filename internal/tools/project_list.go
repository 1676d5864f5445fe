package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/taskporter/taskporter/internal/entities"
	"github.com/taskporter/taskporter/internal/query"
	"github.com/taskporter/taskporter/internal/tracker"
)

// ListProjectsTool handles the list_projects MCP tool.
type ListProjectsTool struct {
	svc *tracker.Service
}

// NewListProjectsTool creates a ListProjectsTool.
func NewListProjectsTool(svc *tracker.Service) *ListProjectsTool {
	return &ListProjectsTool{svc: svc}
}

// Definition returns the MCP tool definition for registration.
func (t *ListProjectsTool) Definition() mcp.Tool {
	return mcp.NewTool("list_projects",
		mcp.WithDescription(
			"List project summaries, most recently updated first. All filter fields are "+
				"optional; a tags filter matches only projects carrying every listed tag.",
		),
		mcp.WithString("status",
			mcp.Description("Filter by exact status"),
			mcp.Enum("planning", "in_progress", "on_hold", "completed", "cancelled"),
		),
		mcp.WithArray("tags",
			mcp.Description("Tags that must all be present"),
		),
		mcp.WithBoolean("has_repository",
			mcp.Description("Filter by whether the project has a repository set"),
		),
	)
}

// Handle processes the list_projects tool call.
func (t *ListProjectsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tags, err := stringSliceArg(req, "tags")
	if err != nil {
		return argError(err), nil
	}
	hasRepo, err := boolPtrArg(req, "has_repository")
	if err != nil {
		return argError(err), nil
	}
	f := query.ProjectFilter{
		Status:        entities.ProjectStatus(req.GetString("status", "")),
		Tags:          tags,
		HasRepository: hasRepo,
	}
	summaries, err := t.svc.ListProjects(f)
	if err != nil {
		return failure(err)
	}
	return jsonResult(summaries)
}
