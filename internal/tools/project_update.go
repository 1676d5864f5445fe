package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/taskporter/taskporter/internal/entities"
	"github.com/taskporter/taskporter/internal/tracker"
)

// UpdateProjectTool handles the update_project MCP tool.
type UpdateProjectTool struct {
	svc *tracker.Service
}

// NewUpdateProjectTool creates an UpdateProjectTool.
func NewUpdateProjectTool(svc *tracker.Service) *UpdateProjectTool {
	return &UpdateProjectTool{svc: svc}
}

// Definition returns the MCP tool definition for registration.
func (t *UpdateProjectTool) Definition() mcp.Tool {
	return mcp.NewTool("update_project",
		mcp.WithDescription(
			"Update a project with merge semantics: omitted fields keep their stored "+
				"value, 'id' and 'created' are immutable, 'updated' is always refreshed.",
		),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Project id"),
		),
		mcp.WithString("name", mcp.Description("New name")),
		mcp.WithString("description", mcp.Description("New description")),
		mcp.WithObject("prd", mcp.Description("Replacement PRD")),
		mcp.WithString("status",
			mcp.Description("New status"),
			mcp.Enum("planning", "in_progress", "on_hold", "completed", "cancelled"),
		),
		mcp.WithArray("tasks", mcp.Description("Replacement denormalized task id list")),
		mcp.WithArray("tags", mcp.Description("Replacement tag set")),
		mcp.WithString("repository", mcp.Description("New repository URL or path")),
		mcp.WithString("documentation", mcp.Description("New documentation link")),
	)
}

// Handle processes the update_project tool call.
func (t *UpdateProjectTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	var up tracker.ProjectUpdate

	if hasArg(req, "name") {
		v := req.GetString("name", "")
		up.Name = &v
	}
	if hasArg(req, "description") {
		v := req.GetString("description", "")
		up.Description = &v
	}
	if hasArg(req, "prd") {
		var prd entities.PRD
		if err := decodeArg(req, "prd", &prd); err != nil {
			return argError(err), nil
		}
		up.PRD = &prd
	}
	if hasArg(req, "status") {
		v := entities.ProjectStatus(req.GetString("status", ""))
		up.Status = &v
	}
	if hasArg(req, "tasks") {
		v, err := stringSliceArg(req, "tasks")
		if err != nil {
			return argError(err), nil
		}
		up.Tasks = &v
	}
	if hasArg(req, "tags") {
		v, err := stringSliceArg(req, "tags")
		if err != nil {
			return argError(err), nil
		}
		up.Tags = &v
	}
	if hasArg(req, "repository") {
		v := req.GetString("repository", "")
		up.Repository = &v
	}
	if hasArg(req, "documentation") {
		v := req.GetString("documentation", "")
		up.Documentation = &v
	}

	project, err := t.svc.UpdateProject(id, up)
	if err != nil {
		return failure(err)
	}
	if project == nil {
		return notFoundResult("project", id), nil
	}
	return jsonResult(project)
}
