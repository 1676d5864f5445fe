package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/taskporter/taskporter/internal/entities"
	"github.com/taskporter/taskporter/internal/tracker"
)

// CreateProjectTool handles the create_project MCP tool.
type CreateProjectTool struct {
	svc *tracker.Service
}

// NewCreateProjectTool creates a CreateProjectTool.
func NewCreateProjectTool(svc *tracker.Service) *CreateProjectTool {
	return &CreateProjectTool{svc: svc}
}

// Definition returns the MCP tool definition for registration.
func (t *CreateProjectTool) Definition() mcp.Tool {
	return mcp.NewTool("create_project",
		mcp.WithDescription(
			"Create a new project with an embedded PRD. The server assigns the id "+
				"and timestamps; initial status is 'planning'. Returns the full project record.",
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Project name"),
		),
		mcp.WithString("description",
			mcp.Required(),
			mcp.Description("What the project is about"),
		),
		mcp.WithObject("prd",
			mcp.Required(),
			mcp.Description("Product requirements document: title, overview, problemStatement, "+
				"goals, requirements, acceptanceCriteria, timeline (required, may be empty), "+
				"and optional assumptions, constraints, risksAndMitigation"),
		),
		mcp.WithArray("tags",
			mcp.Description("Tags for filtering, e.g. [\"backend\", \"q3\"]"),
		),
		mcp.WithString("repository",
			mcp.Description("Optional repository URL or path"),
		),
	)
}

// Handle processes the create_project tool call.
func (t *CreateProjectTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var prd entities.PRD
	if err := decodeArg(req, "prd", &prd); err != nil {
		return argError(err), nil
	}
	tags, err := stringSliceArg(req, "tags")
	if err != nil {
		return argError(err), nil
	}

	project, err := t.svc.CreateProject(tracker.ProjectInput{
		Name:        req.GetString("name", ""),
		Description: req.GetString("description", ""),
		PRD:         prd,
		Tags:        tags,
		Repository:  req.GetString("repository", ""),
	})
	if err != nil {
		return failure(err)
	}
	return jsonResult(project)
}
