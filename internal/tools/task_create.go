package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/taskporter/taskporter/internal/entities"
	"github.com/taskporter/taskporter/internal/tracker"
)

// CreateTaskTool handles the create_task MCP tool.
type CreateTaskTool struct {
	svc *tracker.Service
}

// NewCreateTaskTool creates a CreateTaskTool.
func NewCreateTaskTool(svc *tracker.Service) *CreateTaskTool {
	return &CreateTaskTool{svc: svc}
}

// Definition returns the MCP tool definition for registration.
func (t *CreateTaskTool) Definition() mcp.Tool {
	return mcp.NewTool("create_task",
		mcp.WithDescription(
			"Create a task in an existing project. The server assigns the id and "+
				"timestamps; initial status is 'todo'. The project must exist. "+
				"Dependency lists that would form a cycle are rejected.",
		),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("Id of the owning project"),
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Short task title"),
		),
		mcp.WithString("description",
			mcp.Required(),
			mcp.Description("What needs to be done"),
		),
		mcp.WithString("priority",
			mcp.Required(),
			mcp.Description("Task priority"),
			mcp.Enum("low", "medium", "high", "critical"),
		),
		mcp.WithNumber("estimated_hours",
			mcp.Description("Estimated effort in hours (non-negative)"),
		),
		mcp.WithString("due_date",
			mcp.Description("Due date; RFC 3339 timestamp or YYYY-MM-DD"),
		),
		mcp.WithArray("dependencies",
			mcp.Description("Ids of tasks this task depends on"),
		),
		mcp.WithArray("tags",
			mcp.Description("Tags for filtering"),
		),
		mcp.WithString("assignee",
			mcp.Description("Who the task is assigned to"),
		),
	)
}

// Handle processes the create_task tool call.
func (t *CreateTaskTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	hours, err := floatPtrArg(req, "estimated_hours")
	if err != nil {
		return argError(err), nil
	}
	deps, err := stringSliceArg(req, "dependencies")
	if err != nil {
		return argError(err), nil
	}
	tags, err := stringSliceArg(req, "tags")
	if err != nil {
		return argError(err), nil
	}

	task, err := t.svc.CreateTask(tracker.TaskInput{
		ProjectID:      req.GetString("project_id", ""),
		Title:          req.GetString("title", ""),
		Description:    req.GetString("description", ""),
		Priority:       entities.Priority(req.GetString("priority", "")),
		EstimatedHours: hours,
		DueDate:        req.GetString("due_date", ""),
		Dependencies:   deps,
		Tags:           tags,
		Assignee:       req.GetString("assignee", ""),
	})
	if err != nil {
		return failure(err)
	}
	return jsonResult(task)
}
