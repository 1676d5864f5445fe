package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/taskporter/taskporter/internal/entities"
	"github.com/taskporter/taskporter/internal/tracker"
)

// UpdateTaskTool handles the update_task MCP tool.
type UpdateTaskTool struct {
	svc *tracker.Service
}

// NewUpdateTaskTool creates an UpdateTaskTool.
func NewUpdateTaskTool(svc *tracker.Service) *UpdateTaskTool {
	return &UpdateTaskTool{svc: svc}
}

// Definition returns the MCP tool definition for registration.
func (t *UpdateTaskTool) Definition() mcp.Tool {
	return mcp.NewTool("update_task",
		mcp.WithDescription(
			"Update a task with merge semantics: omitted fields keep their stored value, "+
				"'id', 'projectId' and 'created' are immutable, 'updated' is always refreshed. "+
				"Dependency changes that would form a cycle are rejected.",
		),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task id"),
		),
		mcp.WithString("title", mcp.Description("New title")),
		mcp.WithString("description", mcp.Description("New description")),
		mcp.WithString("status",
			mcp.Description("New status"),
			mcp.Enum("todo", "in_progress", "blocked", "review", "done", "cancelled"),
		),
		mcp.WithString("priority",
			mcp.Description("New priority"),
			mcp.Enum("low", "medium", "high", "critical"),
		),
		mcp.WithArray("subtasks", mcp.Description("Replacement subtask id list")),
		mcp.WithArray("dependencies", mcp.Description("Replacement dependency id list")),
		mcp.WithNumber("estimated_hours", mcp.Description("New estimate in hours")),
		mcp.WithNumber("actual_hours", mcp.Description("Hours actually spent")),
		mcp.WithString("assignee", mcp.Description("New assignee")),
		mcp.WithArray("tags", mcp.Description("Replacement tag set")),
		mcp.WithString("due_date", mcp.Description("New due date; RFC 3339 or YYYY-MM-DD")),
		mcp.WithString("notes", mcp.Description("Replacement free-text notes")),
	)
}

// Handle processes the update_task tool call.
func (t *UpdateTaskTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	var up tracker.TaskUpdate

	if hasArg(req, "title") {
		v := req.GetString("title", "")
		up.Title = &v
	}
	if hasArg(req, "description") {
		v := req.GetString("description", "")
		up.Description = &v
	}
	if hasArg(req, "status") {
		v := entities.TaskStatus(req.GetString("status", ""))
		up.Status = &v
	}
	if hasArg(req, "priority") {
		v := entities.Priority(req.GetString("priority", ""))
		up.Priority = &v
	}
	if hasArg(req, "subtasks") {
		v, err := stringSliceArg(req, "subtasks")
		if err != nil {
			return argError(err), nil
		}
		up.Subtasks = &v
	}
	if hasArg(req, "dependencies") {
		v, err := stringSliceArg(req, "dependencies")
		if err != nil {
			return argError(err), nil
		}
		up.Dependencies = &v
	}
	hours, err := floatPtrArg(req, "estimated_hours")
	if err != nil {
		return argError(err), nil
	}
	up.EstimatedHours = hours
	actual, err := floatPtrArg(req, "actual_hours")
	if err != nil {
		return argError(err), nil
	}
	up.ActualHours = actual
	if hasArg(req, "assignee") {
		v := req.GetString("assignee", "")
		up.Assignee = &v
	}
	if hasArg(req, "tags") {
		v, err := stringSliceArg(req, "tags")
		if err != nil {
			return argError(err), nil
		}
		up.Tags = &v
	}
	if hasArg(req, "due_date") {
		v := req.GetString("due_date", "")
		up.DueDate = &v
	}
	if hasArg(req, "notes") {
		v := req.GetString("notes", "")
		up.Notes = &v
	}

	task, err := t.svc.UpdateTask(id, up)
	if err != nil {
		return failure(err)
	}
	if task == nil {
		return notFoundResult("task", id), nil
	}
	return jsonResult(task)
}
