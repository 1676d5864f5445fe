package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/taskporter/taskporter/internal/entities"
	"github.com/taskporter/taskporter/internal/tracker"
)

// DecomposeTaskTool handles the decompose_task MCP tool.
type DecomposeTaskTool struct {
	svc *tracker.Service
}

// NewDecomposeTaskTool creates a DecomposeTaskTool.
func NewDecomposeTaskTool(svc *tracker.Service) *DecomposeTaskTool {
	return &DecomposeTaskTool{svc: svc}
}

// subtaskSpec mirrors tracker.SubtaskSpec for argument decoding.
type subtaskSpec struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Priority       string   `json:"priority"`
	EstimatedHours *float64 `json:"estimatedHours,omitempty"`
}

// Definition returns the MCP tool definition for registration.
func (t *DecomposeTaskTool) Definition() mcp.Tool {
	return mcp.NewTool("decompose_task",
		mcp.WithDescription(
			"Break a task into subtasks. Each subtask becomes a real task in the same "+
				"project: status 'todo', depending on the parent, inheriting the parent's "+
				"assignee and tags as a one-time snapshot. The parent's subtasks list is "+
				"appended to, so repeated decomposition accumulates children. Returns the "+
				"created subtasks in input order.",
		),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("Id of the parent task (must exist)"),
		),
		mcp.WithArray("subtasks",
			mcp.Required(),
			mcp.Description("Ordered subtask specs: {title, description, priority, estimatedHours?}"),
		),
	)
}

// Handle processes the decompose_task tool call.
func (t *DecomposeTaskTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var raw []subtaskSpec
	if err := decodeArg(req, "subtasks", &raw); err != nil {
		return argError(err), nil
	}

	specs := make([]tracker.SubtaskSpec, len(raw))
	for i, s := range raw {
		specs[i] = tracker.SubtaskSpec{
			Title:          s.Title,
			Description:    s.Description,
			Priority:       entities.Priority(s.Priority),
			EstimatedHours: s.EstimatedHours,
		}
	}

	created, err := t.svc.DecomposeTask(req.GetString("task_id", ""), specs)
	if err != nil {
		return failure(err)
	}
	return jsonResult(created)
}
