package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/taskporter/taskporter/internal/tracker"
)

// BackupTool handles the backup MCP tool.
type BackupTool struct {
	svc *tracker.Service
}

// NewBackupTool creates a BackupTool.
func NewBackupTool(svc *tracker.Service) *BackupTool {
	return &BackupTool{svc: svc}
}

// Definition returns the MCP tool definition for registration.
func (t *BackupTool) Definition() mcp.Tool {
	return mcp.NewTool("backup",
		mcp.WithDescription(
			"Snapshot the current record set into a timestamped folder under the "+
				"storage root and return its path.",
		),
	)
}

// Handle processes the backup tool call.
func (t *BackupTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := t.svc.Backup()
	if err != nil {
		return failure(err)
	}
	return jsonResult(map[string]any{"path": path})
}
