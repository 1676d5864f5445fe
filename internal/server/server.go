// Package server wires all MCP components and creates the server
// instance.
//
// This is the composition root: config and logger are resolved once,
// the storage backend is chosen and injected into the tracker, and
// every tool is registered against the shared service. No business
// logic lives here; only wiring.
package server

import (
	"fmt"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/taskporter/taskporter/internal/config"
	"github.com/taskporter/taskporter/internal/store"
	"github.com/taskporter/taskporter/internal/tools"
	"github.com/taskporter/taskporter/internal/tracker"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all tools registered.
//
// The returned cleanup function closes the store (a database handle
// for the sqlite backend) and must be called on shutdown. It is always
// non-nil and safe to call.
func New(cfg config.Config, log *zap.Logger) (*server.MCPServer, func(), error) {
	// --- Open the storage backend ---
	//
	// The storage root is the one fatal startup dependency: if it
	// cannot be created or opened, the process has nothing to serve.

	var (
		st  store.Store
		err error
	)
	switch cfg.Backend {
	case config.BackendSQLite:
		st, err = store.NewSQLiteStore(cfg.StorageRoot, log)
	default:
		st, err = store.NewFileStore(cfg.StorageRoot, log)
	}
	if err != nil {
		return nil, noop, fmt.Errorf("opening %s store at %s: %w", cfg.Backend, cfg.StorageRoot, err)
	}

	cleanup := func() {
		if err := st.Close(); err != nil {
			log.Warn("store close", zap.Error(err))
		}
	}

	svc := tracker.NewService(st, log)

	// --- Create the MCP server ---

	s := server.NewMCPServer(
		"taskporter",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Register project tools ---

	createProject := tools.NewCreateProjectTool(svc)
	s.AddTool(createProject.Definition(), createProject.Handle)

	listProjects := tools.NewListProjectsTool(svc)
	s.AddTool(listProjects.Definition(), listProjects.Handle)

	getProject := tools.NewGetProjectTool(svc)
	s.AddTool(getProject.Definition(), getProject.Handle)

	updateProject := tools.NewUpdateProjectTool(svc)
	s.AddTool(updateProject.Definition(), updateProject.Handle)

	deleteProject := tools.NewDeleteProjectTool(svc)
	s.AddTool(deleteProject.Definition(), deleteProject.Handle)

	projectStatus := tools.NewProjectStatusTool(svc)
	s.AddTool(projectStatus.Definition(), projectStatus.Handle)

	// --- Register task tools ---

	createTask := tools.NewCreateTaskTool(svc)
	s.AddTool(createTask.Definition(), createTask.Handle)

	listTasks := tools.NewListTasksTool(svc)
	s.AddTool(listTasks.Definition(), listTasks.Handle)

	getTask := tools.NewGetTaskTool(svc)
	s.AddTool(getTask.Definition(), getTask.Handle)

	updateTask := tools.NewUpdateTaskTool(svc)
	s.AddTool(updateTask.Definition(), updateTask.Handle)

	deleteTask := tools.NewDeleteTaskTool(svc)
	s.AddTool(deleteTask.Definition(), deleteTask.Handle)

	decomposeTask := tools.NewDecomposeTaskTool(svc)
	s.AddTool(decomposeTask.Definition(), decomposeTask.Handle)

	// --- Register maintenance tools ---

	backup := tools.NewBackupTool(svc)
	s.AddTool(backup.Definition(), backup.Handle)

	log.Info("taskporter server ready",
		zap.String("backend", string(cfg.Backend)),
		zap.String("root", cfg.StorageRoot))

	return s, cleanup, nil
}

// noop is the default cleanup when startup fails before a store opens.
func noop() {}

// serverInstructions returns the system instructions that tell the AI
// how to use the tracker effectively.
func serverInstructions() string {
	return `You have access to taskporter, a local project and task tracker.

## Model
- A project carries an embedded PRD (title, overview, problemStatement,
  goals, requirements, acceptanceCriteria, timeline) and owns tasks.
- A task belongs to exactly one project (projectId) and may list
  dependencies (task ids it depends on) and subtasks (ids of children
  created via decompose_task).
- Ids and created/updated timestamps are assigned by the server;
  never invent them.

## Typical flow
1. create_project with a real PRD; no placeholder text.
2. create_task for each unit of work; use dependencies to express order.
3. decompose_task to split a large task into subtasks; the children
   automatically depend on the parent and inherit assignee and tags.
4. update_task as work progresses (status, actualHours, notes).
5. get_project_status for a live rollup: completion percentage, hour
   totals, the next due deadlines.

## Listing and filtering
- list_projects / list_tasks return summaries, most recently updated
  first. Filters are exact-match; a tags filter requires every tag.
- Fetch full records with get_project / get_task when you need the
  PRD, dependencies, or notes.

## Updates
- Updates merge: send only the fields you are changing. Omitted fields
  keep their stored value.
- Status enums: projects use planning, in_progress, on_hold, completed,
  cancelled; tasks use todo, in_progress, blocked, review, done,
  cancelled.

## Safety
- delete_project removes its tasks too; confirm with the user first.
- Dependency cycles are rejected; restructure the graph instead of
  retrying the same edges.
- backup snapshots the whole store into a timestamped folder; suggest
  it before large destructive operations.`
}
