package tracker

import (
	"github.com/taskporter/taskporter/internal/entities"
	"github.com/taskporter/taskporter/internal/query"
)

// TaskInput carries the caller-supplied fields for createTask.
type TaskInput struct {
	ProjectID      string
	Title          string
	Description    string
	Priority       entities.Priority
	EstimatedHours *float64
	DueDate        string
	Dependencies   []string
	Tags           []string
	Assignee       string
}

// TaskUpdate carries a partial update for updateTask. Nil fields keep
// their stored value.
type TaskUpdate struct {
	Title          *string
	Description    *string
	Status         *entities.TaskStatus
	Priority       *entities.Priority
	Subtasks       *[]string
	Dependencies   *[]string
	EstimatedHours *float64
	ActualHours    *float64
	Assignee       *string
	Tags           *[]string
	DueDate        *string
	Notes          *string
}

// CreateTask validates and persists a new task. The project reference
// is checked here, at creation time only; reads never re-verify it.
func (s *Service) CreateTask(in TaskInput) (*entities.Task, error) {
	proj, err := s.store.GetProject(in.ProjectID)
	if err != nil {
		return nil, err
	}
	if proj == nil {
		return nil, &entities.ValidationError{
			Kind:   "task",
			Fields: []entities.FieldError{{Path: "projectId", Expected: "id of an existing project"}},
		}
	}

	now := s.store.Now()
	t := &entities.Task{
		ID:             s.store.NewID(),
		ProjectID:      in.ProjectID,
		Title:          in.Title,
		Description:    in.Description,
		Status:         entities.TaskTodo,
		Priority:       in.Priority,
		Subtasks:       []string{},
		Dependencies:   in.Dependencies,
		EstimatedHours: in.EstimatedHours,
		Assignee:       in.Assignee,
		Tags:           in.Tags,
		Created:        now,
		Updated:        now,
		DueDate:        in.DueDate,
	}
	if t.Dependencies == nil {
		t.Dependencies = []string{}
	}

	if err := s.checkDependencyCycle(t.ID, t.Dependencies); err != nil {
		return nil, err
	}
	if err := s.store.PutTask(t); err != nil {
		return nil, err
	}
	return t, nil
}

// GetTask returns the task, or (nil, nil) when the id is unknown.
func (s *Service) GetTask(id string) (*entities.Task, error) {
	return s.store.GetTask(id)
}

// UpdateTask merges the supplied fields into the stored task. Returns
// (nil, nil) when the id is unknown.
func (s *Service) UpdateTask(id string, up TaskUpdate) (*entities.Task, error) {
	t, err := s.store.GetTask(id)
	if err != nil || t == nil {
		return nil, err
	}

	if up.Title != nil {
		t.Title = *up.Title
	}
	if up.Description != nil {
		t.Description = *up.Description
	}
	if up.Status != nil {
		t.Status = *up.Status
	}
	if up.Priority != nil {
		t.Priority = *up.Priority
	}
	if up.Subtasks != nil {
		t.Subtasks = *up.Subtasks
	}
	if up.Dependencies != nil {
		t.Dependencies = *up.Dependencies
		if err := s.checkDependencyCycle(t.ID, t.Dependencies); err != nil {
			return nil, err
		}
	}
	if up.EstimatedHours != nil {
		t.EstimatedHours = up.EstimatedHours
	}
	if up.ActualHours != nil {
		t.ActualHours = up.ActualHours
	}
	if up.Assignee != nil {
		t.Assignee = *up.Assignee
	}
	if up.Tags != nil {
		t.Tags = *up.Tags
	}
	if up.DueDate != nil {
		t.DueDate = *up.DueDate
	}
	if up.Notes != nil {
		t.Notes = *up.Notes
	}
	t.Updated = s.store.Now()

	if err := s.store.PutTask(t); err != nil {
		return nil, err
	}
	return t, nil
}

// ListTasks returns filtered task summaries, most recently updated
// first.
func (s *Service) ListTasks(f query.TaskFilter) ([]entities.TaskSummary, error) {
	tasks, err := s.store.ListTasks()
	if err != nil {
		return nil, err
	}
	matched := query.Tasks(tasks, f)
	out := make([]entities.TaskSummary, 0, len(matched))
	for _, t := range matched {
		out = append(out, entities.TaskSummary{
			ID:        t.ID,
			ProjectID: t.ProjectID,
			Title:     t.Title,
			Status:    t.Status,
			Priority:  t.Priority,
			Assignee:  t.Assignee,
			DueDate:   t.DueDate,
			Updated:   t.Updated,
		})
	}
	return out, nil
}

// DeleteTask removes the task and reports whether it existed. The
// parent's subtasks list is left as-is; denormalized lists are
// advisory, and the rollup layer never trusts them.
func (s *Service) DeleteTask(id string) (bool, error) {
	return s.store.DeleteTask(id)
}

// checkDependencyCycle rejects dependency edges that would make taskID
// reachable from itself. A missing dependency id simply terminates
// that branch of the walk; dependencies are not required to exist.
func (s *Service) checkDependencyCycle(taskID string, deps []string) error {
	if len(deps) == 0 {
		return nil
	}
	all, err := s.store.ListTasks()
	if err != nil {
		return err
	}
	edges := make(map[string][]string, len(all)+1)
	for _, t := range all {
		edges[t.ID] = t.Dependencies
	}
	edges[taskID] = deps

	visited := make(map[string]bool)
	var walk func(id string) bool
	walk = func(id string) bool {
		for _, dep := range edges[id] {
			if dep == taskID {
				return true
			}
			if visited[dep] {
				continue
			}
			visited[dep] = true
			if walk(dep) {
				return true
			}
		}
		return false
	}
	if walk(taskID) {
		return &entities.ValidationError{
			Kind:   "task",
			Fields: []entities.FieldError{{Path: "dependencies", Expected: "acyclic dependency graph"}},
		}
	}
	return nil
}
