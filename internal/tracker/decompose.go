package tracker

import (
	"fmt"

	"github.com/taskporter/taskporter/internal/entities"
)

// SubtaskSpec describes one child task to create during decomposition.
type SubtaskSpec struct {
	Title          string
	Description    string
	Priority       entities.Priority
	EstimatedHours *float64
}

// DecomposeTask creates child tasks for a parent, in input order, and
// appends their ids to the parent's subtasks list. Each child starts
// as todo, depends on the parent, and snapshots the parent's assignee
// and tags at this moment; a one-time copy, not a live link.
//
// There is no rollback: if persisting a child fails partway through,
// the already-persisted children remain and the error is returned.
func (s *Service) DecomposeTask(parentID string, specs []SubtaskSpec) ([]*entities.Task, error) {
	parent, err := s.store.GetTask(parentID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, notFound("task", parentID)
	}

	// Reject malformed specs before anything touches disk; the
	// no-rollback policy is for storage failures, not bad input.
	for i, spec := range specs {
		if err := entities.ValidatePriority(spec.Priority); err != nil {
			return nil, &entities.ValidationError{
				Kind: "task",
				Fields: []entities.FieldError{{
					Path:     fmt.Sprintf("subtasks[%d].priority", i),
					Expected: "one of low, medium, high, critical",
				}},
			}
		}
	}

	created := make([]*entities.Task, 0, len(specs))
	for _, spec := range specs {
		now := s.store.Now()
		child := &entities.Task{
			ID:             s.store.NewID(),
			ProjectID:      parent.ProjectID,
			Title:          spec.Title,
			Description:    spec.Description,
			Status:         entities.TaskTodo,
			Priority:       spec.Priority,
			Subtasks:       []string{},
			Dependencies:   []string{parent.ID},
			EstimatedHours: spec.EstimatedHours,
			Assignee:       parent.Assignee,
			Tags:           append([]string(nil), parent.Tags...),
			Created:        now,
			Updated:        now,
			Notes:          fmt.Sprintf("Subtask of: %s", parent.Title),
		}
		if err := s.store.PutTask(child); err != nil {
			return created, err
		}
		created = append(created, child)
	}

	// Append, never replace: repeated decomposition accumulates
	// children on the parent.
	for _, child := range created {
		parent.Subtasks = append(parent.Subtasks, child.ID)
	}
	parent.Updated = s.store.Now()
	if err := s.store.PutTask(parent); err != nil {
		return created, err
	}

	return created, nil
}
