package tracker

import (
	"go.uber.org/zap"

	"github.com/taskporter/taskporter/internal/entities"
	"github.com/taskporter/taskporter/internal/query"
)

// ProjectInput carries the caller-supplied fields for createProject.
// The store assigns id and timestamps.
type ProjectInput struct {
	Name        string
	Description string
	PRD         entities.PRD
	Tags        []string
	Repository  string
}

// ProjectUpdate carries a partial update for updateProject. Nil fields
// keep their stored value. ID and created are never updatable.
type ProjectUpdate struct {
	Name          *string
	Description   *string
	PRD           *entities.PRD
	Status        *entities.ProjectStatus
	Tasks         *[]string
	Tags          *[]string
	Repository    *string
	Documentation *string
}

// CreateProject validates and persists a new project. Initial status
// is planning; created and updated are set to the same instant.
func (s *Service) CreateProject(in ProjectInput) (*entities.Project, error) {
	now := s.store.Now()
	p := &entities.Project{
		ID:          s.store.NewID(),
		Name:        in.Name,
		Description: in.Description,
		PRD:         in.PRD,
		Status:      entities.ProjectPlanning,
		Tasks:       []string{},
		Tags:        in.Tags,
		Repository:  in.Repository,
		Created:     now,
		Updated:     now,
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if err := s.store.PutProject(p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetProject returns the project, or (nil, nil) when the id is
// unknown.
func (s *Service) GetProject(id string) (*entities.Project, error) {
	return s.store.GetProject(id)
}

// UpdateProject merges the supplied fields into the stored project.
// Returns (nil, nil) when the id is unknown. updated is refreshed on
// every successful write, even if nothing visible changed.
func (s *Service) UpdateProject(id string, up ProjectUpdate) (*entities.Project, error) {
	p, err := s.store.GetProject(id)
	if err != nil || p == nil {
		return nil, err
	}

	if up.Name != nil {
		p.Name = *up.Name
	}
	if up.Description != nil {
		p.Description = *up.Description
	}
	if up.PRD != nil {
		p.PRD = *up.PRD
	}
	if up.Status != nil {
		p.Status = *up.Status
	}
	if up.Tasks != nil {
		p.Tasks = *up.Tasks
	}
	if up.Tags != nil {
		p.Tags = *up.Tags
	}
	if up.Repository != nil {
		p.Repository = *up.Repository
	}
	if up.Documentation != nil {
		p.Documentation = *up.Documentation
	}
	p.Updated = s.store.Now()

	if err := s.store.PutProject(p); err != nil {
		return nil, err
	}
	return p, nil
}

// ListProjects returns filtered project summaries, most recently
// updated first. Task counts are recomputed from the live task
// collection; the denormalized tasks list is never trusted.
func (s *Service) ListProjects(f query.ProjectFilter) ([]entities.ProjectSummary, error) {
	projects, err := s.store.ListProjects()
	if err != nil {
		return nil, err
	}
	tasks, err := s.store.ListTasks()
	if err != nil {
		return nil, err
	}

	total := make(map[string]int)
	done := make(map[string]int)
	for _, t := range tasks {
		total[t.ProjectID]++
		if t.Status == entities.TaskDone {
			done[t.ProjectID]++
		}
	}

	matched := query.Projects(projects, f)
	out := make([]entities.ProjectSummary, 0, len(matched))
	for _, p := range matched {
		out = append(out, entities.ProjectSummary{
			ID:             p.ID,
			Name:           p.Name,
			Description:    p.Description,
			Status:         p.Status,
			Tags:           p.Tags,
			TaskCount:      total[p.ID],
			CompletedTasks: done[p.ID],
			Updated:        p.Updated,
		})
	}
	return out, nil
}

// DeleteProject removes the project and, best-effort, every task whose
// projectId matches. A task that fails to delete is logged and
// skipped; it never aborts the project deletion. Returns whether the
// project existed.
func (s *Service) DeleteProject(id string) (bool, error) {
	tasks, err := s.store.ListTasks()
	if err != nil {
		return false, err
	}
	for _, t := range tasks {
		if t.ProjectID != id {
			continue
		}
		if _, err := s.store.DeleteTask(t.ID); err != nil {
			s.log.Warn("cascade delete: task removal failed",
				zap.String("project", id), zap.String("task", t.ID), zap.Error(err))
		}
	}
	return s.store.DeleteProject(id)
}
