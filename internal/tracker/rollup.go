package tracker

import (
	"sort"

	"github.com/taskporter/taskporter/internal/entities"
	"github.com/taskporter/taskporter/internal/query"
)

// maxUpcomingDeadlines caps the deadlines section of a status report.
const maxUpcomingDeadlines = 5

// ProjectStatus computes the rollup report for one project. It fails
// with ErrNotFound when the project does not exist; a report over a
// missing project is never partially computed.
//
// Everything is derived from a live task query; the project's cached
// tasks list plays no part.
func (s *Service) ProjectStatus(id string) (*entities.ProjectStatusReport, error) {
	p, err := s.store.GetProject(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, notFound("project", id)
	}

	all, err := s.store.ListTasks()
	if err != nil {
		return nil, err
	}
	tasks := query.Tasks(all, query.TaskFilter{ProjectID: id})

	report := &entities.ProjectStatusReport{
		ProjectID:         p.ID,
		Name:              p.Name,
		Status:            p.Status,
		TaskCount:         len(tasks),
		UpcomingDeadlines: []entities.DeadlineEntry{},
	}

	var deadlines []*entities.Task
	for _, t := range tasks {
		if t.Status == entities.TaskDone {
			report.CompletedTasks++
		}
		if t.EstimatedHours != nil {
			report.TotalEstimatedHours += *t.EstimatedHours
		}
		if t.ActualHours != nil {
			report.TotalActualHours += *t.ActualHours
		}
		if t.DueDate != "" && t.Status != entities.TaskDone {
			deadlines = append(deadlines, t)
		}
	}

	// Percentage is exactly 0 for an empty project; never divide by a
	// zero task count.
	if report.TaskCount > 0 {
		report.CompletionPercentage = float64(report.CompletedTasks) / float64(report.TaskCount) * 100
	}

	sort.SliceStable(deadlines, func(i, j int) bool {
		a, errA := entities.ParseStamp(deadlines[i].DueDate)
		b, errB := entities.ParseStamp(deadlines[j].DueDate)
		if errA != nil || errB != nil {
			return errA == nil
		}
		return a.Before(b)
	})
	if len(deadlines) > maxUpcomingDeadlines {
		deadlines = deadlines[:maxUpcomingDeadlines]
	}
	for _, t := range deadlines {
		report.UpcomingDeadlines = append(report.UpcomingDeadlines, entities.DeadlineEntry{
			TaskID:  t.ID,
			Title:   t.Title,
			DueDate: t.DueDate,
		})
	}

	return report, nil
}
