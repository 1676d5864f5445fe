// Package query filters and orders collections read from the store.
//
// Filters are flat field matchers: an unset field imposes no
// constraint, a tags filter requires every listed tag to be present.
// Display ordering is most-recently-updated first with a stable sort,
// so storage insertion order breaks ties deterministically.
package query

import (
	"sort"

	"github.com/taskporter/taskporter/internal/entities"
)

// ProjectFilter narrows a project listing. Zero values match all.
type ProjectFilter struct {
	Status        entities.ProjectStatus `json:"status,omitempty"`
	Tags          []string               `json:"tags,omitempty"`
	HasRepository *bool                  `json:"hasRepository,omitempty"`
}

// TaskFilter narrows a task listing. Zero values match all.
type TaskFilter struct {
	ProjectID string              `json:"projectId,omitempty"`
	Status    entities.TaskStatus `json:"status,omitempty"`
	Priority  entities.Priority   `json:"priority,omitempty"`
	Assignee  string              `json:"assignee,omitempty"`
	Tags      []string            `json:"tags,omitempty"`
}

// MatchProject reports whether the project satisfies every set filter
// field.
func (f ProjectFilter) MatchProject(p *entities.Project) bool {
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if !hasAllTags(p.Tags, f.Tags) {
		return false
	}
	if f.HasRepository != nil && (p.Repository != "") != *f.HasRepository {
		return false
	}
	return true
}

// MatchTask reports whether the task satisfies every set filter field.
func (f TaskFilter) MatchTask(t *entities.Task) bool {
	if f.ProjectID != "" && t.ProjectID != f.ProjectID {
		return false
	}
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	if f.Assignee != "" && t.Assignee != f.Assignee {
		return false
	}
	return hasAllTags(t.Tags, f.Tags)
}

// Projects returns the matching subset in display order.
func Projects(all []*entities.Project, f ProjectFilter) []*entities.Project {
	out := make([]*entities.Project, 0, len(all))
	for _, p := range all {
		if f.MatchProject(p) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return stampAfter(out[i].Updated, out[j].Updated)
	})
	return out
}

// Tasks returns the matching subset in display order.
func Tasks(all []*entities.Task, f TaskFilter) []*entities.Task {
	out := make([]*entities.Task, 0, len(all))
	for _, t := range all {
		if f.MatchTask(t) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return stampAfter(out[i].Updated, out[j].Updated)
	})
	return out
}

// hasAllTags reports whether every wanted tag appears in tags.
// Filter semantics are AND: one missing tag excludes the entity.
func hasAllTags(tags, wanted []string) bool {
	if len(wanted) == 0 {
		return true
	}
	set := make(map[string]bool, len(tags))
	for _, t := range tags {
		set[t] = true
	}
	for _, w := range wanted {
		if !set[w] {
			return false
		}
	}
	return true
}

// stampAfter reports whether timestamp a is strictly after b.
// Unparseable stamps sort last; Put validation makes that unreachable
// in practice.
func stampAfter(a, b string) bool {
	ta, errA := entities.ParseStamp(a)
	tb, errB := entities.ParseStamp(b)
	if errA != nil || errB != nil {
		return errB != nil && errA == nil
	}
	return ta.After(tb)
}
