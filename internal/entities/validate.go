package entities

import (
	"fmt"
	"strings"
	"time"
)

// ParseStamp parses a created/updated/dueDate value. Full RFC 3339
// timestamps (with or without sub-second precision) and bare
// YYYY-MM-DD dates are both accepted; agent callers routinely send
// plain dates for deadlines.
func ParseStamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// ValidateProject checks a project against the schema. It returns nil
// or a *ValidationError listing every violating field path.
func ValidateProject(p *Project) error {
	v := &violations{kind: "project"}
	if p == nil {
		v.add("$", "project object")
		return v.err()
	}

	requireText(v, "id", p.ID)
	requireText(v, "name", p.Name)
	requireText(v, "description", p.Description)
	if err := ValidateProjectStatus(p.Status); err != nil {
		v.add("status", "one of planning, in_progress, on_hold, completed, cancelled")
	}
	validatePRD(v, "prd", &p.PRD)
	validateStamps(v, p.Created, p.Updated)
	return v.err()
}

// ValidateTask checks a task against the schema. It returns nil or a
// *ValidationError listing every violating field path.
func ValidateTask(t *Task) error {
	v := &violations{kind: "task"}
	if t == nil {
		v.add("$", "task object")
		return v.err()
	}

	requireText(v, "id", t.ID)
	requireText(v, "projectId", t.ProjectID)
	requireText(v, "title", t.Title)
	requireText(v, "description", t.Description)
	if err := ValidateTaskStatus(t.Status); err != nil {
		v.add("status", "one of todo, in_progress, blocked, review, done, cancelled")
	}
	if err := ValidatePriority(t.Priority); err != nil {
		v.add("priority", "one of low, medium, high, critical")
	}
	if t.EstimatedHours != nil && *t.EstimatedHours < 0 {
		v.add("estimatedHours", "non-negative number")
	}
	if t.ActualHours != nil && *t.ActualHours < 0 {
		v.add("actualHours", "non-negative number")
	}
	if t.DueDate != "" {
		if _, err := ParseStamp(t.DueDate); err != nil {
			v.add("dueDate", "RFC 3339 timestamp or YYYY-MM-DD date")
		}
	}
	validateStamps(v, t.Created, t.Updated)
	return v.err()
}

// validatePRD checks the embedded PRD. path is the prefix for reported
// field paths ("prd").
func validatePRD(v *violations, path string, prd *PRD) {
	requireText(v, path+".title", prd.Title)
	requireText(v, path+".overview", prd.Overview)
	requireText(v, path+".problemStatement", prd.ProblemStatement)

	seen := map[string]bool{}
	for i, r := range prd.Requirements {
		p := fmt.Sprintf("%s.requirements[%d]", path, i)
		requireText(v, p+".id", r.ID)
		requireText(v, p+".title", r.Title)
		requireText(v, p+".description", r.Description)
		if err := ValidatePriority(r.Priority); err != nil {
			v.add(p+".priority", "one of low, medium, high, critical")
		}
		if r.ID != "" && seen[r.ID] {
			v.addf(p+".id", "id unique within the PRD (%q repeats)", r.ID)
		}
		seen[r.ID] = true
	}

	validateTimeline(v, path+".timeline", &prd.Timeline)

	for i, rm := range prd.RisksAndMitigation {
		p := fmt.Sprintf("%s.risksAndMitigation[%d]", path, i)
		requireText(v, p+".risk", rm.Risk)
		requireText(v, p+".mitigation", rm.Mitigation)
	}
}

// validateTimeline checks optional dates and their ordering. An empty
// timeline is valid. End-before-start is rejected: the original left
// this unvalidated, but a reversed range is never meaningful.
func validateTimeline(v *violations, path string, tl *Timeline) {
	var start, end time.Time
	var startOK, endOK bool
	if tl.StartDate != "" {
		t, err := ParseStamp(tl.StartDate)
		if err != nil {
			v.add(path+".startDate", "RFC 3339 timestamp or YYYY-MM-DD date")
		} else {
			start, startOK = t, true
		}
	}
	if tl.EndDate != "" {
		t, err := ParseStamp(tl.EndDate)
		if err != nil {
			v.add(path+".endDate", "RFC 3339 timestamp or YYYY-MM-DD date")
		} else {
			end, endOK = t, true
		}
	}
	if startOK && endOK && end.Before(start) {
		v.add(path+".endDate", "date on or after startDate")
	}
	for i, m := range tl.Milestones {
		p := fmt.Sprintf("%s.milestones[%d]", path, i)
		requireText(v, p+".name", m.Name)
		if m.Date == "" {
			v.add(p+".date", "non-empty date")
		} else if _, err := ParseStamp(m.Date); err != nil {
			v.add(p+".date", "RFC 3339 timestamp or YYYY-MM-DD date")
		}
	}
}

// validateStamps checks created/updated presence, format, and ordering.
func validateStamps(v *violations, created, updated string) {
	var c, u time.Time
	var cOK, uOK bool
	if created == "" {
		v.add("created", "non-empty RFC 3339 timestamp")
	} else if t, err := ParseStamp(created); err != nil {
		v.add("created", "RFC 3339 timestamp")
	} else {
		c, cOK = t, true
	}
	if updated == "" {
		v.add("updated", "non-empty RFC 3339 timestamp")
	} else if t, err := ParseStamp(updated); err != nil {
		v.add("updated", "RFC 3339 timestamp")
	} else {
		u, uOK = t, true
	}
	if cOK && uOK && u.Before(c) {
		v.add("updated", "timestamp on or after created")
	}
}

func requireText(v *violations, path, value string) {
	if strings.TrimSpace(value) == "" {
		v.add(path, "non-empty string")
	}
}
