package entities

import (
	"strings"
	"testing"
)

// --- Helpers: minimal valid entities ---

func validProject() *Project {
	return &Project{
		ID:          "p-1",
		Name:        "Alpha",
		Description: "First project",
		PRD: PRD{
			Title:            "Alpha PRD",
			Overview:         "Overview",
			ProblemStatement: "A problem worth solving",
		},
		Status:  ProjectPlanning,
		Tasks:   []string{},
		Tags:    []string{},
		Created: "2026-01-01T00:00:00Z",
		Updated: "2026-01-01T00:00:00Z",
	}
}

func validTask() *Task {
	return &Task{
		ID:           "t-1",
		ProjectID:    "p-1",
		Title:        "Do the thing",
		Description:  "Details",
		Status:       TaskTodo,
		Priority:     PriorityMedium,
		Subtasks:     []string{},
		Dependencies: []string{},
		Created:      "2026-01-01T00:00:00Z",
		Updated:      "2026-01-01T00:00:00Z",
	}
}

func fieldPaths(t *testing.T, err error) []string {
	t.Helper()
	ve, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T: %v", err, err)
	}
	paths := make([]string, len(ve.Fields))
	for i, f := range ve.Fields {
		paths[i] = f.Path
	}
	return paths
}

func assertViolates(t *testing.T, err error, path string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected validation error on %s, got nil", path)
	}
	for _, p := range fieldPaths(t, err) {
		if p == path {
			return
		}
	}
	t.Errorf("expected violation on %s, got %v", path, err)
}

// --- Enum validators ---

func TestValidateProjectStatus(t *testing.T) {
	for _, s := range []ProjectStatus{ProjectPlanning, ProjectInProgress, ProjectOnHold, ProjectCompleted, ProjectCancelled} {
		if err := ValidateProjectStatus(s); err != nil {
			t.Errorf("status %q should be valid: %v", s, err)
		}
	}
	if err := ValidateProjectStatus("archived"); err == nil {
		t.Error("unknown status should fail")
	}
}

func TestValidateTaskStatus(t *testing.T) {
	for _, s := range []TaskStatus{TaskTodo, TaskInProgress, TaskBlocked, TaskReview, TaskDone, TaskCancelled} {
		if err := ValidateTaskStatus(s); err != nil {
			t.Errorf("status %q should be valid: %v", s, err)
		}
	}
	if err := ValidateTaskStatus("paused"); err == nil {
		t.Error("unknown status should fail")
	}
}

func TestValidatePriority(t *testing.T) {
	if err := ValidatePriority(PriorityCritical); err != nil {
		t.Errorf("critical should be valid: %v", err)
	}
	if err := ValidatePriority("urgent"); err == nil {
		t.Error("unknown priority should fail")
	}
}

// --- Project validation ---

func TestValidateProject_Valid(t *testing.T) {
	if err := ValidateProject(validProject()); err != nil {
		t.Fatalf("valid project rejected: %v", err)
	}
}

func TestValidateProject_MissingRequiredText(t *testing.T) {
	tests := []struct {
		path   string
		mutate func(*Project)
	}{
		{"id", func(p *Project) { p.ID = "" }},
		{"name", func(p *Project) { p.Name = "  " }},
		{"description", func(p *Project) { p.Description = "" }},
		{"prd.title", func(p *Project) { p.PRD.Title = "" }},
		{"prd.overview", func(p *Project) { p.PRD.Overview = "" }},
		{"prd.problemStatement", func(p *Project) { p.PRD.ProblemStatement = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			p := validProject()
			tt.mutate(p)
			assertViolates(t, ValidateProject(p), tt.path)
		})
	}
}

func TestValidateProject_UnknownStatus(t *testing.T) {
	p := validProject()
	p.Status = "closed"
	assertViolates(t, ValidateProject(p), "status")
}

func TestValidateProject_CollectsMultipleViolations(t *testing.T) {
	p := validProject()
	p.Name = ""
	p.Status = "nope"
	err := ValidateProject(p)
	if err == nil {
		t.Fatal("expected error")
	}
	if got := len(fieldPaths(t, err)); got < 2 {
		t.Errorf("expected at least 2 violations, got %d", got)
	}
}

func TestValidateProject_RequirementFields(t *testing.T) {
	p := validProject()
	p.PRD.Requirements = []Requirement{
		{ID: "R1", Title: "Req", Description: "d", Priority: PriorityHigh},
		{ID: "R1", Title: "Dup id", Description: "d", Priority: "severe"},
	}
	err := ValidateProject(p)
	assertViolates(t, err, "prd.requirements[1].priority")
	assertViolates(t, err, "prd.requirements[1].id")
}

func TestValidateProject_TimelineEndBeforeStart(t *testing.T) {
	p := validProject()
	p.PRD.Timeline = Timeline{StartDate: "2026-06-01", EndDate: "2026-01-01"}
	assertViolates(t, ValidateProject(p), "prd.timeline.endDate")
}

func TestValidateProject_TimelineEmptyIsValid(t *testing.T) {
	p := validProject()
	p.PRD.Timeline = Timeline{}
	if err := ValidateProject(p); err != nil {
		t.Errorf("empty timeline rejected: %v", err)
	}
}

func TestValidateProject_MilestoneNeedsDate(t *testing.T) {
	p := validProject()
	p.PRD.Timeline.Milestones = []Milestone{{Name: "beta"}}
	assertViolates(t, ValidateProject(p), "prd.timeline.milestones[0].date")
}

func TestValidateProject_UpdatedBeforeCreated(t *testing.T) {
	p := validProject()
	p.Created = "2026-02-01T00:00:00Z"
	p.Updated = "2026-01-01T00:00:00Z"
	assertViolates(t, ValidateProject(p), "updated")
}

// --- Task validation ---

func TestValidateTask_Valid(t *testing.T) {
	if err := ValidateTask(validTask()); err != nil {
		t.Fatalf("valid task rejected: %v", err)
	}
}

func TestValidateTask_NegativeHours(t *testing.T) {
	neg := -1.0
	tk := validTask()
	tk.EstimatedHours = &neg
	assertViolates(t, ValidateTask(tk), "estimatedHours")

	tk = validTask()
	tk.ActualHours = &neg
	assertViolates(t, ValidateTask(tk), "actualHours")
}

func TestValidateTask_DueDateFormats(t *testing.T) {
	for _, due := range []string{"2025-01-15", "2025-01-15T10:00:00Z", "2025-01-15T10:00:00.123456Z"} {
		tk := validTask()
		tk.DueDate = due
		if err := ValidateTask(tk); err != nil {
			t.Errorf("dueDate %q rejected: %v", due, err)
		}
	}
	tk := validTask()
	tk.DueDate = "next tuesday"
	assertViolates(t, ValidateTask(tk), "dueDate")
}

func TestValidateTask_UnknownEnums(t *testing.T) {
	tk := validTask()
	tk.Status = "waiting"
	tk.Priority = "asap"
	err := ValidateTask(tk)
	assertViolates(t, err, "status")
	assertViolates(t, err, "priority")
}

func TestValidationError_MessageNamesFields(t *testing.T) {
	p := validProject()
	p.Name = ""
	err := ValidateProject(p)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "name") {
		t.Errorf("error message should name the field: %v", err)
	}
}
