package tracker

import (
	"errors"
	"testing"

	"github.com/taskporter/taskporter/internal/entities"
)

func TestProjectStatus_EmptyProject(t *testing.T) {
	svc := newTestService(t)
	p := mustCreateProject(t, svc, "Alpha")

	report, err := svc.ProjectStatus(p.ID)
	if err != nil {
		t.Fatalf("ProjectStatus: %v", err)
	}
	if report.TaskCount != 0 || report.CompletedTasks != 0 {
		t.Errorf("counts = %d/%d, want 0/0", report.TaskCount, report.CompletedTasks)
	}
	if report.CompletionPercentage != 0 {
		t.Errorf("completion = %v, want 0 for empty project", report.CompletionPercentage)
	}
	if report.TotalEstimatedHours != 0 || report.TotalActualHours != 0 {
		t.Error("hour totals should be zero")
	}
	if len(report.UpcomingDeadlines) != 0 {
		t.Errorf("deadlines = %v, want empty", report.UpcomingDeadlines)
	}
}

func TestProjectStatus_UnknownProject(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.ProjectStatus("nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProjectStatus_CountsAndHours(t *testing.T) {
	svc := newTestService(t)
	p := mustCreateProject(t, svc, "Alpha")

	est := 3.0
	if _, err := svc.CreateTask(TaskInput{
		ProjectID: p.ID, Title: "a", Description: "d",
		Priority: entities.PriorityLow, EstimatedHours: &est,
	}); err != nil {
		t.Fatal(err)
	}
	done := mustCreateTask(t, svc, p.ID, "b")
	status := entities.TaskDone
	hours := 5.0
	if _, err := svc.UpdateTask(done.ID, TaskUpdate{Status: &status, ActualHours: &hours}); err != nil {
		t.Fatal(err)
	}

	report, err := svc.ProjectStatus(p.ID)
	if err != nil {
		t.Fatalf("ProjectStatus: %v", err)
	}
	if report.TaskCount != 2 || report.CompletedTasks != 1 {
		t.Errorf("counts = %d/%d, want 2/1", report.TaskCount, report.CompletedTasks)
	}
	if report.CompletionPercentage != 50 {
		t.Errorf("completion = %v, want 50", report.CompletionPercentage)
	}
	if report.TotalEstimatedHours != 3 {
		t.Errorf("estimated = %v, want 3", report.TotalEstimatedHours)
	}
	if report.TotalActualHours != 5 {
		t.Errorf("actual = %v, want 5", report.TotalActualHours)
	}
	if report.CompletionPercentage < 0 || report.CompletionPercentage > 100 {
		t.Error("completion must stay within [0,100]")
	}
}

func TestProjectStatus_DeadlinesSortedAndCapped(t *testing.T) {
	svc := newTestService(t)
	p := mustCreateProject(t, svc, "Alpha")

	dates := []string{
		"2026-09-07", "2026-09-03", "2026-09-05",
		"2026-09-01", "2026-09-06", "2026-09-04",
	}
	for _, d := range dates {
		due := d
		if _, err := svc.CreateTask(TaskInput{
			ProjectID: p.ID, Title: "t " + d, Description: "d",
			Priority: entities.PriorityLow, DueDate: due,
		}); err != nil {
			t.Fatal(err)
		}
	}

	// Completed tasks never show up as deadlines, even when due soonest.
	finished, err := svc.CreateTask(TaskInput{
		ProjectID: p.ID, Title: "finished", Description: "d",
		Priority: entities.PriorityLow, DueDate: "2026-08-30",
	})
	if err != nil {
		t.Fatal(err)
	}
	status := entities.TaskDone
	if _, err := svc.UpdateTask(finished.ID, TaskUpdate{Status: &status}); err != nil {
		t.Fatal(err)
	}

	report, err := svc.ProjectStatus(p.ID)
	if err != nil {
		t.Fatalf("ProjectStatus: %v", err)
	}
	if len(report.UpcomingDeadlines) != 5 {
		t.Fatalf("deadlines = %d entries, want cap of 5", len(report.UpcomingDeadlines))
	}
	want := []string{"2026-09-01", "2026-09-03", "2026-09-04", "2026-09-05", "2026-09-06"}
	for i, entry := range report.UpcomingDeadlines {
		if entry.DueDate != want[i] {
			t.Errorf("deadline[%d] = %s, want %s", i, entry.DueDate, want[i])
		}
	}
}
