package tracker

import (
	"errors"
	"reflect"
	"testing"

	"github.com/taskporter/taskporter/internal/entities"
)

func TestDecomposeTask_CreatesLinkedSubtasks(t *testing.T) {
	svc := newTestService(t)
	p := mustCreateProject(t, svc, "Alpha")

	parent, err := svc.CreateTask(TaskInput{
		ProjectID:   p.ID,
		Title:       "Build importer",
		Description: "d",
		Priority:    entities.PriorityHigh,
		Assignee:    "rose",
		Tags:        []string{"import"},
	})
	if err != nil {
		t.Fatal(err)
	}

	est := 2.0
	children, err := svc.DecomposeTask(parent.ID, []SubtaskSpec{
		{Title: "parse", Description: "d", Priority: entities.PriorityMedium, EstimatedHours: &est},
		{Title: "load", Description: "d", Priority: entities.PriorityLow},
	})
	if err != nil {
		t.Fatalf("DecomposeTask: %v", err)
	}
	if len(children) != 2 {
		t.Fatalf("len = %d, want 2", len(children))
	}

	for _, child := range children {
		if child.ProjectID != p.ID {
			t.Errorf("child inherits project, got %s", child.ProjectID)
		}
		if child.Status != entities.TaskTodo {
			t.Errorf("child status = %s, want todo", child.Status)
		}
		if !reflect.DeepEqual(child.Dependencies, []string{parent.ID}) {
			t.Errorf("child dependencies = %v, want [%s]", child.Dependencies, parent.ID)
		}
		if child.Assignee != "rose" {
			t.Errorf("child assignee = %q, want snapshot of parent", child.Assignee)
		}
		if !reflect.DeepEqual(child.Tags, []string{"import"}) {
			t.Errorf("child tags = %v, want snapshot of parent", child.Tags)
		}
		if child.Notes != "Subtask of: Build importer" {
			t.Errorf("child notes = %q", child.Notes)
		}
	}

	got, _ := svc.GetTask(parent.ID)
	want := []string{children[0].ID, children[1].ID}
	if !reflect.DeepEqual(got.Subtasks, want) {
		t.Errorf("parent subtasks = %v, want %v", got.Subtasks, want)
	}
	if got.Updated == parent.Updated {
		t.Error("decomposition must refresh the parent")
	}
}

func TestDecomposeTask_AppendsAcrossCalls(t *testing.T) {
	svc := newTestService(t)
	p := mustCreateProject(t, svc, "Alpha")
	parent := mustCreateTask(t, svc, p.ID, "parent")

	first, err := svc.DecomposeTask(parent.ID, []SubtaskSpec{
		{Title: "one", Description: "d", Priority: entities.PriorityLow},
	})
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.DecomposeTask(parent.ID, []SubtaskSpec{
		{Title: "two", Description: "d", Priority: entities.PriorityLow},
	})
	if err != nil {
		t.Fatal(err)
	}

	got, _ := svc.GetTask(parent.ID)
	want := []string{first[0].ID, second[0].ID}
	if !reflect.DeepEqual(got.Subtasks, want) {
		t.Errorf("subtasks = %v, want earlier ids before later ids %v", got.Subtasks, want)
	}
}

func TestDecomposeTask_ChildrenGetIndependentTagCopies(t *testing.T) {
	svc := newTestService(t)
	p := mustCreateProject(t, svc, "Alpha")

	parent, err := svc.CreateTask(TaskInput{
		ProjectID:   p.ID,
		Title:       "parent",
		Description: "d",
		Priority:    entities.PriorityLow,
		Tags:        []string{"import", "q3"},
	})
	if err != nil {
		t.Fatal(err)
	}

	children, err := svc.DecomposeTask(parent.ID, []SubtaskSpec{
		{Title: "one", Description: "d", Priority: entities.PriorityLow},
		{Title: "two", Description: "d", Priority: entities.PriorityLow},
	})
	if err != nil {
		t.Fatal(err)
	}

	children[0].Tags[0] = "mutated"
	if children[1].Tags[0] == "mutated" {
		t.Error("children must not share tag storage")
	}
}

func TestDecomposeTask_UnknownParent(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.DecomposeTask("nope", []SubtaskSpec{
		{Title: "one", Description: "d", Priority: entities.PriorityLow},
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDecomposeTask_RejectsBadPriorityBeforeWriting(t *testing.T) {
	svc := newTestService(t)
	p := mustCreateProject(t, svc, "Alpha")
	parent := mustCreateTask(t, svc, p.ID, "parent")

	_, err := svc.DecomposeTask(parent.ID, []SubtaskSpec{
		{Title: "ok", Description: "d", Priority: entities.PriorityLow},
		{Title: "bad", Description: "d", Priority: "urgent"},
	})
	if !entities.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	got, _ := svc.GetTask(parent.ID)
	if len(got.Subtasks) != 0 {
		t.Errorf("rejected decomposition must not touch the parent, subtasks = %v", got.Subtasks)
	}
}
