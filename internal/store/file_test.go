package store

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/taskporter/taskporter/internal/entities"
)

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	fs, err := NewFileStore(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	return fs
}

func storeProject(id string) *entities.Project {
	return &entities.Project{
		ID:          id,
		Name:        "Alpha",
		Description: "First project",
		PRD:         PRDFixture(),
		Status:      entities.ProjectPlanning,
		Tasks:       []string{},
		Tags:        []string{"backend"},
		Created:     "2026-01-01T00:00:00Z",
		Updated:     "2026-01-02T00:00:00Z",
	}
}

// PRDFixture returns a minimal valid PRD for store tests.
func PRDFixture() entities.PRD {
	return entities.PRD{
		Title:            "Alpha PRD",
		Overview:         "Overview",
		ProblemStatement: "Problem",
	}
}

func storeTask(id, projectID string) *entities.Task {
	return &entities.Task{
		ID:           id,
		ProjectID:    projectID,
		Title:        "Do the thing",
		Description:  "Details",
		Status:       entities.TaskTodo,
		Priority:     entities.PriorityMedium,
		Subtasks:     []string{},
		Dependencies: []string{},
		Created:      "2026-01-01T00:00:00Z",
		Updated:      "2026-01-01T00:00:00Z",
	}
}

// --- Round trips ---

func TestFileStore_PutGetProject_RoundTrip(t *testing.T) {
	fs := newTestFileStore(t)
	p := storeProject("p-1")
	p.Repository = "https://example.com/repo.git"
	p.PRD.Goals = []string{"g1", "g2"}
	p.PRD.Timeline = entities.Timeline{
		StartDate:  "2026-01-01",
		EndDate:    "2026-06-01",
		Milestones: []entities.Milestone{{Name: "beta", Date: "2026-03-01"}},
	}

	if err := fs.PutProject(p); err != nil {
		t.Fatalf("PutProject: %v", err)
	}
	got, err := fs.GetProject("p-1")
	if err != nil {
		t.Fatalf("GetProject: %v", err)
	}
	if !reflect.DeepEqual(p, got) {
		t.Errorf("round trip mismatch:\nput %+v\ngot %+v", p, got)
	}
}

func TestFileStore_PutGetTask_PreservesOptionalAbsence(t *testing.T) {
	fs := newTestFileStore(t)

	// One task with optionals absent, one with them present.
	bare := storeTask("t-bare", "p-1")
	if err := fs.PutTask(bare); err != nil {
		t.Fatalf("PutTask: %v", err)
	}

	hours := 8.0
	full := storeTask("t-full", "p-1")
	full.EstimatedHours = &hours
	full.ActualHours = &hours
	full.Assignee = "dana"
	full.Tags = []string{"a", "b"}
	full.DueDate = "2025-01-15"
	full.Notes = "careful here"
	if err := fs.PutTask(full); err != nil {
		t.Fatalf("PutTask: %v", err)
	}

	gotBare, err := fs.GetTask("t-bare")
	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}
	if gotBare.EstimatedHours != nil || gotBare.ActualHours != nil {
		t.Error("absent hours should stay absent, not become 0")
	}
	if !reflect.DeepEqual(bare, gotBare) {
		t.Errorf("bare round trip mismatch: %+v vs %+v", bare, gotBare)
	}

	gotFull, err := fs.GetTask("t-full")
	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}
	if !reflect.DeepEqual(full, gotFull) {
		t.Errorf("full round trip mismatch: %+v vs %+v", full, gotFull)
	}
}

func TestFileStore_Put_OverwritesExisting(t *testing.T) {
	fs := newTestFileStore(t)
	p := storeProject("p-1")
	if err := fs.PutProject(p); err != nil {
		t.Fatalf("PutProject: %v", err)
	}
	p.Name = "Renamed"
	p.Updated = "2026-01-03T00:00:00Z"
	if err := fs.PutProject(p); err != nil {
		t.Fatalf("PutProject overwrite: %v", err)
	}
	got, _ := fs.GetProject("p-1")
	if got.Name != "Renamed" {
		t.Errorf("Name = %s, want Renamed", got.Name)
	}
}

func TestFileStore_Put_RejectsInvalid(t *testing.T) {
	fs := newTestFileStore(t)
	p := storeProject("p-1")
	p.Status = "bogus"
	err := fs.PutProject(p)
	if !entities.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, statErr := os.Stat(fs.projectPath("p-1")); !os.IsNotExist(statErr) {
		t.Error("invalid record must not reach disk")
	}
}

// --- Absence vs corruption ---

func TestFileStore_Get_AbsentIsNilNotError(t *testing.T) {
	fs := newTestFileStore(t)
	p, err := fs.GetProject("nope")
	if err != nil {
		t.Fatalf("absent id should not error: %v", err)
	}
	if p != nil {
		t.Errorf("absent id should return nil, got %+v", p)
	}
}

func TestFileStore_Get_CorruptRecordSurfaced(t *testing.T) {
	fs := newTestFileStore(t)
	path := fs.taskPath("t-bad")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := fs.GetTask("t-bad")
	if err == nil {
		t.Fatal("corrupt record should surface an error")
	}
	if !entities.IsValidation(err) {
		t.Errorf("corrupt record should be a ValidationError, got %v", err)
	}
}

func TestFileStore_List_SkipsCorruptRecords(t *testing.T) {
	fs := newTestFileStore(t)
	if err := fs.PutTask(storeTask("t-ok", "p-1")); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(fs.taskPath("t-bad"), []byte("garbage"), 0o644); err != nil {
		t.Fatal(err)
	}

	tasks, err := fs.ListTasks()
	if err != nil {
		t.Fatalf("one bad file must not abort listing: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != "t-ok" {
		t.Errorf("expected only t-ok, got %d records", len(tasks))
	}
}

// --- Delete ---

func TestFileStore_Delete_ReportsExistence(t *testing.T) {
	fs := newTestFileStore(t)
	if err := fs.PutProject(storeProject("p-1")); err != nil {
		t.Fatal(err)
	}

	existed, err := fs.DeleteProject("p-1")
	if err != nil || !existed {
		t.Errorf("DeleteProject = (%v, %v), want (true, nil)", existed, err)
	}
	existed, err = fs.DeleteProject("p-1")
	if err != nil || existed {
		t.Errorf("second delete = (%v, %v), want (false, nil)", existed, err)
	}
}

// --- Atomicity ---

func TestFileStore_Write_LeavesNoTempFiles(t *testing.T) {
	fs := newTestFileStore(t)
	for i := 0; i < 5; i++ {
		if err := fs.PutTask(storeTask("t-1", "p-1")); err != nil {
			t.Fatal(err)
		}
	}
	entries, err := os.ReadDir(filepath.Join(fs.Root(), TasksDir))
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp-") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

// --- Identity & clock ---

func TestFileStore_NewID_Unique(t *testing.T) {
	fs := newTestFileStore(t)
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		id := fs.NewID()
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
}

func TestFileStore_Now_IsParseable(t *testing.T) {
	fs := newTestFileStore(t)
	if _, err := entities.ParseStamp(fs.Now()); err != nil {
		t.Errorf("Now() should produce a canonical stamp: %v", err)
	}
}

// --- Backup ---

func TestFileStore_Backup_CopiesRecordSet(t *testing.T) {
	fs := newTestFileStore(t)
	if err := fs.PutProject(storeProject("p-1")); err != nil {
		t.Fatal(err)
	}
	if err := fs.PutTask(storeTask("t-1", "p-1")); err != nil {
		t.Fatal(err)
	}

	dest, err := fs.Backup()
	if err != nil {
		t.Fatalf("Backup: %v", err)
	}
	for _, rel := range []string{
		filepath.Join(ProjectsDir, "p-1.json"),
		filepath.Join(TasksDir, "t-1.json"),
	} {
		if _, err := os.Stat(filepath.Join(dest, rel)); err != nil {
			t.Errorf("backup missing %s: %v", rel, err)
		}
	}

	// Snapshot must be self-contained: mutating the live store does
	// not touch it.
	if _, err := fs.DeleteProject("p-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dest, ProjectsDir, "p-1.json")); err != nil {
		t.Errorf("backup should survive live deletes: %v", err)
	}
}
