package store

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/taskporter/taskporter/internal/entities"
)

const (
	// ProjectsDir is the subdirectory under the root where project
	// records live.
	ProjectsDir = "projects"
	// TasksDir is the subdirectory under the root where task records
	// live.
	TasksDir = "tasks"
	// BackupsDir is the subdirectory under the root where snapshot
	// folders are written.
	BackupsDir = "backups"
)

// FileStore implements Store on the local filesystem: one indented
// JSON document per record, grouped by kind.
type FileStore struct {
	root string
	log  *zap.Logger
}

// NewFileStore creates a filesystem-backed store rooted at root,
// creating the kind directories. An unusable root is the one fatal
// condition at startup.
func NewFileStore(root string, log *zap.Logger) (*FileStore, error) {
	for _, dir := range []string{ProjectsDir, TasksDir} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			return nil, &StorageError{Op: "write", Path: filepath.Join(root, dir), Err: err}
		}
	}
	return &FileStore{root: root, log: log}, nil
}

// Root returns the storage root the store was constructed with.
func (fs *FileStore) Root() string { return fs.root }

func (fs *FileStore) projectPath(id string) string {
	return filepath.Join(fs.root, ProjectsDir, id+".json")
}

func (fs *FileStore) taskPath(id string) string {
	return filepath.Join(fs.root, TasksDir, id+".json")
}

// --- Projects ---

// PutProject validates and durably writes a project record,
// overwriting any existing record of the same id.
func (fs *FileStore) PutProject(p *entities.Project) error {
	if err := entities.ValidateProject(p); err != nil {
		return err
	}
	return fs.writeRecord(fs.projectPath(p.ID), p)
}

// GetProject returns the project, or (nil, nil) if absent. A record
// that fails to parse or validate is surfaced as an error.
func (fs *FileStore) GetProject(id string) (*entities.Project, error) {
	var p entities.Project
	ok, err := fs.readRecord(fs.projectPath(id), "project", id, &p)
	if err != nil || !ok {
		return nil, err
	}
	if err := entities.ValidateProject(&p); err != nil {
		return nil, fmt.Errorf("stored project %q: %w", id, err)
	}
	return &p, nil
}

// ListProjects returns every readable project record. Order is
// directory order; display ordering is the query engine's job.
// A record that fails to parse is skipped with a logged warning so one
// bad file never makes the whole store unusable.
func (fs *FileStore) ListProjects() ([]*entities.Project, error) {
	ids, err := fs.recordIDs(ProjectsDir)
	if err != nil {
		return nil, err
	}
	out := make([]*entities.Project, 0, len(ids))
	for _, id := range ids {
		p, err := fs.GetProject(id)
		if err != nil {
			fs.log.Warn("skipping unreadable project record",
				zap.String("id", id), zap.Error(err))
			continue
		}
		if p != nil {
			out = append(out, p)
		}
	}
	return out, nil
}

// DeleteProject removes the record and reports whether it existed.
func (fs *FileStore) DeleteProject(id string) (bool, error) {
	return fs.deleteRecord(fs.projectPath(id))
}

// --- Tasks ---

// PutTask validates and durably writes a task record.
func (fs *FileStore) PutTask(t *entities.Task) error {
	if err := entities.ValidateTask(t); err != nil {
		return err
	}
	return fs.writeRecord(fs.taskPath(t.ID), t)
}

// GetTask returns the task, or (nil, nil) if absent.
func (fs *FileStore) GetTask(id string) (*entities.Task, error) {
	var t entities.Task
	ok, err := fs.readRecord(fs.taskPath(id), "task", id, &t)
	if err != nil || !ok {
		return nil, err
	}
	if err := entities.ValidateTask(&t); err != nil {
		return nil, fmt.Errorf("stored task %q: %w", id, err)
	}
	return &t, nil
}

// ListTasks returns every readable task record, skipping corrupt ones
// with a warning.
func (fs *FileStore) ListTasks() ([]*entities.Task, error) {
	ids, err := fs.recordIDs(TasksDir)
	if err != nil {
		return nil, err
	}
	out := make([]*entities.Task, 0, len(ids))
	for _, id := range ids {
		t, err := fs.GetTask(id)
		if err != nil {
			fs.log.Warn("skipping unreadable task record",
				zap.String("id", id), zap.Error(err))
			continue
		}
		if t != nil {
			out = append(out, t)
		}
	}
	return out, nil
}

// DeleteTask removes the record and reports whether it existed.
func (fs *FileStore) DeleteTask(id string) (bool, error) {
	return fs.deleteRecord(fs.taskPath(id))
}

// --- Identity & clock ---

func (fs *FileStore) NewID() string { return NewID() }
func (fs *FileStore) Now() string   { return Now() }

// --- Backup ---

// Backup copies the current record set into
// <root>/backups/backup-<stamp>/ and returns the snapshot path.
func (fs *FileStore) Backup() (string, error) {
	stamp := time.Now().UTC().Format("20060102-150405")
	dest := filepath.Join(fs.root, BackupsDir, "backup-"+stamp)
	for _, dir := range []string{ProjectsDir, TasksDir} {
		if err := copyRecordDir(filepath.Join(fs.root, dir), filepath.Join(dest, dir)); err != nil {
			return "", &StorageError{Op: "backup", Path: dest, Err: err}
		}
	}
	return dest, nil
}

// Close is a no-op for the filesystem backend.
func (fs *FileStore) Close() error { return nil }

// --- Record plumbing ---

// writeRecord marshals v and replaces the record file atomically:
// write to a temp file in the same directory, then rename over the
// target. A reader never observes a partially written record.
func (fs *FileStore) writeRecord(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return &StorageError{Op: "write", Path: path, Err: err}
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return &StorageError{Op: "write", Path: path, Err: err}
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &StorageError{Op: "write", Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &StorageError{Op: "write", Path: path, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return &StorageError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// readRecord reads and unmarshals one record file into v. Returns
// (false, nil) when the file is absent. Bytes that fail to parse are a
// ValidationError; the store is the only layer that distinguishes
// absent from corrupt.
func (fs *FileStore) readRecord(path, kind, id string, v any) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, &StorageError{Op: "read", Path: path, Err: err}
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("stored %s %q: %w", kind, id, &entities.ValidationError{
			Kind:   kind,
			Fields: []entities.FieldError{{Path: "$", Expected: "well-formed JSON record"}},
		})
	}
	return true, nil
}

// deleteRecord removes the file, reporting whether it existed.
// Deleting an absent id is not an error.
func (fs *FileStore) deleteRecord(path string) (bool, error) {
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, &StorageError{Op: "delete", Path: path, Err: err}
	}
	return true, nil
}

// recordIDs lists the record ids (filenames minus .json) in a kind
// directory.
func (fs *FileStore) recordIDs(dir string) ([]string, error) {
	full := filepath.Join(fs.root, dir)
	entries, err := os.ReadDir(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &StorageError{Op: "list", Path: full, Err: err}
	}
	var ids []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	return ids, nil
}

// copyRecordDir copies every regular file from src into dst, creating
// dst. A missing src (no records of that kind yet) still yields an
// empty snapshot directory.
func copyRecordDir(src, dst string) error {
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return err
	}
	entries, err := os.ReadDir(src)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if err := copyFile(filepath.Join(src, e.Name()), filepath.Join(dst, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
