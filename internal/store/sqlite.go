package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/taskporter/taskporter/internal/entities"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

const (
	kindProject = "project"
	kindTask    = "task"

	// DBFile is the database filename under the storage root.
	DBFile = "taskporter.db"
)

// SQLiteStore implements Store on a single-table SQLite database. It
// persists the same JSON documents as FileStore, one row per record,
// keyed by (kind, id). rowid preserves insertion order for listing.
type SQLiteStore struct {
	db   *sql.DB
	root string
	log  *zap.Logger
}

// NewSQLiteStore opens (creating if needed) the database under root.
func NewSQLiteStore(root string, log *zap.Logger) (*SQLiteStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, &StorageError{Op: "write", Path: root, Err: err}
	}

	dbPath := filepath.Join(root, DBFile)
	db, err := openDB("sqlite", dbPath)
	if err != nil {
		return nil, &StorageError{Op: "read", Path: dbPath, Err: err}
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, &StorageError{Op: "write", Path: dbPath, Err: fmt.Errorf("pragma %q: %w", p, err)}
		}
	}

	schema := `
	CREATE TABLE IF NOT EXISTS records (
		kind TEXT NOT NULL,
		id   TEXT NOT NULL,
		data TEXT NOT NULL,
		PRIMARY KEY (kind, id)
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, &StorageError{Op: "write", Path: dbPath, Err: err}
	}

	return &SQLiteStore{db: db, root: root, log: log}, nil
}

// --- Projects ---

func (s *SQLiteStore) PutProject(p *entities.Project) error {
	if err := entities.ValidateProject(p); err != nil {
		return err
	}
	return s.putRecord(kindProject, p.ID, p)
}

func (s *SQLiteStore) GetProject(id string) (*entities.Project, error) {
	var p entities.Project
	ok, err := s.getRecord(kindProject, id, &p)
	if err != nil || !ok {
		return nil, err
	}
	if err := entities.ValidateProject(&p); err != nil {
		return nil, fmt.Errorf("stored project %q: %w", id, err)
	}
	return &p, nil
}

func (s *SQLiteStore) ListProjects() ([]*entities.Project, error) {
	rows, err := s.listRecords(kindProject)
	if err != nil {
		return nil, err
	}
	out := make([]*entities.Project, 0, len(rows))
	for _, row := range rows {
		var p entities.Project
		if err := json.Unmarshal([]byte(row.json), &p); err != nil {
			s.log.Warn("skipping unreadable project record",
				zap.String("id", row.id), zap.Error(err))
			continue
		}
		if err := entities.ValidateProject(&p); err != nil {
			s.log.Warn("skipping invalid project record",
				zap.String("id", row.id), zap.Error(err))
			continue
		}
		out = append(out, &p)
	}
	return out, nil
}

func (s *SQLiteStore) DeleteProject(id string) (bool, error) {
	return s.deleteRecord(kindProject, id)
}

// --- Tasks ---

func (s *SQLiteStore) PutTask(t *entities.Task) error {
	if err := entities.ValidateTask(t); err != nil {
		return err
	}
	return s.putRecord(kindTask, t.ID, t)
}

func (s *SQLiteStore) GetTask(id string) (*entities.Task, error) {
	var t entities.Task
	ok, err := s.getRecord(kindTask, id, &t)
	if err != nil || !ok {
		return nil, err
	}
	if err := entities.ValidateTask(&t); err != nil {
		return nil, fmt.Errorf("stored task %q: %w", id, err)
	}
	return &t, nil
}

func (s *SQLiteStore) ListTasks() ([]*entities.Task, error) {
	rows, err := s.listRecords(kindTask)
	if err != nil {
		return nil, err
	}
	out := make([]*entities.Task, 0, len(rows))
	for _, row := range rows {
		var t entities.Task
		if err := json.Unmarshal([]byte(row.json), &t); err != nil {
			s.log.Warn("skipping unreadable task record",
				zap.String("id", row.id), zap.Error(err))
			continue
		}
		if err := entities.ValidateTask(&t); err != nil {
			s.log.Warn("skipping invalid task record",
				zap.String("id", row.id), zap.Error(err))
			continue
		}
		out = append(out, &t)
	}
	return out, nil
}

func (s *SQLiteStore) DeleteTask(id string) (bool, error) {
	return s.deleteRecord(kindTask, id)
}

// --- Identity & clock ---

func (s *SQLiteStore) NewID() string { return NewID() }
func (s *SQLiteStore) Now() string   { return Now() }

// --- Backup ---

// Backup snapshots the database file into a timestamped folder.
// VACUUM INTO writes a consistent, self-contained copy even with WAL
// journaling active.
func (s *SQLiteStore) Backup() (string, error) {
	stamp := time.Now().UTC().Format("20060102-150405")
	dest := filepath.Join(s.root, BackupsDir, "backup-"+stamp)
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return "", &StorageError{Op: "backup", Path: dest, Err: err}
	}
	target := filepath.Join(dest, DBFile)
	if _, err := s.db.Exec("VACUUM INTO ?", target); err != nil {
		return "", &StorageError{Op: "backup", Path: target, Err: err}
	}
	return dest, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error { return s.db.Close() }

// --- Record plumbing ---

type recordRow struct {
	id   string
	json string
}

func (s *SQLiteStore) putRecord(kind, id string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return &StorageError{Op: "write", Path: kind + "/" + id, Err: err}
	}
	_, err = s.db.Exec(
		`INSERT INTO records (kind, id, data) VALUES (?, ?, ?)
		 ON CONFLICT (kind, id) DO UPDATE SET data = excluded.data`,
		kind, id, string(data),
	)
	if err != nil {
		return &StorageError{Op: "write", Path: kind + "/" + id, Err: err}
	}
	return nil
}

func (s *SQLiteStore) getRecord(kind, id string, v any) (bool, error) {
	var data string
	err := s.db.QueryRow(`SELECT data FROM records WHERE kind = ? AND id = ?`, kind, id).Scan(&data)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, &StorageError{Op: "read", Path: kind + "/" + id, Err: err}
	}
	if err := json.Unmarshal([]byte(data), v); err != nil {
		return false, fmt.Errorf("stored %s %q: %w", kind, id, &entities.ValidationError{
			Kind:   kind,
			Fields: []entities.FieldError{{Path: "$", Expected: "well-formed JSON record"}},
		})
	}
	return true, nil
}

// listRecords returns rows in rowid (insertion) order so the query
// engine's stable sort has a deterministic tie-break.
func (s *SQLiteStore) listRecords(kind string) ([]recordRow, error) {
	rows, err := s.db.Query(`SELECT id, data FROM records WHERE kind = ? ORDER BY rowid`, kind)
	if err != nil {
		return nil, &StorageError{Op: "list", Path: kind, Err: err}
	}
	defer rows.Close()

	var out []recordRow
	for rows.Next() {
		var r recordRow
		if err := rows.Scan(&r.id, &r.json); err != nil {
			return nil, &StorageError{Op: "list", Path: kind, Err: err}
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "list", Path: kind, Err: err}
	}
	return out, nil
}

func (s *SQLiteStore) deleteRecord(kind, id string) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM records WHERE kind = ? AND id = ?`, kind, id)
	if err != nil {
		return false, &StorageError{Op: "delete", Path: kind + "/" + id, Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, &StorageError{Op: "delete", Path: kind + "/" + id, Err: err}
	}
	return n > 0, nil
}
