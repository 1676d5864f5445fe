// Package store implements durable, one-record-per-id persistence for
// projects and tasks.
//
// Two backends share the Store interface: FileStore keeps one indented
// JSON document per entity under the storage root (human-diffable, so
// the root can live under version control), and SQLiteStore keeps the
// same documents as rows in a single-table database. The storage root
// is injected once at construction; the store never rediscovers it.
package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/taskporter/taskporter/internal/entities"
)

// Store is the persistence contract the tracker depends on.
//
// Get methods return (nil, nil) when the id is absent; absence is a
// sentinel, not an error. A record that exists but no longer parses or
// validates is surfaced as an error from Get, and skipped with a
// logged warning from List.
type Store interface {
	PutProject(p *entities.Project) error
	GetProject(id string) (*entities.Project, error)
	ListProjects() ([]*entities.Project, error)
	DeleteProject(id string) (bool, error)

	PutTask(t *entities.Task) error
	GetTask(id string) (*entities.Task, error)
	ListTasks() ([]*entities.Task, error)
	DeleteTask(id string) (bool, error)

	// NewID returns a fresh globally-unique opaque identifier.
	NewID() string
	// Now returns the current UTC time in the canonical timestamp
	// format used for created/updated fields.
	Now() string

	// Backup copies the current record set into a timestamped,
	// self-contained snapshot and returns its path.
	Backup() (string, error)

	Close() error
}

// NewID produces a fresh record identifier. UUIDv4 keeps the collision
// probability cryptographically negligible.
func NewID() string {
	return uuid.NewString()
}

// Now returns the canonical timestamp for created/updated fields.
// Nanosecond precision keeps the most-recently-updated sort order
// meaningful for back-to-back programmatic writes.
func Now() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
