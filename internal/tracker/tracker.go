// Package tracker implements the tracker's operations over the record
// store: entity creation and merge-style updates, cascade deletion,
// derived rollups (status reports, summaries), and task decomposition.
//
// This layer owns the policy the store does not: a task's projectId
// must reference an existing project at creation time, a missing
// mandatory target becomes an explicit NotFound failure, and dependency
// cycles are rejected before they reach disk.
package tracker

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/taskporter/taskporter/internal/store"
)

// ErrNotFound marks operations whose mandatory target does not exist
// (status reports, decomposition, deliberate lookups by the facade).
// Plain reads model absence as a nil result instead.
var ErrNotFound = errors.New("not found")

// Service executes tracker operations against a store. All methods are
// sequential; the deployment model is one process per storage root,
// so no locking is done here.
type Service struct {
	store store.Store
	log   *zap.Logger
}

// NewService creates a Service over the given store.
func NewService(st store.Store, log *zap.Logger) *Service {
	return &Service{store: st, log: log}
}

// Backup snapshots the current record set and returns the snapshot
// path.
func (s *Service) Backup() (string, error) {
	return s.store.Backup()
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
}
