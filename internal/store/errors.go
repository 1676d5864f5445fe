package store

import (
	"errors"
	"fmt"
)

// StorageError means the durable medium failed; a write could not
// complete or a read hit something other than "absent". It is always
// surfaced to the caller, never retried here.
type StorageError struct {
	Op   string // "write", "read", "list", "delete", "backup"
	Path string // file or database path involved
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// IsStorage reports whether err is (or wraps) a StorageError.
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
