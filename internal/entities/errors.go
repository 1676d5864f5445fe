package entities

import (
	"errors"
	"fmt"
	"strings"
)

// FieldError names one violating field and the shape that was expected
// there.
type FieldError struct {
	Path     string `json:"path"`
	Expected string `json:"expected"`
}

func (e FieldError) String() string {
	return fmt.Sprintf("%s: expected %s", e.Path, e.Expected)
}

// ValidationError reports every field that failed validation. It is
// returned both for malformed caller input and for stored records that
// no longer parse into a valid entity.
type ValidationError struct {
	Kind   string       // "project" or "task"
	Fields []FieldError // at least one entry
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.String()
	}
	return fmt.Sprintf("invalid %s: %s", e.Kind, strings.Join(parts, "; "))
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// violations accumulates field errors while a validator walks an entity.
type violations struct {
	kind   string
	fields []FieldError
}

func (v *violations) add(path, expected string) {
	v.fields = append(v.fields, FieldError{Path: path, Expected: expected})
}

func (v *violations) addf(path, format string, args ...any) {
	v.add(path, fmt.Sprintf(format, args...))
}

// err returns the accumulated ValidationError, or nil if nothing failed.
func (v *violations) err() error {
	if len(v.fields) == 0 {
		return nil
	}
	return &ValidationError{Kind: v.kind, Fields: v.fields}
}
