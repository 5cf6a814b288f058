package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// Implementing this interface enables extensible error handling at the
// request boundary.
type HTTPError interface {
	error
	StatusCode() int
}

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidID       = errors.New("invalid id")
	ErrVersionConflict = errors.New("version conflict")
	ErrValidation      = errors.New("validation failed")
)

// NotFoundError indicates a character was not found
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string        { return e.Message }
func (e *NotFoundError) StatusCode() int      { return http.StatusNotFound }
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// InvalidIDError indicates an id that fails charset validation. It is raised
// before any filesystem access, so a bad id can never reach disk.
type InvalidIDError struct {
	ID string
}

func (e *InvalidIDError) Error() string        { return fmt.Sprintf("invalid character id %q", e.ID) }
func (e *InvalidIDError) StatusCode() int      { return http.StatusBadRequest }
func (e *InvalidIDError) Is(target error) bool { return target == ErrInvalidID }

// ValidationError indicates invalid input
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string        { return e.Message }
func (e *ValidationError) StatusCode() int      { return http.StatusBadRequest }
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// VersionConflictError reports an optimistic concurrency failure: the
// caller's expectedVersion no longer matches the stored document. Recoverable
// by reloading and retrying.
type VersionConflictError struct {
	Expected int
	Current  int
}

func (e *VersionConflictError) Error() string {
	return fmt.Sprintf("version conflict: expected %d, stored %d", e.Expected, e.Current)
}

func (e *VersionConflictError) StatusCode() int      { return http.StatusConflict }
func (e *VersionConflictError) Is(target error) bool { return target == ErrVersionConflict }
