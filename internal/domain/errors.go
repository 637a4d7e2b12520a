package domain

import "fmt"

// Error types for consistent error handling across the BFF.

// ErrNotFound indicates a record was not found.
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrFetch indicates a backend list/read call failed. The table cache
// is cleared when this surfaces from a load.
type ErrFetch struct {
	Resource string
	Status   int
	Err      error
}

func (e *ErrFetch) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s failed: status %d", e.Resource, e.Status)
	}
	return fmt.Sprintf("fetch %s failed: %v", e.Resource, e.Err)
}

func (e *ErrFetch) Unwrap() error {
	return e.Err
}

// ErrMutation indicates a backend write (save, duplicate, delete,
// create) failed. The cache is left untouched when this surfaces.
type ErrMutation struct {
	Resource string
	Op       string
	Status   int
	Err      error
}

func (e *ErrMutation) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s %s failed: status %d", e.Op, e.Resource, e.Status)
	}
	return fmt.Sprintf("%s %s failed: %v", e.Op, e.Resource, e.Err)
}

func (e *ErrMutation) Unwrap() error {
	return e.Err
}

// ErrAlreadyDeleted indicates a delete hit a record the backend no
// longer has. Callers treat it as success for the remote state but
// must not touch the local cache.
type ErrAlreadyDeleted struct {
	Resource string
	ID       string
}

func (e *ErrAlreadyDeleted) Error() string {
	return fmt.Sprintf("%s already deleted: %s", e.Resource, e.ID)
}

// ErrExternalService indicates a failure in an external service call.
type ErrExternalService struct {
	Service string
	Err     error
}

func (e *ErrExternalService) Error() string {
	return fmt.Sprintf("external service error [%s]: %v", e.Service, e.Err)
}

func (e *ErrExternalService) Unwrap() error {
	return e.Err
}

// ErrCircuitOpen indicates the circuit breaker is open.
type ErrCircuitOpen struct {
	Service string
}

func (e *ErrCircuitOpen) Error() string {
	return fmt.Sprintf("circuit breaker open for service: %s", e.Service)
}

// ErrValidation indicates a validation error (bad input).
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error on '%s': %s", e.Field, e.Message)
}

// ErrFormValidation carries per-field messages for an entry form that
// failed validation. The form is not submitted and keeps its input.
type ErrFormValidation struct {
	Fields map[string]string
}

func (e *ErrFormValidation) Error() string {
	return fmt.Sprintf("form validation failed: %d field(s)", len(e.Fields))
}
