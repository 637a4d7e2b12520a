package table

import (
	"fmt"
	"sync"

	"github.com/rmeucci/portfolio-bff-go/internal/domain"
)

// Editor is the draft-edit state machine for one view: at most one
// record is checked out at a time, edits accumulate on a copy, and the
// cached record stays untouched until a confirmed save succeeds.
type Editor[T any] struct {
	mu     sync.Mutex
	id     func(T) int64
	set    func(rec *T, field string, value any) error
	active bool
	editID int64
	draft  T
}

// NewEditor builds an editor using the given id accessor and field
// setter.
func NewEditor[T any](id func(T) int64, set func(*T, string, any) error) *Editor[T] {
	return &Editor[T]{id: id, set: set}
}

// StartEdit checks the record out for editing. The draft starts as a
// copy of the record; starting a new edit discards any previous draft.
func (e *Editor[T]) StartEdit(rec T) {
	e.mu.Lock()
	e.active = true
	e.editID = e.id(rec)
	e.draft = rec
	e.mu.Unlock()
}

// ChangeField writes one field on the draft. Editing must be active.
func (e *Editor[T]) ChangeField(field string, value any) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.active {
		return &domain.ErrValidation{Field: field, Message: "no record is being edited"}
	}
	return e.set(&e.draft, field, value)
}

// Draft returns the current draft. ok is false outside an edit.
func (e *Editor[T]) Draft() (T, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.draft, e.active
}

// EditingID returns the id of the checked-out record, or 0 when idle.
func (e *Editor[T]) EditingID() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.active {
		return 0
	}
	return e.editID
}

// Cancel discards the draft unconditionally and returns to viewing.
func (e *Editor[T]) Cancel() {
	e.mu.Lock()
	e.reset()
	e.mu.Unlock()
}

// Discard exits edit mode only if the given record is the one checked
// out. Called when a record is deleted out from under an edit.
func (e *Editor[T]) Discard(id int64) {
	e.mu.Lock()
	if e.active && e.editID == id {
		e.reset()
	}
	e.mu.Unlock()
}

func (e *Editor[T]) reset() {
	var zero T
	e.active = false
	e.editID = 0
	e.draft = zero
}

// String reports the editor state for logging.
func (e *Editor[T]) String() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.active {
		return "viewing"
	}
	return fmt.Sprintf("editing:%d", e.editID)
}
