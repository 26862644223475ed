// Package service defines the contract between view layers and the task store.
package service

import "context"

// Service defines the operations a view layer may invoke.
// After each call the view re-reads State() to redraw.
// Index arguments are 0-based positions in the pending list.
type Service interface {
	// Add appends a trimmed task to the pending list.
	// Blank text is ignored without error.
	Add(text string) error

	// SetInput replaces the add-form draft.
	SetInput(text string)

	// Submit adds the current add-form draft.
	Submit() error

	// Remove deletes the pending task at index.
	Remove(index int) error

	// Complete moves the pending task at index to the end of the done list.
	Complete(index int) error

	// ClearDone empties the done list.
	ClearDone() error

	// BeginEdit opens (or retargets) the edit session seeded with currentText.
	BeginEdit(index int, currentText string) error

	// UpdateDraft changes the draft of the open edit session.
	UpdateDraft(text string) error

	// CommitEdit writes the draft into the pending task at index and closes the session.
	CommitEdit(index int) error

	// BeginEditByID opens the edit session on the task with id.
	// A nil text seeds the draft with the task's current text.
	BeginEditByID(id string, text *string) error

	// CommitSession commits the draft into the task under edit.
	CommitSession() error

	// RemoveByID deletes the pending task with the given id.
	RemoveByID(id string) error

	// CompleteByID completes the pending task with the given id.
	CompleteByID(id string) error

	// IndexOf returns the pending position of the task with the given id, or -1.
	IndexOf(id string) int

	// State returns a copy of the current state.
	State() State
}

// Source lists open tasks held by an external task service.
// Used by the import command only.
type Source interface {
	// OpenTasks returns all open tasks of the source's default list, in source order.
	OpenTasks(ctx context.Context) ([]RemoteTask, error)
}
