package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_note_store.go -package=mocks notes-service/internal/storage NoteStore

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when a note does not exist.
	ErrNotFound = errors.New("note not found")
	// ErrAlreadyExists is returned when creating a note whose name is taken.
	ErrAlreadyExists = errors.New("note already exists")
)

// NoteStore defines the interface for note storage operations.
// Implementations make no attempt to serialize concurrent access to the same note.
type NoteStore interface {
	// Get returns the note with the given name.
	// Returns ErrNotFound if it does not exist.
	Get(ctx context.Context, name string) (Note, error)
	// List returns every stored note. The order is implementation-defined.
	List(ctx context.Context) ([]Note, error)
	// Exists reports whether a note with the given name is stored.
	Exists(ctx context.Context, name string) (bool, error)
	// Create persists a new note.
	// Returns ErrAlreadyExists if a note with the same name is stored.
	Create(ctx context.Context, note Note) error
	// Update replaces the text of an existing note in full.
	// Returns ErrNotFound if it does not exist.
	Update(ctx context.Context, note Note) error
	// Delete removes a note.
	// Returns ErrNotFound if it does not exist.
	Delete(ctx context.Context, name string) error
}
