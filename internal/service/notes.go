package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_note_service.go -package=mocks -mock_names=NoteService=MockNoteService notes-service/internal/service NoteService

import (
	"context"
	"errors"
	"fmt"

	"notes-service/internal/contextutil"
	"notes-service/internal/storage"
)

// Note represents a note in the domain layer.
type Note struct {
	Name string
	Text string
}

// NoteRequest carries the input of create and update operations.
type NoteRequest struct {
	Name string `validate:"required"`
	Text string
}

// NoteService provides the note lifecycle: get, list, create, update and delete.
type NoteService interface {
	// GetNote returns the note with the given name.
	GetNote(ctx context.Context, name string) (Note, error)
	// ListNotes returns every stored note in storage enumeration order.
	ListNotes(ctx context.Context) ([]Note, error)
	// CreateNote persists a new note. Fails with ErrAlreadyExists if the name is taken.
	CreateNote(ctx context.Context, req NoteRequest) error
	// UpdateNote replaces the text of an existing note. Fails with ErrNotFound if absent.
	UpdateNote(ctx context.Context, req NoteRequest) error
	// DeleteNote removes an existing note. Fails with ErrNotFound if absent.
	DeleteNote(ctx context.Context, name string) error
}

// Option configures a NoteService.
type Option func(*noteService)

// WithNameLocks serializes operations on the same note name within this process.
// Without it concurrent requests for one name race on the storage directory.
func WithNameLocks() Option {
	return func(s *noteService) {
		s.locks = newNameLocks()
	}
}

// noteService implements NoteService.
type noteService struct {
	store storage.NoteStore
	locks *nameLocks
}

// NewNoteService creates a new NoteService backed by store.
func NewNoteService(store storage.NoteStore, opts ...Option) NoteService {
	s := &noteService{store: store}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetNote returns a note by name.
func (s *noteService) GetNote(ctx context.Context, name string) (Note, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if err := validateName(name); err != nil {
		logger.WarnContext(ctx, "invalid note name", "name", name, "error", err)
		return Note{}, err
	}
	defer s.lock(name)()

	note, err := s.store.Get(ctx, name)
	if err != nil {
		return Note{}, mapStoreError(err, fmt.Sprintf("failed to read note %s", name))
	}

	logger.DebugContext(ctx, "note read", "name", name, "text_length", len(note.Text))
	return Note(note), nil
}

// ListNotes reads every note. There is no pagination: all content is loaded per call.
func (s *noteService) ListNotes(ctx context.Context) ([]Note, error) {
	logger := contextutil.LoggerFromContext(ctx)

	stored, err := s.store.List(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to list notes", "error", err)
		return nil, WrapError(err, "failed to list notes")
	}

	notes := make([]Note, 0, len(stored))
	for _, n := range stored {
		notes = append(notes, Note(n))
	}
	logger.DebugContext(ctx, "notes listed", "count", len(notes))
	return notes, nil
}

// CreateNote persists a new note.
func (s *noteService) CreateNote(ctx context.Context, req NoteRequest) error {
	logger := contextutil.LoggerFromContext(ctx)

	if err := validateName(req.Name); err != nil {
		logger.WarnContext(ctx, "invalid note name", "name", req.Name, "error", err)
		return err
	}
	defer s.lock(req.Name)()

	if err := s.store.Create(ctx, storage.Note{Name: req.Name, Text: req.Text}); err != nil {
		return mapStoreError(err, fmt.Sprintf("failed to create note %s", req.Name))
	}

	logger.InfoContext(ctx, "note created", "name", req.Name, "text_length", len(req.Text))
	return nil
}

// UpdateNote replaces the full text of an existing note.
func (s *noteService) UpdateNote(ctx context.Context, req NoteRequest) error {
	logger := contextutil.LoggerFromContext(ctx)

	if err := validateName(req.Name); err != nil {
		logger.WarnContext(ctx, "invalid note name", "name", req.Name, "error", err)
		return err
	}
	defer s.lock(req.Name)()

	if err := s.store.Update(ctx, storage.Note{Name: req.Name, Text: req.Text}); err != nil {
		return mapStoreError(err, fmt.Sprintf("failed to update note %s", req.Name))
	}

	logger.InfoContext(ctx, "note updated", "name", req.Name, "text_length", len(req.Text))
	return nil
}

// DeleteNote removes an existing note.
func (s *noteService) DeleteNote(ctx context.Context, name string) error {
	logger := contextutil.LoggerFromContext(ctx)

	if err := validateName(name); err != nil {
		logger.WarnContext(ctx, "invalid note name", "name", name, "error", err)
		return err
	}
	defer s.lock(name)()

	if err := s.store.Delete(ctx, name); err != nil {
		return mapStoreError(err, fmt.Sprintf("failed to delete note %s", name))
	}

	logger.InfoContext(ctx, "note deleted", "name", name)
	return nil
}

// lock returns the unlock func for name, or a no-op when locking is disabled.
func (s *noteService) lock(name string) func() {
	if s.locks == nil {
		return func() {}
	}
	return s.locks.lock(name)
}

func validateName(name string) error {
	if name == "" {
		return &ValidationError{Field: "name", Message: "cannot be empty"}
	}
	if err := storage.ValidateName(name); err != nil {
		return &ValidationError{Field: "name", Message: err.Error()}
	}
	return nil
}

// mapStoreError translates storage errors into the service error taxonomy.
func mapStoreError(err error, msg string) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return WrapError(ErrNotFound, msg)
	case errors.Is(err, storage.ErrAlreadyExists):
		return WrapError(ErrAlreadyExists, msg)
	case errors.Is(err, storage.ErrInvalidName):
		return &ValidationError{Field: "name", Message: err.Error()}
	default:
		return WrapError(err, msg)
	}
}
