package storage

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is an in-memory NoteStore with the same error semantics as FileStore.
// The mutex only protects the map; like FileStore, Create and Update perform a
// separate existence check before writing.
type MemoryStore struct {
	mu    sync.RWMutex
	notes map[string]string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{notes: make(map[string]string)}
}

// Check always succeeds.
func (s *MemoryStore) Check(ctx context.Context) error {
	return ctx.Err()
}

func (s *MemoryStore) Get(ctx context.Context, name string) (Note, error) {
	if err := s.check(ctx, name); err != nil {
		return Note{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	text, ok := s.notes[name]
	if !ok {
		return Note{}, ErrNotFound
	}
	return Note{Name: name, Text: text}, nil
}

// List returns the notes sorted by name.
func (s *MemoryStore) List(ctx context.Context) ([]Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	notes := make([]Note, 0, len(s.notes))
	for name, text := range s.notes {
		notes = append(notes, Note{Name: name, Text: text})
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].Name < notes[j].Name })
	return notes, nil
}

func (s *MemoryStore) Exists(ctx context.Context, name string) (bool, error) {
	if err := s.check(ctx, name); err != nil {
		return false, err
	}
	return s.exists(name), nil
}

func (s *MemoryStore) Create(ctx context.Context, note Note) error {
	if err := s.check(ctx, note.Name); err != nil {
		return err
	}
	if s.exists(note.Name) {
		return ErrAlreadyExists
	}
	s.put(note)
	return nil
}

func (s *MemoryStore) Update(ctx context.Context, note Note) error {
	if err := s.check(ctx, note.Name); err != nil {
		return err
	}
	if !s.exists(note.Name) {
		return ErrNotFound
	}
	s.put(note)
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, name string) error {
	if err := s.check(ctx, name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.notes[name]; !ok {
		return ErrNotFound
	}
	delete(s.notes, name)
	return nil
}

func (s *MemoryStore) check(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return ValidateName(name)
}

func (s *MemoryStore) exists(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.notes[name]
	return ok
}

func (s *MemoryStore) put(note Note) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes[note.Name] = note.Text
}
