package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// notePerm is the permission bits used for note files.
const notePerm = 0o644

// FileStore stores each note as <root>/<name>.txt.
// It implements the NoteStore interface.
type FileStore struct {
	root string
}

// NewFileStore opens a FileStore rooted at dir. The directory must already exist.
func NewFileStore(dir string) (*FileStore, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage directory: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("storage path %s is not a directory", root)
	}
	return &FileStore{root: root}, nil
}

// Root returns the absolute storage directory.
func (s *FileStore) Root() string {
	return s.root
}

// Check verifies that the storage directory is still an accessible directory.
func (s *FileStore) Check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	info, err := os.Stat(s.root)
	if err != nil {
		return fmt.Errorf("failed to stat storage directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("storage path %s is not a directory", s.root)
	}
	return nil
}

// Get reads the note with the given name.
func (s *FileStore) Get(ctx context.Context, name string) (Note, error) {
	if err := ctx.Err(); err != nil {
		return Note{}, err
	}
	path, err := s.notePath(name)
	if err != nil {
		return Note{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Note{}, ErrNotFound
		}
		return Note{}, fmt.Errorf("failed to read note %s: %w", name, err)
	}
	return Note{Name: name, Text: string(data)}, nil
}

// List reads every note in the storage directory into memory.
// Files without the note extension are skipped.
func (s *FileStore) List(ctx context.Context) ([]Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	files, err := doublestar.Glob(os.DirFS(s.root), "*"+NoteExt, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("failed to list storage directory: %w", err)
	}

	notes := make([]Note, 0, len(files))
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(filepath.Join(s.root, file))
		if err != nil {
			// Removed between enumeration and read.
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to read note file %s: %w", file, err)
		}
		notes = append(notes, Note{
			Name: strings.TrimSuffix(file, NoteExt),
			Text: string(data),
		})
	}
	return notes, nil
}

// Exists reports whether a note file exists for name.
func (s *FileStore) Exists(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	path, err := s.notePath(name)
	if err != nil {
		return false, err
	}
	return fileExists(path)
}

// Create writes a new note file. The existence check and the write are not atomic
// with respect to each other: two concurrent creates may both succeed.
func (s *FileStore) Create(ctx context.Context, note Note) error {
	path, err := s.checkedPath(ctx, note.Name)
	if err != nil {
		return err
	}
	exists, err := fileExists(path)
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyExists
	}
	if err := writeFileAtomic(path, []byte(note.Text), notePerm); err != nil {
		return fmt.Errorf("failed to create note %s: %w", note.Name, err)
	}
	return nil
}

// Update overwrites an existing note file in full.
func (s *FileStore) Update(ctx context.Context, note Note) error {
	path, err := s.checkedPath(ctx, note.Name)
	if err != nil {
		return err
	}
	exists, err := fileExists(path)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	if err := writeFileAtomic(path, []byte(note.Text), notePerm); err != nil {
		return fmt.Errorf("failed to update note %s: %w", note.Name, err)
	}
	return nil
}

// Delete removes an existing note file.
func (s *FileStore) Delete(ctx context.Context, name string) error {
	path, err := s.checkedPath(ctx, name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete note %s: %w", name, err)
	}
	return nil
}

func (s *FileStore) checkedPath(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.notePath(name)
}

// notePath maps a validated name to its file inside the storage root.
func (s *FileStore) notePath(name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	path := filepath.Join(s.root, name+NoteExt)
	if filepath.Dir(path) != s.root {
		return "", fmt.Errorf("%w: path escapes storage root", ErrInvalidName)
	}
	return path, nil
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("failed to stat %s: %w", path, err)
}
