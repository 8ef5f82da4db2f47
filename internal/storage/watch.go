package storage

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// ChangeKind describes what happened to a note file.
type ChangeKind string

const (
	ChangeCreated ChangeKind = "created"
	ChangeWritten ChangeKind = "written"
	ChangeRemoved ChangeKind = "removed"
	ChangeRenamed ChangeKind = "renamed"
)

// Change is a note file event observed in the storage directory.
type Change struct {
	Name string
	Kind ChangeKind
}

// Watcher reports changes to note files in a storage directory, including
// changes made by other processes.
type Watcher struct {
	root     string
	onChange func(Change)
	logger   *slog.Logger
}

// NewWatcher creates a Watcher for dir that calls onChange for every note event.
func NewWatcher(dir string, onChange func(Change), logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		root:     dir,
		onChange: onChange,
		logger:   logger,
	}
}

// Run watches until ctx is cancelled. ready, if non-nil, is closed once the
// directory is being watched.
func (w *Watcher) Run(ctx context.Context, ready chan<- struct{}) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()

	if err := watcher.Add(w.root); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.root, err)
	}
	w.logger.Debug("watching storage directory", "path", w.root)
	if ready != nil {
		close(ready)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if change, ok := toChange(event); ok {
				w.onChange(change)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("storage watcher error", "error", err)
		}
	}
}

// toChange maps a raw filesystem event to a note change. Temp files and files
// without the note extension are ignored.
func toChange(event fsnotify.Event) (Change, bool) {
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, TempFilePrefix) || filepath.Ext(base) != NoteExt {
		return Change{}, false
	}
	name := strings.TrimSuffix(base, NoteExt)

	switch {
	case event.Has(fsnotify.Create):
		return Change{Name: name, Kind: ChangeCreated}, true
	case event.Has(fsnotify.Write):
		return Change{Name: name, Kind: ChangeWritten}, true
	case event.Has(fsnotify.Remove):
		return Change{Name: name, Kind: ChangeRemoved}, true
	case event.Has(fsnotify.Rename):
		return Change{Name: name, Kind: ChangeRenamed}, true
	}
	return Change{}, false
}
