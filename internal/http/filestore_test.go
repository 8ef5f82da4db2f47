package http

import (
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"notes-service/internal/service"
	"notes-service/internal/storage"
)

func TestRouter_FileBackedLifecycle(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	router := NewRouter(&Deps{
		NoteService: service.NewNoteService(store),
		Storage:     store,
	})
	form := "application/x-www-form-urlencoded"

	w := do(t, router, http.MethodPost, "/write", form, url.Values{"note_name": {"alpha"}, "note": {"hello"}}.Encode())
	if w.Code != http.StatusCreated {
		t.Fatalf("POST /write status = %v, want 201", w.Code)
	}
	data, err := os.ReadFile(filepath.Join(dir, "alpha.txt"))
	if err != nil || string(data) != "hello" {
		t.Fatalf("alpha.txt = %q, %v; want hello", data, err)
	}

	w = do(t, router, http.MethodPut, "/notes/alpha", "text/plain", "world")
	if w.Code != http.StatusOK {
		t.Fatalf("PUT status = %v, want 200", w.Code)
	}
	data, _ = os.ReadFile(filepath.Join(dir, "alpha.txt"))
	if string(data) != "world" {
		t.Errorf("alpha.txt after PUT = %q, want world", data)
	}

	w = do(t, router, http.MethodPut, "/notes/ghost", "text/plain", "boo")
	if w.Code != http.StatusNotFound {
		t.Errorf("PUT missing status = %v, want 404", w.Code)
	}
	if _, err := os.Stat(filepath.Join(dir, "ghost.txt")); !os.IsNotExist(err) {
		t.Error("PUT on a missing note must not create a file")
	}

	w = do(t, router, http.MethodDelete, "/notes/alpha", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("DELETE status = %v, want 200", w.Code)
	}
	if _, err := os.Stat(filepath.Join(dir, "alpha.txt")); !os.IsNotExist(err) {
		t.Error("DELETE must remove the note file")
	}
	if w := do(t, router, http.MethodGet, "/notes/alpha", "", ""); w.Code != http.StatusNotFound {
		t.Errorf("GET after DELETE status = %v, want 404", w.Code)
	}
}

func TestRouter_StorageFailureIsServerError(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "notes")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	store, err := storage.NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	router := NewRouter(&Deps{NoteService: service.NewNoteService(store), Storage: store})

	// A directory where a note file is expected makes reads fail with an I/O error.
	if err := os.Mkdir(filepath.Join(dir, "broken.txt"), 0o755); err != nil {
		t.Fatal(err)
	}

	if w := do(t, router, http.MethodGet, "/notes/broken", "", ""); w.Code != http.StatusInternalServerError {
		t.Errorf("GET broken note status = %v, want 500", w.Code)
	}
	// The server keeps serving after a failed request.
	if w := do(t, router, http.MethodGet, "/notes", "", ""); w.Code != http.StatusOK {
		t.Errorf("GET /notes after failure status = %v, want 200", w.Code)
	}
}
