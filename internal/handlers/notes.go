package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"notes-service/internal/contextutil"
	"notes-service/internal/service"
)

// maxFormMemory is the in-memory limit for multipart form parsing; larger
// parts spill to temporary files.
const maxFormMemory = 32 << 20

// NotesHandler serves the note CRUD endpoints.
type NotesHandler struct {
	notes service.NoteService
}

// NewNotesHandler creates a new NotesHandler.
func NewNotesHandler(notes service.NoteService) *NotesHandler {
	return &NotesHandler{notes: notes}
}

// NoteResponse is one entry of the note list.
//
// swagger:model NoteResponse
type NoteResponse struct {
	// Note name, without the .txt suffix
	Name string `json:"name"`

	// Full note text
	Text string `json:"text"`
}

// GetNote returns the note text as plain text.
//
// swagger:route GET /notes/{name} notes getNote
//
// # Get a note
//
// ---
// produces:
// - text/plain
// responses:
//
//	'200':
//	  description: Note text
//	'400':
//	  description: Invalid note name
//	'404':
//	  description: Note does not exist
func (h *NotesHandler) GetNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	name, ok := noteName(w, r)
	if !ok {
		return
	}

	note, err := h.notes.GetNote(ctx, name)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to read note")
		return
	}

	writeText(w, http.StatusOK, note.Text)
}

// ListNotes returns every note as a JSON array.
//
// swagger:route GET /notes notes listNotes
//
// # List all notes
//
// ---
// produces:
// - application/json
// responses:
//
//	'200':
//	  description: Every stored note
//	  schema:
//	    type: array
//	    items:
//	      "$ref": "#/definitions/NoteResponse"
func (h *NotesHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	notes, err := h.notes.ListNotes(ctx)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to list notes")
		return
	}

	resp := make([]NoteResponse, 0, len(notes))
	for _, n := range notes {
		resp = append(resp, NoteResponse{Name: n.Name, Text: n.Text})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// UpdateNote replaces the note text with the raw request body.
//
// swagger:route PUT /notes/{name} notes updateNote
//
// # Replace a note's text
//
// ---
// consumes:
// - text/plain
// produces:
// - text/plain
// responses:
//
//	'200':
//	  description: Note updated
//	'400':
//	  description: Invalid note name
//	'404':
//	  description: Note does not exist
func (h *NotesHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	name, ok := noteName(w, r)
	if !ok {
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		logger.WarnContext(ctx, "failed to read request body", "error", err)
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	if err := h.notes.UpdateNote(ctx, service.NoteRequest{Name: name, Text: string(body)}); err != nil {
		handleServiceError(ctx, w, err, "Failed to update note")
		return
	}

	writeText(w, http.StatusOK, "Note updated")
}

// DeleteNote removes a note.
//
// swagger:route DELETE /notes/{name} notes deleteNote
//
// # Delete a note
//
// ---
// produces:
// - text/plain
// responses:
//
//	'200':
//	  description: Note deleted
//	'400':
//	  description: Invalid note name
//	'404':
//	  description: Note does not exist
func (h *NotesHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	name, ok := noteName(w, r)
	if !ok {
		return
	}

	if err := h.notes.DeleteNote(ctx, name); err != nil {
		handleServiceError(ctx, w, err, "Failed to delete note")
		return
	}

	writeText(w, http.StatusOK, "Note deleted")
}

// WriteNote creates a note from the note_name and note form fields.
// Both application/x-www-form-urlencoded and multipart/form-data bodies are accepted.
//
// swagger:route POST /write notes writeNote
//
// # Create a note from a form
//
// ---
// consumes:
// - application/x-www-form-urlencoded
// - multipart/form-data
// produces:
// - text/plain
// responses:
//
//	'201':
//	  description: Note created
//	'400':
//	  description: Note already exists, or the name is missing or invalid
func (h *NotesHandler) WriteNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if err := r.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		logger.WarnContext(ctx, "invalid form body", "error", err)
		http.Error(w, "Invalid form body", http.StatusBadRequest)
		return
	}

	if _, ok := r.PostForm["note_name"]; !ok {
		http.Error(w, "note_name is required", http.StatusBadRequest)
		return
	}
	req := service.NoteRequest{
		Name: r.PostForm.Get("note_name"),
		Text: r.PostForm.Get("note"),
	}

	if err := h.notes.CreateNote(ctx, req); err != nil {
		handleServiceError(ctx, w, err, "Failed to create note")
		return
	}

	writeText(w, http.StatusCreated, "Note created")
}

// noteName extracts and decodes the {name} URL parameter. It writes a 400 and
// returns false when the parameter cannot be decoded.
func noteName(w http.ResponseWriter, r *http.Request) (string, bool) {
	raw := chi.URLParam(r, "name")
	name, err := url.PathUnescape(raw)
	if err != nil {
		http.Error(w, "Invalid note name encoding", http.StatusBadRequest)
		return "", false
	}
	return name, true
}

// handleServiceError maps service errors to HTTP status codes and plain-text responses.
func handleServiceError(ctx context.Context, w http.ResponseWriter, err error, defaultMsg string) {
	logger := contextutil.LoggerFromContext(ctx)

	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		logger.WarnContext(ctx, "invalid request", "error", err)
		http.Error(w, "Invalid note name: "+strings.TrimPrefix(validationErr.Message, "invalid note name: "), http.StatusBadRequest)
	case errors.Is(err, service.ErrInvalidInput):
		logger.WarnContext(ctx, "invalid request", "error", err)
		http.Error(w, "Invalid input", http.StatusBadRequest)
	case errors.Is(err, service.ErrNotFound):
		logger.InfoContext(ctx, "note not found", "error", err)
		http.Error(w, "Not found", http.StatusNotFound)
	case errors.Is(err, service.ErrAlreadyExists):
		logger.InfoContext(ctx, "note already exists", "error", err)
		http.Error(w, "Note already exists", http.StatusBadRequest)
	default:
		logger.ErrorContext(ctx, "service error", "error", err)
		http.Error(w, defaultMsg, http.StatusInternalServerError)
	}
}

// writeText writes a plain-text response body.
func writeText(w http.ResponseWriter, statusCode int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = io.WriteString(w, body)
}
