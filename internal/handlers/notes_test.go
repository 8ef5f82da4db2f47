package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"notes-service/internal/service"
	"notes-service/internal/service/mocks"
)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// newNotesRouter mounts the handler methods the same way the API router does.
func newNotesRouter(h *NotesHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/notes", h.ListNotes)
	r.Get("/notes/{name}", h.GetNote)
	r.Put("/notes/{name}", h.UpdateNote)
	r.Delete("/notes/{name}", h.DeleteNote)
	r.Post("/write", h.WriteNote)
	return r
}

func TestNewNotesHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockNotes := mocks.NewMockNoteService(ctrl)
	handler := NewNotesHandler(mockNotes)

	if handler == nil {
		t.Fatal("NewNotesHandler() returned nil")
	}
	if handler.notes != mockNotes {
		t.Error("NewNotesHandler() notes service not set correctly")
	}
}

func TestNotesHandler_Routes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name        string
		method      string
		path        string
		body        string
		contentType string
		mockSetup   func(*mocks.MockNoteService)
		wantStatus  int
		wantBody    string
	}{
		{
			name:   "get existing note",
			method: http.MethodGet,
			path:   "/notes/alpha",
			mockSetup: func(m *mocks.MockNoteService) {
				m.EXPECT().GetNote(gomock.Any(), "alpha").Return(service.Note{Name: "alpha", Text: "hello"}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   "hello",
		},
		{
			name:   "get missing note",
			method: http.MethodGet,
			path:   "/notes/ghost",
			mockSetup: func(m *mocks.MockNoteService) {
				m.EXPECT().GetNote(gomock.Any(), "ghost").Return(service.Note{}, service.WrapError(service.ErrNotFound, "failed"))
			},
			wantStatus: http.StatusNotFound,
			wantBody:   "Not found",
		},
		{
			name:   "get with encoded slash reaches validation",
			method: http.MethodGet,
			path:   "/notes/..%2Fsecret",
			mockSetup: func(m *mocks.MockNoteService) {
				m.EXPECT().GetNote(gomock.Any(), "../secret").Return(service.Note{}, &service.ValidationError{Field: "name", Message: "path traversal detected"})
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "get storage failure",
			method: http.MethodGet,
			path:   "/notes/alpha",
			mockSetup: func(m *mocks.MockNoteService) {
				m.EXPECT().GetNote(gomock.Any(), "alpha").Return(service.Note{}, errors.New("permission denied"))
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   "Failed to read note",
		},
		{
			name:   "update existing note",
			method: http.MethodPut,
			path:   "/notes/alpha",
			body:   "world",
			mockSetup: func(m *mocks.MockNoteService) {
				m.EXPECT().UpdateNote(gomock.Any(), service.NoteRequest{Name: "alpha", Text: "world"}).Return(nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   "Note updated",
		},
		{
			name:   "update missing note",
			method: http.MethodPut,
			path:   "/notes/ghost",
			body:   "boo",
			mockSetup: func(m *mocks.MockNoteService) {
				m.EXPECT().UpdateNote(gomock.Any(), service.NoteRequest{Name: "ghost", Text: "boo"}).Return(service.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
			wantBody:   "Not found",
		},
		{
			name:   "delete existing note",
			method: http.MethodDelete,
			path:   "/notes/alpha",
			mockSetup: func(m *mocks.MockNoteService) {
				m.EXPECT().DeleteNote(gomock.Any(), "alpha").Return(nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   "Note deleted",
		},
		{
			name:   "delete missing note",
			method: http.MethodDelete,
			path:   "/notes/ghost",
			mockSetup: func(m *mocks.MockNoteService) {
				m.EXPECT().DeleteNote(gomock.Any(), "ghost").Return(service.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:        "write urlencoded form",
			method:      http.MethodPost,
			path:        "/write",
			body:        url.Values{"note_name": {"beta"}, "note": {"text1"}}.Encode(),
			contentType: "application/x-www-form-urlencoded",
			mockSetup: func(m *mocks.MockNoteService) {
				m.EXPECT().CreateNote(gomock.Any(), service.NoteRequest{Name: "beta", Text: "text1"}).Return(nil)
			},
			wantStatus: http.StatusCreated,
			wantBody:   "Note created",
		},
		{
			name:        "write existing note",
			method:      http.MethodPost,
			path:        "/write",
			body:        url.Values{"note_name": {"beta"}, "note": {"text2"}}.Encode(),
			contentType: "application/x-www-form-urlencoded",
			mockSetup: func(m *mocks.MockNoteService) {
				m.EXPECT().CreateNote(gomock.Any(), service.NoteRequest{Name: "beta", Text: "text2"}).Return(service.ErrAlreadyExists)
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   "Note already exists",
		},
		{
			name:        "write without note_name",
			method:      http.MethodPost,
			path:        "/write",
			body:        url.Values{"note": {"orphan"}}.Encode(),
			contentType: "application/x-www-form-urlencoded",
			mockSetup:   func(m *mocks.MockNoteService) {},
			wantStatus:  http.StatusBadRequest,
			wantBody:    "note_name is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockNotes := mocks.NewMockNoteService(ctrl)
			tt.mockSetup(mockNotes)
			router := newNotesRouter(NewNotesHandler(mockNotes))

			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("%s %s status = %v, want %v (body %q)", tt.method, tt.path, w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantBody != "" && strings.TrimSpace(w.Body.String()) != tt.wantBody {
				t.Errorf("%s %s body = %q, want %q", tt.method, tt.path, w.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestNotesHandler_GetNoteContentType(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockNotes := mocks.NewMockNoteService(ctrl)
	mockNotes.EXPECT().GetNote(gomock.Any(), "alpha").Return(service.Note{Name: "alpha", Text: "<b>hi</b>"}, nil)
	router := newNotesRouter(NewNotesHandler(mockNotes))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/notes/alpha", nil))

	if ct := w.Header().Get("Content-Type"); ct != "text/plain; charset=utf-8" {
		t.Errorf("Content-Type = %q, want text/plain; charset=utf-8", ct)
	}
	if w.Body.String() != "<b>hi</b>" {
		t.Errorf("body = %q, want raw note text", w.Body.String())
	}
}

func TestNotesHandler_ListNotes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name       string
		notes      []service.Note
		err        error
		wantStatus int
		wantJSON   string
	}{
		{
			name:       "empty",
			notes:      nil,
			wantStatus: http.StatusOK,
			wantJSON:   "[]",
		},
		{
			name: "two notes",
			notes: []service.Note{
				{Name: "alpha", Text: "hello"},
				{Name: "beta", Text: "text1"},
			},
			wantStatus: http.StatusOK,
			wantJSON:   `[{"name":"alpha","text":"hello"},{"name":"beta","text":"text1"}]`,
		},
		{
			name:       "storage failure",
			err:        errors.New("io error"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockNotes := mocks.NewMockNoteService(ctrl)
			mockNotes.EXPECT().ListNotes(gomock.Any()).Return(tt.notes, tt.err)
			router := newNotesRouter(NewNotesHandler(mockNotes))

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/notes", nil))

			if w.Code != tt.wantStatus {
				t.Fatalf("GET /notes status = %v, want %v", w.Code, tt.wantStatus)
			}
			if tt.wantJSON == "" {
				return
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q, want application/json", ct)
			}
			if got := strings.TrimSpace(w.Body.String()); got != tt.wantJSON {
				t.Errorf("GET /notes body = %s, want %s", got, tt.wantJSON)
			}
			var decoded []NoteResponse
			if err := json.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
				t.Errorf("response is not a JSON array: %v", err)
			}
		})
	}
}

func TestNotesHandler_WriteMultipart(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockNotes := mocks.NewMockNoteService(ctrl)
	mockNotes.EXPECT().CreateNote(gomock.Any(), service.NoteRequest{Name: "gamma", Text: "line1\nline2"}).Return(nil)
	router := newNotesRouter(NewNotesHandler(mockNotes))

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("note_name", "gamma"); err != nil {
		t.Fatal(err)
	}
	if err := mw.WriteField("note", "line1\nline2"); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/write", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("POST /write multipart status = %v, want %v (body %q)", w.Code, http.StatusCreated, w.Body.String())
	}
}

func TestHandleServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "validation", err: &service.ValidationError{Field: "name", Message: "cannot be empty"}, wantStatus: http.StatusBadRequest},
		{name: "invalid input", err: service.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "not found", err: service.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "already exists", err: service.ErrAlreadyExists, wantStatus: http.StatusBadRequest},
		{name: "wrapped not found", err: service.WrapError(service.ErrNotFound, "ctx"), wantStatus: http.StatusNotFound},
		{name: "unexpected", err: errors.New("disk full"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			handleServiceError(req.Context(), w, tt.err, "default")
			if w.Code != tt.wantStatus {
				t.Errorf("handleServiceError() status = %v, want %v", w.Code, tt.wantStatus)
			}
		})
	}
}
