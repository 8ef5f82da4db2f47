package http

import (
	"net/http"

	"notes-service/internal/handlers"
)

// Route describes one endpoint. The same table drives routing and /docs.
type Route struct {
	Method      string       `json:"method"`
	Path        string       `json:"path"`
	Description string       `json:"description"`
	Handler     http.Handler `json:"-"`
}

// Routes returns the route table of the notes API.
func Routes(deps *Deps) []Route {
	notes := handlers.NewNotesHandler(deps.NoteService)

	routes := []Route{
		{
			Method:      http.MethodGet,
			Path:        "/notes",
			Description: "List every note as a JSON array of {name, text}.",
			Handler:     http.HandlerFunc(notes.ListNotes),
		},
		{
			Method:      http.MethodGet,
			Path:        "/notes/{name}",
			Description: "Return the note text as plain text; 404 if it does not exist.",
			Handler:     http.HandlerFunc(notes.GetNote),
		},
		{
			Method:      http.MethodPut,
			Path:        "/notes/{name}",
			Description: "Replace the note text with the plain-text body; 404 if it does not exist.",
			Handler:     http.HandlerFunc(notes.UpdateNote),
		},
		{
			Method:      http.MethodDelete,
			Path:        "/notes/{name}",
			Description: "Delete the note; 404 if it does not exist.",
			Handler:     http.HandlerFunc(notes.DeleteNote),
		},
		{
			Method:      http.MethodGet,
			Path:        "/notes/{name}/view",
			Description: "Render the note text as markdown HTML.",
			Handler:     handlers.NewNoteViewHandler(deps.NoteService),
		},
		{
			Method:      http.MethodPost,
			Path:        "/write",
			Description: "Create a note from form fields note_name and note; 201 on success, 400 if it already exists.",
			Handler:     http.HandlerFunc(notes.WriteNote),
		},
		{
			Method:      http.MethodGet,
			Path:        "/UploadForm.html",
			Description: "Static HTML form posting to /write.",
			Handler:     handlers.NewUploadFormHandler(deps.Assets, deps.UploadFormFile),
		},
	}

	if deps.Storage != nil {
		routes = append(routes, Route{
			Method:      http.MethodGet,
			Path:        "/health",
			Description: "Report whether the storage directory is accessible.",
			Handler:     handlers.NewHealthHandler(deps.Storage),
		})
	}

	docs := &DocsHandler{}
	routes = append(routes, Route{
		Method:      http.MethodGet,
		Path:        "/docs",
		Description: "Describe the API routes as JSON.",
		Handler:     docs,
	})
	docs.Routes = routes

	return routes
}
