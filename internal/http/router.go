package http

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"notes-service/internal/handlers"
	"notes-service/internal/service"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	NoteService    service.NoteService
	Storage        handlers.StorageChecker
	Assets         fs.FS  // static assets; nil means the upload form is missing
	UploadFormFile string // name of the upload form inside Assets
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(CORS)

	for _, route := range Routes(deps) {
		r.Method(route.Method, route.Path, route.Handler)
	}

	return r
}
