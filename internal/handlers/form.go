package handlers

import (
	"io/fs"
	"net/http"

	"notes-service/internal/contextutil"
)

// UploadFormHandler serves the static HTML form that posts to /write.
type UploadFormHandler struct {
	assets fs.FS
	file   string
}

// NewUploadFormHandler creates a handler serving file from assets.
func NewUploadFormHandler(assets fs.FS, file string) *UploadFormHandler {
	return &UploadFormHandler{assets: assets, file: file}
}

// ServeHTTP writes the form, or a 500 when the asset cannot be read.
//
// swagger:route GET /UploadForm.html forms uploadForm
//
// # Note upload form
//
// ---
// produces:
// - text/html
// responses:
//
//	'200':
//	  description: HTML form
//	'500':
//	  description: Form asset missing
func (h *UploadFormHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if h.assets == nil {
		logger.ErrorContext(ctx, "upload form asset missing", "file", h.file)
		http.Error(w, "Upload form not available", http.StatusInternalServerError)
		return
	}

	data, err := fs.ReadFile(h.assets, h.file)
	if err != nil {
		logger.ErrorContext(ctx, "upload form asset missing", "file", h.file, "error", err)
		http.Error(w, "Upload form not available", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
