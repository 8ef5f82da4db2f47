package http

import (
	"encoding/json"
	"net/http"

	"notes-service/internal/contextutil"
)

// APIDocument is the machine-readable description served at /docs.
type APIDocument struct {
	Title   string  `json:"title"`
	Version string  `json:"version"`
	Routes  []Route `json:"routes"`
}

// DocsHandler serves the route table as JSON.
type DocsHandler struct {
	Routes []Route
}

func (h *DocsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	doc := APIDocument{
		Title:   "Notes API",
		Version: "1.0.0",
		Routes:  h.Routes,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(doc); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to encode docs", "error", err)
	}
}
