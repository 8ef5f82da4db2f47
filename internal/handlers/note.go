package handlers

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"notes-service/internal/contextutil"
	"notes-service/internal/service"
)

// NoteViewHandler serves a note rendered from markdown as an HTML page.
type NoteViewHandler struct {
	notes    service.NoteService
	parser   goldmark.Markdown
	template *template.Template
}

// notePageData holds template data for rendered note pages.
type notePageData struct {
	Title   string
	Content template.HTML
}

var notePageTemplate = template.Must(template.New("note").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}</title>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif;
      margin: 0 auto;
      padding: 2rem;
      max-width: 900px;
      line-height: 1.7;
    }
    header {
      margin-bottom: 2rem;
      border-bottom: 1px solid #d0d7de;
    }
    pre {
      background: #f6f8fa;
      padding: 1rem;
      overflow-x: auto;
      border-radius: 6px;
    }
    code {
      font-family: 'SFMono-Regular', Consolas, 'Liberation Mono', Menlo, monospace;
    }
    blockquote {
      border-left: 4px solid #d0d7de;
      padding-left: 1rem;
      margin-left: 0;
      color: #57606a;
    }
  </style>
</head>
<body>
  <header>
    <h1>{{.Title}}</h1>
  </header>
  <article>{{.Content}}</article>
</body>
</html>`))

// NewNoteViewHandler creates a new handler rendering notes as HTML.
// Raw HTML inside notes is escaped rather than passed through.
func NewNoteViewHandler(notes service.NoteService) *NoteViewHandler {
	return &NoteViewHandler{
		notes: notes,
		parser: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Typographer,
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
		),
		template: notePageTemplate,
	}
}

// ServeHTTP renders the requested note.
//
// swagger:route GET /notes/{name}/view notes viewNote
//
// # Render a note as HTML
//
// ---
// produces:
// - text/html
// responses:
//
//	'200':
//	  description: Rendered note
//	'400':
//	  description: Invalid note name
//	'404':
//	  description: Note does not exist
func (h *NoteViewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	name, ok := noteName(w, r)
	if !ok {
		return
	}

	note, err := h.notes.GetNote(ctx, name)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to read note")
		return
	}

	htmlContent, err := h.renderMarkdown([]byte(note.Text))
	if err != nil {
		logger.ErrorContext(ctx, "failed to render markdown", "name", name, "error", err)
		http.Error(w, "Failed to render note", http.StatusInternalServerError)
		return
	}

	var page bytes.Buffer
	if err := h.template.Execute(&page, notePageData{
		Title:   note.Name,
		Content: template.HTML(htmlContent),
	}); err != nil {
		logger.ErrorContext(ctx, "failed to execute note template", "name", name, "error", err)
		http.Error(w, "Failed to render note", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = page.WriteTo(w)
}

func (h *NoteViewHandler) renderMarkdown(content []byte) (string, error) {
	var buf bytes.Buffer
	if err := h.parser.Convert(content, &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}
