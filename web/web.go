// Package web holds the static assets served by the notes API.
package web

import "embed"

// UploadFormFile is the name of the note upload form inside Assets.
const UploadFormFile = "UploadForm.html"

// Assets contains the embedded static files.
//
//go:embed UploadForm.html
var Assets embed.FS
