package main

//go:generate swagger generate spec -o swagger.json

// General API information
//
// This API stores plain-text notes as individual files in a directory.
//
// swagger:meta
//
// ---
// swagger: '2.0'
// info:
//   title: Notes API
//   description: |
//     CRUD over plain-text notes. Each note is persisted as <name>.txt inside the
//     configured storage directory.
//   version: 1.0.0
// schemes:
//   - http
// consumes:
//   - text/plain
//   - application/x-www-form-urlencoded
//   - multipart/form-data
// produces:
//   - text/plain
//   - application/json

func main() {
	Execute()
}
