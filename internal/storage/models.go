package storage

// Note is a named unit of plain-text content.
type Note struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// NoteExt is the file extension every persisted note carries.
const NoteExt = ".txt"
