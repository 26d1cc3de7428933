package models

import (
	"time"
)

// DefaultNoteTitle is applied when a note is created with a blank title.
const DefaultNoteTitle = "Untitled Note"

type Note struct {
	ID        string      `json:"id" db:"id"`
	UserID    string      `json:"user_id" db:"user_id"`
	FolderID  *string     `json:"folder_id" db:"folder_id"` // NULL = unfiled (workspace)
	Title     string      `json:"title" db:"title"`
	Content   SOAPContent `json:"content" db:"content"` // JSONB
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt time.Time   `json:"updated_at" db:"updated_at"`
}

// InFolder reports whether the note is assigned to the given folder.
// Both nil means the workspace (unfiled) view.
func (n *Note) InFolder(folderID *string) bool {
	if n.FolderID == nil || folderID == nil {
		return n.FolderID == nil && folderID == nil
	}
	return *n.FolderID == *folderID
}
