package services

import (
	"context"

	"soapify/internal/domain/models"
	"soapify/internal/httputil"
)

// CreateNoteRequest is the request for creating a note.
// Title and content are optional: a quick-created note starts blank and
// gets the default title.
type CreateNoteRequest struct {
	UserID   string              `json:"-"`
	Title    string              `json:"title"`
	Content  *models.SOAPContent `json:"content"`
	FolderID *string             `json:"folder_id"`
}

// UpdateNoteRequest is the request for updating a note.
// FolderID uses tri-state semantics: absent = keep, null = move to
// workspace, value = move to that folder.
type UpdateNoteRequest struct {
	UserID   string                  `json:"-"`
	Title    *string                 `json:"title"`
	Content  *models.SOAPContent     `json:"content"`
	FolderID httputil.OptionalString `json:"folder_id"`
}

// NoteService defines business operations for notes
type NoteService interface {
	// CreateNote creates a note and returns it with its store-generated id
	CreateNote(ctx context.Context, req *CreateNoteRequest) (*models.Note, error)

	// GetNote retrieves one note owned by the user
	GetNote(ctx context.Context, id, userID string) (*models.Note, error)

	// ListNotes lists the user's notes, optionally restricted to one folder
	ListNotes(ctx context.Context, userID string, folderID *string) ([]models.Note, error)

	// UpdateNote applies a partial update (title, sections, folder)
	UpdateNote(ctx context.Context, id string, req *UpdateNoteRequest) (*models.Note, error)

	// MoveNote reassigns the note's folder (nil = workspace).
	// Moving to the current folder is a no-op success.
	MoveNote(ctx context.Context, id, userID string, folderID *string) (*models.Note, error)

	// DeleteNote removes the note
	DeleteNote(ctx context.Context, id, userID string) error
}
