package repositories

import (
	"context"

	"soapify/internal/domain/models"
)

// NoteRepository defines data access operations for notes.
// All operations are double-scoped by user id as a defensive boundary in
// addition to the store's own row-level policies.
type NoteRepository interface {
	// Create creates a new note and fills in store-generated fields
	Create(ctx context.Context, note *models.Note) error

	// GetByID retrieves a note owned by the given user
	GetByID(ctx context.Context, id, userID string) (*models.Note, error)

	// ListByUser lists all notes for a user, last-updated descending
	ListByUser(ctx context.Context, userID string) ([]models.Note, error)

	// ListByFolder lists notes in one folder (nil = unfiled), last-updated descending
	ListByFolder(ctx context.Context, folderID *string, userID string) ([]models.Note, error)

	// Update persists title/content/folder changes and bumps updated_at
	Update(ctx context.Context, note *models.Note) error

	// Delete removes a single note
	Delete(ctx context.Context, id, userID string) error

	// DeleteByFolder removes every note assigned to the folder.
	// Used as step one of the folder-delete cascade; runs inside the
	// caller's transaction when one is present in the context.
	DeleteByFolder(ctx context.Context, folderID, userID string) (int64, error)
}
