package repositories

import (
	"context"

	"soapify/internal/domain/models"
)

// FolderRepository defines data access operations for folders.
// Every operation is scoped by the owning user id; the repository never
// returns another user's rows even if the store-side policy were missing.
type FolderRepository interface {
	// Create creates a new folder and fills in store-generated fields
	Create(ctx context.Context, folder *models.Folder) error

	// GetByID retrieves a folder owned by the given user
	GetByID(ctx context.Context, id, userID string) (*models.Folder, error)

	// ListByUser lists all folders for a user, last-updated descending
	ListByUser(ctx context.Context, userID string) ([]models.Folder, error)

	// Update persists name/description changes and bumps updated_at
	Update(ctx context.Context, folder *models.Folder) error

	// Delete removes the folder row. Member notes must already be gone;
	// the store does not cascade on our behalf.
	Delete(ctx context.Context, id, userID string) error
}
