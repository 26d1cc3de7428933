package services

import (
	"context"

	"soapify/internal/domain/models"
)

// CreateFolderRequest is the request for creating a folder
type CreateFolderRequest struct {
	UserID      string  `json:"-"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// UpdateFolderRequest is the request for renaming or re-describing a folder
type UpdateFolderRequest struct {
	UserID      string  `json:"-"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// FolderService defines business operations for folders
type FolderService interface {
	// CreateFolder creates a folder (name required)
	CreateFolder(ctx context.Context, req *CreateFolderRequest) (*models.Folder, error)

	// GetFolder retrieves one folder owned by the user
	GetFolder(ctx context.Context, id, userID string) (*models.Folder, error)

	// ListFolders lists the user's folders, last-updated descending
	ListFolders(ctx context.Context, userID string) ([]models.Folder, error)

	// UpdateFolder renames or re-describes a folder
	UpdateFolder(ctx context.Context, id string, req *UpdateFolderRequest) (*models.Folder, error)

	// DeleteFolder deletes the folder and every note assigned to it.
	// The note deletion happens first; if it fails the folder survives.
	DeleteFolder(ctx context.Context, id, userID string) error
}
