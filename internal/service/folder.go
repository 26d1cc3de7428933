package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"soapify/internal/config"
	"soapify/internal/domain"
	"soapify/internal/domain/models"
	"soapify/internal/domain/repositories"
	"soapify/internal/domain/services"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type folderService struct {
	folderRepo repositories.FolderRepository
	noteRepo   repositories.NoteRepository
	txManager  repositories.TransactionManager
	logger     *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	folderRepo repositories.FolderRepository,
	noteRepo repositories.NoteRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.FolderService {
	return &folderService{
		folderRepo: folderRepo,
		noteRepo:   noteRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

// CreateFolder creates a new folder
func (s *folderService) CreateFolder(ctx context.Context, req *services.CreateFolderRequest) (*models.Folder, error) {
	req.Name = strings.TrimSpace(req.Name)

	if err := validation.ValidateStruct(req,
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.Name,
			validation.Required.Error("folder name is required"),
			validation.Length(1, config.MaxFolderNameLength),
		),
		validation.Field(&req.Description,
			validation.Length(0, config.MaxFolderDescriptionLength),
		),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	// Normalize blank descriptions to NULL
	if req.Description != nil && strings.TrimSpace(*req.Description) == "" {
		req.Description = nil
	}

	now := time.Now()
	folder := &models.Folder{
		UserID:      req.UserID,
		Name:        req.Name,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.folderRepo.Create(ctx, folder); err != nil {
		return nil, err
	}

	s.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
		"user_id", folder.UserID,
	)

	return folder, nil
}

// GetFolder retrieves one folder owned by the user
func (s *folderService) GetFolder(ctx context.Context, id, userID string) (*models.Folder, error) {
	return s.folderRepo.GetByID(ctx, id, userID)
}

// ListFolders lists the user's folders, last-updated descending
func (s *folderService) ListFolders(ctx context.Context, userID string) ([]models.Folder, error) {
	return s.folderRepo.ListByUser(ctx, userID)
}

// UpdateFolder renames or re-describes a folder
func (s *folderService) UpdateFolder(ctx context.Context, id string, req *services.UpdateFolderRequest) (*models.Folder, error) {
	folder, err := s.folderRepo.GetByID(ctx, id, req.UserID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: folder name is required", domain.ErrValidation)
		}
		if len(name) > config.MaxFolderNameLength {
			return nil, fmt.Errorf("%w: folder name too long", domain.ErrValidation)
		}
		folder.Name = name
	}

	if req.Description != nil {
		if strings.TrimSpace(*req.Description) == "" {
			folder.Description = nil
		} else {
			folder.Description = req.Description
		}
	}

	folder.UpdatedAt = time.Now()

	if err := s.folderRepo.Update(ctx, folder); err != nil {
		return nil, err
	}

	s.logger.Info("folder updated", "id", folder.ID, "name", folder.Name)

	return folder, nil
}

// DeleteFolder deletes the folder and every note assigned to it.
// The two steps run inside one transaction in a fixed order: member notes
// first, then the folder row. If the note deletion fails the transaction
// rolls back and the folder survives untouched - there is never a state
// with stranded notes pointing at a missing folder, or a folder half
// emptied.
func (s *folderService) DeleteFolder(ctx context.Context, id, userID string) error {
	// Confirm ownership before mutating anything
	folder, err := s.folderRepo.GetByID(ctx, id, userID)
	if err != nil {
		return err
	}

	var deleted int64
	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		n, err := s.noteRepo.DeleteByFolder(txCtx, id, userID)
		if err != nil {
			return fmt.Errorf("delete member notes: %w", err)
		}
		deleted = n

		return s.folderRepo.Delete(txCtx, id, userID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("folder deleted",
		"id", folder.ID,
		"name", folder.Name,
		"notes_deleted", deleted,
	)

	return nil
}
