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
)

type noteService struct {
	noteRepo   repositories.NoteRepository
	folderRepo repositories.FolderRepository
	logger     *slog.Logger
}

// NewNoteService creates a new note service
func NewNoteService(
	noteRepo repositories.NoteRepository,
	folderRepo repositories.FolderRepository,
	logger *slog.Logger,
) services.NoteService {
	return &noteService{
		noteRepo:   noteRepo,
		folderRepo: folderRepo,
		logger:     logger,
	}
}

// CreateNote creates a note. A blank title falls back to the default and
// missing content starts the note empty (quick-create).
func (s *noteService) CreateNote(ctx context.Context, req *services.CreateNoteRequest) (*models.Note, error) {
	if req.UserID == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrValidation)
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = models.DefaultNoteTitle
	}
	if len(title) > config.MaxNoteTitleLength {
		return nil, fmt.Errorf("%w: note title too long", domain.ErrValidation)
	}

	content := models.SOAPContent{}
	if req.Content != nil {
		content = *req.Content
	}

	// The folder reference, if any, must point at a folder the same user owns
	if req.FolderID != nil {
		if _, err := s.folderRepo.GetByID(ctx, *req.FolderID, req.UserID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	note := &models.Note{
		UserID:    req.UserID,
		FolderID:  req.FolderID,
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, err
	}

	s.logger.Info("note created",
		"id", note.ID,
		"title", note.Title,
		"user_id", note.UserID,
		"folder_id", note.FolderID,
	)

	return note, nil
}

// GetNote retrieves one note owned by the user
func (s *noteService) GetNote(ctx context.Context, id, userID string) (*models.Note, error) {
	return s.noteRepo.GetByID(ctx, id, userID)
}

// ListNotes lists the user's notes, optionally restricted to one folder
func (s *noteService) ListNotes(ctx context.Context, userID string, folderID *string) ([]models.Note, error) {
	if folderID == nil {
		return s.noteRepo.ListByUser(ctx, userID)
	}
	return s.noteRepo.ListByFolder(ctx, folderID, userID)
}

// UpdateNote applies a partial update: absent fields stay untouched.
func (s *noteService) UpdateNote(ctx context.Context, id string, req *services.UpdateNoteRequest) (*models.Note, error) {
	note, err := s.noteRepo.GetByID(ctx, id, req.UserID)
	if err != nil {
		return nil, err
	}

	changed := false

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			title = models.DefaultNoteTitle
		}
		if len(title) > config.MaxNoteTitleLength {
			return nil, fmt.Errorf("%w: note title too long", domain.ErrValidation)
		}
		if title != note.Title {
			note.Title = title
			changed = true
		}
	}

	if req.Content != nil {
		note.Content = *req.Content
		changed = true
	}

	// Tri-state: only touch the folder association if the field was present
	if req.FolderID.Present {
		target := req.FolderID.Value
		if !note.InFolder(target) {
			if target != nil {
				if _, err := s.folderRepo.GetByID(ctx, *target, req.UserID); err != nil {
					return nil, err
				}
			}
			note.FolderID = target
			changed = true
		}
	}

	if !changed {
		return note, nil
	}

	note.UpdatedAt = time.Now()

	if err := s.noteRepo.Update(ctx, note); err != nil {
		return nil, err
	}

	s.logger.Info("note updated", "id", note.ID, "title", note.Title)

	return note, nil
}

// MoveNote reassigns the note's folder. Nil moves it to the workspace.
// Moving a note to the folder it is already in succeeds without a write,
// so repeat moves cannot churn updated_at.
func (s *noteService) MoveNote(ctx context.Context, id, userID string, folderID *string) (*models.Note, error) {
	note, err := s.noteRepo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if note.InFolder(folderID) {
		return note, nil
	}

	if folderID != nil {
		if _, err := s.folderRepo.GetByID(ctx, *folderID, userID); err != nil {
			return nil, err
		}
	}

	note.FolderID = folderID
	note.UpdatedAt = time.Now()

	if err := s.noteRepo.Update(ctx, note); err != nil {
		return nil, err
	}

	s.logger.Info("note moved", "id", note.ID, "folder_id", note.FolderID)

	return note, nil
}

// DeleteNote removes the note
func (s *noteService) DeleteNote(ctx context.Context, id, userID string) error {
	if err := s.noteRepo.Delete(ctx, id, userID); err != nil {
		return err
	}

	s.logger.Info("note deleted", "id", id, "user_id", userID)
	return nil
}
