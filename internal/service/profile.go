package service

import (
	"context"
	"fmt"
	"log/slog"

	"soapify/internal/auth"
	"soapify/internal/domain/models"
	"soapify/internal/domain/services"
)

type profileService struct {
	admin  *auth.AdminClient
	logger *slog.Logger
}

// NewProfileService creates a profile service backed by the Supabase
// admin API. The profile lives in user metadata, not in our tables.
func NewProfileService(admin *auth.AdminClient, logger *slog.Logger) services.ProfileService {
	return &profileService{
		admin:  admin,
		logger: logger,
	}
}

// GetProfile reads the current profile for the user
func (s *profileService) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	user, err := s.admin.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	return models.ProfileFromMetadata(user.ID, user.Email, user.UserMetadata), nil
}

// UpdateProfile merges the provided fields into the stored metadata.
// Fields absent from the request keep their stored values.
func (s *profileService) UpdateProfile(ctx context.Context, userID string, req *services.UpdateProfileRequest) (*models.Profile, error) {
	user, err := s.admin.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	profile := models.ProfileFromMetadata(user.ID, user.Email, user.UserMetadata)

	if req.FirstName != nil {
		profile.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		profile.LastName = *req.LastName
	}
	if req.Title != nil && *req.Title != "" {
		profile.Title = *req.Title
	}
	if req.Specialization != nil {
		profile.Specialization = *req.Specialization
	}
	if req.License != nil {
		profile.License = *req.License
	}

	updated, err := s.admin.UpdateUserMetadata(ctx, userID, profile.Metadata())
	if err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}

	s.logger.Info("profile updated", "user_id", userID)

	return models.ProfileFromMetadata(updated.ID, updated.Email, updated.UserMetadata), nil
}
