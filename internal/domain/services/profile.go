package services

import (
	"context"

	"soapify/internal/domain/models"
)

// UpdateProfileRequest carries the editable clinician display fields
type UpdateProfileRequest struct {
	FirstName      *string `json:"first_name"`
	LastName       *string `json:"last_name"`
	Title          *string `json:"title"`
	Specialization *string `json:"specialization"`
	License        *string `json:"license"`
}

// ProfileService manages the clinician profile stored as Supabase user metadata
type ProfileService interface {
	// GetProfile reads the current profile for the user
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)

	// UpdateProfile merges the provided fields into the stored metadata
	UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*models.Profile, error)
}
