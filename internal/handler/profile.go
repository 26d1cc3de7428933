package handler

import (
	"log/slog"
	"net/http"

	"soapify/internal/domain/services"
	"soapify/internal/httputil"
)

// ProfileHandler handles clinician profile HTTP requests
type ProfileHandler struct {
	service services.ProfileService
	logger  *slog.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(service services.ProfileService, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		service: service,
		logger:  logger,
	}
}

// GetProfile retrieves the clinician profile
// GET /api/users/me/profile
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	profile, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, profile)
}

// UpdateProfile merges the submitted fields into the stored profile
// PATCH /api/users/me/profile
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req services.UpdateProfileRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	profile, err := h.service.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, profile)
}
