package handler

import (
	"log/slog"
	"net/http"

	"soapify/internal/domain/services"
	"soapify/internal/httputil"
)

// NoteHandler handles note HTTP requests
type NoteHandler struct {
	service services.NoteService
	logger  *slog.Logger
}

// NewNoteHandler creates a new note handler
func NewNoteHandler(service services.NoteService, logger *slog.Logger) *NoteHandler {
	return &NoteHandler{
		service: service,
		logger:  logger,
	}
}

// CreateNote creates a note; an empty body quick-creates a blank note
// POST /api/notes
func (h *NoteHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req services.CreateNoteRequest
	if r.ContentLength != 0 {
		if err := httputil.ParseJSON(w, r, &req); err != nil {
			httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}
	req.UserID = userID

	note, err := h.service.CreateNote(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, note)
}

// ListNotes lists the user's notes, optionally restricted to one folder
// GET /api/notes[?folder_id=...]
func (h *NoteHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var folderID *string
	if v := r.URL.Query().Get("folder_id"); v != "" {
		folderID = &v
	}

	notes, err := h.service.ListNotes(r.Context(), userID, folderID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, notes)
}

// GetNote retrieves one note
// GET /api/notes/{id}
func (h *NoteHandler) GetNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	note, err := h.service.GetNote(r.Context(), r.PathValue("id"), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, note)
}

// UpdateNote applies a partial update (title, sections, folder)
// PATCH /api/notes/{id}
func (h *NoteHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req services.UpdateNoteRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.UserID = userID

	note, err := h.service.UpdateNote(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, note)
}

// moveNoteRequest targets a folder; null means the workspace
type moveNoteRequest struct {
	FolderID *string `json:"folder_id"`
}

// MoveNote reassigns the note's folder
// POST /api/notes/{id}/move
func (h *NoteHandler) MoveNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req moveNoteRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	note, err := h.service.MoveNote(r.Context(), r.PathValue("id"), userID, req.FolderID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, note)
}

// DeleteNote removes the note
// DELETE /api/notes/{id}
func (h *NoteHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteNote(r.Context(), r.PathValue("id"), userID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
