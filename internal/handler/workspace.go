package handler

import (
	"log/slog"
	"net/http"
	"time"

	"soapify/internal/domain/services"
	"soapify/internal/httputil"
	"soapify/internal/workspace"
)

// WorkspaceHandler serves the aggregated dashboard view: folders with
// note counts, notes with relative timestamps, both filterable by ?q=.
type WorkspaceHandler struct {
	folders services.FolderService
	notes   services.NoteService
	logger  *slog.Logger
}

// NewWorkspaceHandler creates a new workspace handler
func NewWorkspaceHandler(folders services.FolderService, notes services.NoteService, logger *slog.Logger) *WorkspaceHandler {
	return &WorkspaceHandler{
		folders: folders,
		notes:   notes,
		logger:  logger,
	}
}

// workspaceResponse is the dashboard payload
type workspaceResponse struct {
	Folders []workspace.FolderView `json:"folders"`
	Notes   []workspace.NoteView   `json:"notes"`
}

// GetWorkspace returns the display-ready workspace
// GET /api/workspace[?q=...]
func (h *WorkspaceHandler) GetWorkspace(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	folders, err := h.folders.ListFolders(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	notes, err := h.notes.ListNotes(r.Context(), userID, nil)
	if err != nil {
		handleError(w, err)
		return
	}

	now := time.Now()
	query := r.URL.Query().Get("q")

	resp := workspaceResponse{
		Folders: workspace.FilterFolders(workspace.BuildFolderViews(folders, notes, now), query),
		Notes:   workspace.FilterNotes(workspace.BuildNoteViews(notes, now), query),
	}

	httputil.RespondJSON(w, http.StatusOK, resp)
}
