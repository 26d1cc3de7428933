package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"soapify/internal/config"
	"soapify/internal/domain/models"
	"soapify/internal/domain/services"
	"soapify/internal/httputil"
)

// SOAPHandler handles the four AI-assisted endpoints. Every request is a
// single stateless round trip to the inference API; nothing is persisted.
type SOAPHandler struct {
	service services.SOAPService
	logger  *slog.Logger
}

// NewSOAPHandler creates a new AI endpoint handler
func NewSOAPHandler(service services.SOAPService, logger *slog.Logger) *SOAPHandler {
	return &SOAPHandler{
		service: service,
		logger:  logger,
	}
}

// generateRequest carries the clinician's free-text notes
type generateRequest struct {
	Notes string `json:"notes"`
}

// GenerateSOAP structures free-text notes into the four SOAP sections
// POST /api/ai/generate-soap
func (h *SOAPHandler) GenerateSOAP(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	content, err := h.service.GenerateNote(r.Context(), req.Notes)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, content)
}

// ExplainSOAP explains the reasoning behind one section's text
// POST /api/ai/explain-soap
func (h *SOAPHandler) ExplainSOAP(w http.ResponseWriter, r *http.Request) {
	var req services.ExplainSectionRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if !models.ValidSOAPSection(req.Section) {
		httputil.RespondError(w, http.StatusBadRequest, fmt.Sprintf("unknown section %q", req.Section))
		return
	}

	explanation, err := h.service.ExplainSection(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"explanation": explanation})
}

// assistantRequest carries the full conversation so far
type assistantRequest struct {
	Conversation []models.ChatMessage `json:"conversation"`
}

// ClinicalAssistant answers the latest turn of an assistant conversation
// POST /api/ai/clinical-assistant
func (h *SOAPHandler) ClinicalAssistant(w http.ResponseWriter, r *http.Request) {
	var req assistantRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if len(req.Conversation) == 0 {
		httputil.RespondError(w, http.StatusBadRequest, "conversation is required")
		return
	}

	reply, err := h.service.Assist(r.Context(), req.Conversation)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

// Transcribe converts an uploaded audio recording to text
// POST /api/ai/transcribe (multipart, field "file")
func (h *SOAPHandler) Transcribe(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxTranscriptionBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "audio file is required")
		return
	}
	defer file.Close()

	// Reject empty uploads before spending an upstream call
	if header.Size == 0 {
		httputil.RespondError(w, http.StatusBadRequest, "audio file is empty")
		return
	}

	transcript, err := h.service.Transcribe(r.Context(), header.Filename, file)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"transcript": transcript})
}
