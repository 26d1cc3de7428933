package services

import (
	"context"
	"io"

	"soapify/internal/domain/models"
)

// ExplainSectionRequest is the request for explaining one SOAP section
type ExplainSectionRequest struct {
	Section string `json:"section"`
	Content string `json:"content"`
	Title   string `json:"title"`
}

// SOAPService defines the AI-assisted operations. Each call is a single
// round trip to the hosted inference API; no state is held between calls.
type SOAPService interface {
	// GenerateNote turns free-text notes into a complete four-section
	// SOAP structure. All four sections must come back or the result is
	// rejected as malformed.
	GenerateNote(ctx context.Context, notes string) (*models.SOAPContent, error)

	// ExplainSection produces a short rationale for one section's text
	ExplainSection(ctx context.Context, req *ExplainSectionRequest) (string, error)

	// Assist answers the latest turn of a clinical assistant conversation
	Assist(ctx context.Context, conversation []models.ChatMessage) (string, error)

	// Transcribe converts one buffered audio payload to text.
	// An empty transcript is a legitimate "no speech detected" result.
	Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error)
}
