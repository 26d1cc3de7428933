package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"soapify/internal/domain"
	"soapify/internal/domain/models"
	"soapify/internal/domain/services"
	"soapify/internal/llm/prompts"
)

// inferenceClient is the slice of the llm client this service needs.
// Tests substitute a fake; production wires *llm.Client.
type inferenceClient interface {
	Complete(ctx context.Context, system string, conversation []models.ChatMessage) (string, error)
	CompleteJSON(ctx context.Context, system, user string) (string, error)
	Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error)
}

type soapService struct {
	client  inferenceClient
	prompts *prompts.Prompts
	logger  *slog.Logger
}

// NewSOAPService creates the AI-assisted note service
func NewSOAPService(client inferenceClient, p *prompts.Prompts, logger *slog.Logger) services.SOAPService {
	return &soapService{
		client:  client,
		prompts: p,
		logger:  logger,
	}
}

// GenerateNote turns free-text notes into a four-section SOAP structure.
// The upstream reply must parse as a JSON object containing all four
// sections; anything less is rejected wholesale rather than partially
// applied.
func (s *soapService) GenerateNote(ctx context.Context, notes string) (*models.SOAPContent, error) {
	notes = strings.TrimSpace(notes)
	if notes == "" {
		return nil, fmt.Errorf("%w: notes field is required", domain.ErrValidation)
	}

	raw, err := s.client.CompleteJSON(ctx, s.prompts.Generate, notes)
	if err != nil {
		return nil, err
	}

	if raw == "" {
		return nil, &domain.UpstreamError{
			Message: "The AI response was empty.",
			Status:  http.StatusInternalServerError,
		}
	}

	var content models.SOAPContent
	if err := json.Unmarshal([]byte(raw), &content); err != nil {
		s.logger.Warn("unparseable generation reply", "error", err)
		return nil, &domain.UpstreamError{
			Message: "Unable to parse AI response.",
			Status:  http.StatusInternalServerError,
		}
	}

	if !content.IsComplete() {
		return nil, &domain.UpstreamError{
			Message: "AI response missing required sections.",
			Status:  http.StatusInternalServerError,
		}
	}

	return &content, nil
}

// ExplainSection produces a short rationale for one section's text
func (s *soapService) ExplainSection(ctx context.Context, req *services.ExplainSectionRequest) (string, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return "", fmt.Errorf("%w: section content is required", domain.ErrValidation)
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = "Clinical note"
	}

	user := fmt.Sprintf("Note title: %s\nSection: %s\nContent: %s", title, req.Section, content)

	explanation, err := s.client.Complete(ctx, s.prompts.Explain, []models.ChatMessage{
		{Role: models.RoleUser, Content: user},
	})
	if err != nil {
		return "", err
	}

	if explanation == "" {
		return "", &domain.UpstreamError{
			Message: "Assistant returned an empty explanation.",
			Status:  http.StatusInternalServerError,
		}
	}

	return explanation, nil
}

// Assist answers the latest turn of a clinical assistant conversation.
// The conversation arrives fully formed from the caller; roles were
// already coerced to the two-variant enum at decode time.
func (s *soapService) Assist(ctx context.Context, conversation []models.ChatMessage) (string, error) {
	reply, err := s.client.Complete(ctx, s.prompts.Assistant, conversation)
	if err != nil {
		return "", err
	}

	if reply == "" {
		return "", &domain.UpstreamError{
			Message: "Assistant returned an empty response.",
			Status:  http.StatusInternalServerError,
		}
	}

	return reply, nil
}

// Transcribe converts one buffered audio payload to text. An empty
// transcript means no speech was detected and is returned as-is.
func (s *soapService) Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error) {
	return s.client.Transcribe(ctx, filename, audio)
}
