// Package llm wraps the hosted inference API behind small single-shot
// operations: chat completion (optionally in JSON-object mode) and audio
// transcription. Every call is one round trip; retries, streaming, and
// caching are deliberately absent.
package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"soapify/internal/domain"
	"soapify/internal/domain/models"
)

// completionTemperature keeps generation conservative; clinical text
// should not be creative.
const completionTemperature = 0.4

// Client calls the OpenAI-compatible inference endpoints.
type Client struct {
	api        *openai.Client
	chatModel  string
	audioModel string
	logger     *slog.Logger
}

// Config carries the settings needed to construct a Client.
type Config struct {
	APIKey     string
	BaseURL    string // Empty = the provider's default endpoint
	ChatModel  string
	AudioModel string
}

// NewClient creates an inference client. The API key is required; callers
// must refuse to start without one rather than failing per-request.
func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("inference API key is required")
	}

	apiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}

	return &Client{
		api:        openai.NewClientWithConfig(apiCfg),
		chatModel:  cfg.ChatModel,
		audioModel: cfg.AudioModel,
		logger:     logger,
	}, nil
}

// Complete sends one conversation to the chat-completion endpoint and
// returns the assistant's reply text, trimmed.
func (c *Client) Complete(ctx context.Context, system string, conversation []models.ChatMessage) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(conversation)+1)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: system,
	})
	for _, m := range conversation {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: m.Content,
		})
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.chatModel,
		Temperature: completionTemperature,
		Messages:    messages,
	})
	if err != nil {
		return "", c.upstreamError(err, "chat completion")
	}

	return strings.TrimSpace(firstChoice(resp)), nil
}

// CompleteJSON is Complete in JSON-object response mode: the model is
// constrained to emit a single JSON object, returned as raw text for the
// caller to parse and validate.
func (c *Client) CompleteJSON(ctx context.Context, system, user string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.chatModel,
		Temperature: completionTemperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return "", c.upstreamError(err, "structured completion")
	}

	return strings.TrimSpace(firstChoice(resp)), nil
}

// Transcribe sends one buffered audio payload to the transcription
// endpoint. An empty transcript is a valid result, not an error.
func (c *Client) Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error) {
	if filename == "" {
		filename = "audio.webm"
	}

	resp, err := c.api.CreateTranscription(ctx, openai.AudioRequest{
		Model:    c.audioModel,
		Reader:   audio,
		FilePath: filename,
		Format:   openai.AudioResponseFormatJSON,
	})
	if err != nil {
		return "", c.upstreamError(err, "transcription")
	}

	return resp.Text, nil
}

// upstreamError translates provider failures into domain errors. API
// errors keep the upstream message and status; transport failures carry
// no status and map to a generic 500 at the boundary.
func (c *Client) upstreamError(err error, op string) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		c.logger.Warn("inference API error",
			"operation", op,
			"status", apiErr.HTTPStatusCode,
			"message", apiErr.Message,
		)
		return &domain.UpstreamError{
			Message: apiErr.Message,
			Status:  apiErr.HTTPStatusCode,
		}
	}

	c.logger.Error("inference transport failure", "operation", op, "error", err)
	return fmt.Errorf("%s: %w", op, domain.ErrUpstream)
}

func firstChoice(resp openai.ChatCompletionResponse) string {
	if len(resp.Choices) == 0 {
		return ""
	}
	return resp.Choices[0].Message.Content
}
