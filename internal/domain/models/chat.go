package models

import (
	"encoding/json"
)

// ChatRole is a two-variant role for clinical assistant conversation turns.
type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// DecodeChatRole maps an inbound role string to a ChatRole.
// Only the exact value "assistant" decodes to RoleAssistant; everything
// else (including empty or unknown values) defaults to RoleUser.
func DecodeChatRole(raw string) ChatRole {
	if raw == string(RoleAssistant) {
		return RoleAssistant
	}
	return RoleUser
}

// ChatMessage is a single conversation turn. Conversation state lives
// entirely with the caller; the server holds nothing between requests.
type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}

// UnmarshalJSON applies the defensive role decoding rule so that
// malformed roles never reach the upstream API.
func (m *ChatMessage) UnmarshalJSON(data []byte) error {
	var raw struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	m.Role = DecodeChatRole(raw.Role)
	m.Content = raw.Content
	return nil
}
