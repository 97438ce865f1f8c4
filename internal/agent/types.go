package agent

import (
	"context"
	"fmt"
)

// MessageRole represents the role of a chat message.
type MessageRole string

const (
	RoleSystem    MessageRole = "system"
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
	RoleTool      MessageRole = "tool"
)

// ChatMessage is the provider-agnostic message we pass around.
type ChatMessage struct {
	Role    MessageRole // Role of the message sender
	Content string      // Message content
	Name    string      // Optional: tool call ID for tool messages
	// ToolCalls stores the tool calls made by an assistant message.
	// Providers require them when the conversation is replayed.
	ToolCalls []ToolCall
}

// Validate checks if the ChatMessage is valid.
func (m ChatMessage) Validate() error {
	switch m.Role {
	case RoleSystem, RoleUser, RoleAssistant, RoleTool:
	default:
		return fmt.Errorf("invalid message role: %s", m.Role)
	}
	if m.Role == RoleTool && m.Name == "" {
		return fmt.Errorf("tool messages must have a Name field")
	}
	return nil
}

// Usage holds token accounting returned by providers.
type Usage struct {
	Prompt     int
	Completion int
	Total      int
}

// ToolCall represents a diagnostic tool the assistant requested.
type ToolCall struct {
	ID    string         `json:"id"` // Request ID, unique per session
	Name  string         `json:"name"`
	Args  map[string]any `json:"args,omitempty"`
	Error string         `json:"error,omitempty"` // Set by provider if the call could not be decoded
}

// CompletionResponse is a normalized result of one chat call.
type CompletionResponse struct {
	Assistant    ChatMessage
	ToolCalls    []ToolCall // zero or more tool calls requested by the model
	Usage        Usage
	FinishReason string // "stop" | "length" | "tool_calls" | "content_filter"
}

// LLMClient abstracts the completion provider (OpenAI, Anthropic, local).
type LLMClient interface {
	Chat(ctx context.Context, model string, messages []ChatMessage, toolSchemas []ToolSchema, opts ChatOptions) (CompletionResponse, error)
}

// ChatOptions keeps knobs forwarded to the provider SDK.
type ChatOptions struct {
	Temperature     float32
	MaxOutputTokens int
	RetryConfig     *RetryConfig // Optional retry configuration (nil = use defaults)
}

// ToolSchema is the JSON schema the provider expects for function calling.
type ToolSchema struct {
	Name        string
	Description string
	JSONSchema  string // raw JSON string
}
