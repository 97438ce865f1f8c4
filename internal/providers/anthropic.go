package providers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/raidctl/raid/internal/agent"

	anthropic "github.com/liushuangls/go-anthropic/v2"
)

// AnthropicClient implements agent.LLMClient against the Anthropic
// Messages API.
type AnthropicClient struct {
	client *anthropic.Client
}

// NewAnthropicClient creates a client for the given API key.
func NewAnthropicClient(apiKey string) *AnthropicClient {
	return &AnthropicClient{client: anthropic.NewClient(apiKey)}
}

// Chat sends the conversation and tool catalogue, returning the
// normalized completion.
func (c *AnthropicClient) Chat(ctx context.Context, model string, messages []agent.ChatMessage, toolSchemas []agent.ToolSchema, opts agent.ChatOptions) (agent.CompletionResponse, error) {
	var systemParts []anthropic.MessageSystemPart
	var anthropicMsgs []anthropic.Message

	// tool_result blocks must follow an assistant turn with tool_use,
	// so track that while converting the replayed history.
	var prevAssistantHadToolCalls bool

	for _, msg := range messages {
		switch msg.Role {
		case agent.RoleSystem:
			systemParts = append(systemParts, anthropic.MessageSystemPart{
				Type: "text",
				Text: msg.Content,
			})
			prevAssistantHadToolCalls = false
		case agent.RoleUser:
			anthropicMsgs = append(anthropicMsgs, anthropic.Message{
				Role:    anthropic.RoleUser,
				Content: []anthropic.MessageContent{anthropic.NewTextMessageContent(msg.Content)},
			})
			prevAssistantHadToolCalls = false
		case agent.RoleAssistant:
			var content []anthropic.MessageContent
			if msg.Content != "" && msg.Content != " " {
				content = append(content, anthropic.NewTextMessageContent(msg.Content))
			}
			for _, tc := range msg.ToolCalls {
				argsJSON, _ := json.Marshal(tc.Args)
				content = append(content, anthropic.NewToolUseMessageContent(
					tc.ID,
					tc.Name,
					json.RawMessage(argsJSON),
				))
			}
			anthropicMsgs = append(anthropicMsgs, anthropic.Message{
				Role:    anthropic.RoleAssistant,
				Content: content,
			})
			prevAssistantHadToolCalls = len(msg.ToolCalls) > 0
		case agent.RoleTool:
			if !prevAssistantHadToolCalls {
				continue
			}
			content := msg.Content
			if content == "" {
				content = "{}"
			}
			// msg.Name carries the tool_use_id the result pairs with.
			toolResult := anthropic.NewToolResultMessageContent(msg.Name, content, false)
			anthropicMsgs = append(anthropicMsgs, anthropic.Message{
				Role:    anthropic.RoleUser,
				Content: []anthropic.MessageContent{toolResult},
			})
		}
	}

	var toolDefs []anthropic.ToolDefinition
	for _, ts := range toolSchemas {
		var schemaObj map[string]any
		if err := json.Unmarshal([]byte(ts.JSONSchema), &schemaObj); err != nil {
			return agent.CompletionResponse{}, fmt.Errorf("invalid tool schema JSON for %s: %w", ts.Name, err)
		}
		toolDefs = append(toolDefs, anthropic.ToolDefinition{
			Name:        ts.Name,
			Description: ts.Description,
			InputSchema: schemaObj,
		})
	}

	maxTokens := 4096
	if opts.MaxOutputTokens > 0 {
		maxTokens = opts.MaxOutputTokens
	}
	temperature := float32(0.1)
	if opts.Temperature > 0 {
		temperature = opts.Temperature
	}

	req := anthropic.MessagesRequest{
		Model:       anthropic.Model(model),
		Messages:    anthropicMsgs,
		MaxTokens:   maxTokens,
		Temperature: &temperature,
	}
	if len(systemParts) > 0 {
		req.MultiSystem = systemParts
	}
	if len(toolDefs) > 0 {
		req.Tools = toolDefs
	}

	resp, err := c.client.CreateMessages(ctx, req)
	if err != nil {
		httpStatus, retryAfter := extractErrorMetadata(err)
		return agent.CompletionResponse{}, agent.WrapProviderError(err, httpStatus, retryAfter)
	}

	var textContent string
	var toolCalls []agent.ToolCall
	for _, block := range resp.Content {
		switch block.Type {
		case anthropic.MessagesContentTypeText:
			if block.Text != nil {
				textContent += *block.Text
			}
		case "tool_use":
			if block.MessageContentToolUse == nil || block.ID == "" || block.Name == "" {
				continue
			}
			call := agent.ToolCall{
				ID:   block.ID,
				Name: block.Name,
				Args: map[string]any{},
			}
			if len(block.Input) > 0 {
				var args map[string]any
				if err := json.Unmarshal(block.Input, &args); err != nil {
					call.Error = fmt.Sprintf("invalid JSON in tool input: %v", err)
				} else {
					call.Args = args
				}
			}
			toolCalls = append(toolCalls, call)
		}
	}

	finishReason := "stop"
	switch {
	case len(toolCalls) > 0:
		finishReason = "tool_calls"
	case resp.StopReason == "max_tokens":
		finishReason = "length"
	case resp.StopReason == "content_filtered":
		finishReason = "content_filter"
	}

	return agent.CompletionResponse{
		Assistant: agent.ChatMessage{
			Role:      agent.RoleAssistant,
			Content:   textContent,
			ToolCalls: toolCalls,
		},
		ToolCalls: toolCalls,
		Usage: agent.Usage{
			Prompt:     resp.Usage.InputTokens,
			Completion: resp.Usage.OutputTokens,
			Total:      resp.Usage.InputTokens + resp.Usage.OutputTokens,
		},
		FinishReason: finishReason,
	}, nil
}
