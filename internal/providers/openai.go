package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/raidctl/raid/internal/agent"

	openai "github.com/meguminnnnnnnnn/go-openai"
)

// OpenAIClient implements agent.LLMClient against the OpenAI chat
// completions API. It also serves every OpenAI-compatible endpoint
// (Ollama, LM Studio, vLLM) via a custom base URL.
type OpenAIClient struct {
	client  *openai.Client
	baseURL string
}

// NewOpenAIClient creates a client. An empty baseURL targets api.openai.com.
func NewOpenAIClient(apiKey, baseURL string) *OpenAIClient {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &OpenAIClient{
		client:  openai.NewClientWithConfig(config),
		baseURL: baseURL,
	}
}

// Chat sends the conversation and tool catalogue, returning the
// normalized completion.
func (c *OpenAIClient) Chat(ctx context.Context, model string, messages []agent.ChatMessage, toolSchemas []agent.ToolSchema, opts agent.ChatOptions) (agent.CompletionResponse, error) {
	openaiMsgs := make([]openai.ChatCompletionMessage, 0, len(messages))
	var systemMsg string

	// The API rejects tool messages that do not follow an assistant
	// message carrying tool_calls, so track that across the replay.
	var prevAssistantHadToolCalls bool

	for _, msg := range messages {
		switch msg.Role {
		case agent.RoleSystem:
			systemMsg = msg.Content
			prevAssistantHadToolCalls = false
		case agent.RoleUser:
			openaiMsgs = append(openaiMsgs, openai.ChatCompletionMessage{
				Role:    openai.ChatMessageRoleUser,
				Content: msg.Content,
			})
			prevAssistantHadToolCalls = false
		case agent.RoleAssistant:
			// Empty assistant content serializes to null and the API
			// rejects it; a single space is accepted and equivalent.
			content := msg.Content
			if content == "" {
				content = " "
			}
			var toolCalls []openai.ToolCall
			for _, tc := range msg.ToolCalls {
				argsJSON, _ := json.Marshal(tc.Args)
				toolCalls = append(toolCalls, openai.ToolCall{
					ID:   tc.ID,
					Type: "function",
					Function: openai.FunctionCall{
						Name:      tc.Name,
						Arguments: string(argsJSON),
					},
				})
			}
			openaiMsgs = append(openaiMsgs, openai.ChatCompletionMessage{
				Role:      openai.ChatMessageRoleAssistant,
				Content:   content,
				ToolCalls: toolCalls,
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
			// msg.Name carries the tool_call_id the result pairs with.
			openaiMsgs = append(openaiMsgs, openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				ToolCallID: msg.Name,
				Content:    content,
			})
		}
	}

	var tools []openai.Tool
	for _, ts := range toolSchemas {
		var schemaObj map[string]any
		if err := json.Unmarshal([]byte(ts.JSONSchema), &schemaObj); err != nil {
			return agent.CompletionResponse{}, fmt.Errorf("invalid tool schema JSON for %s: %w", ts.Name, err)
		}
		tools = append(tools, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        ts.Name,
				Description: ts.Description,
				Parameters:  schemaObj,
			},
		})
	}

	req := openai.ChatCompletionRequest{
		Model:    model,
		Messages: openaiMsgs,
	}
	if systemMsg != "" {
		req.Messages = append([]openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleSystem,
			Content: systemMsg,
		}}, req.Messages...)
	}
	if len(tools) > 0 {
		req.Tools = tools
		req.ToolChoice = "auto"
	}
	if opts.MaxOutputTokens > 0 {
		req.MaxTokens = opts.MaxOutputTokens
	}
	if opts.Temperature > 0 {
		req.Temperature = &opts.Temperature
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		httpStatus, retryAfter := extractErrorMetadata(err)
		return agent.CompletionResponse{}, agent.WrapProviderError(err, httpStatus, retryAfter)
	}
	if len(resp.Choices) == 0 {
		return agent.CompletionResponse{}, &agent.MalformedResponseError{Detail: "empty response from provider"}
	}

	choice := resp.Choices[0]
	assistant := agent.ChatMessage{
		Role:    agent.RoleAssistant,
		Content: choice.Message.Content,
	}

	var toolCalls []agent.ToolCall
	for _, tc := range choice.Message.ToolCalls {
		call := agent.ToolCall{
			ID:   tc.ID,
			Name: tc.Function.Name,
			Args: map[string]any{},
		}
		if tc.Function.Arguments != "" {
			var args map[string]any
			if err := json.Unmarshal([]byte(tc.Function.Arguments), &args); err != nil {
				call.Error = fmt.Sprintf("invalid JSON in arguments: %v", err)
			} else {
				call.Args = args
			}
		}
		toolCalls = append(toolCalls, call)
	}
	assistant.ToolCalls = toolCalls

	finishReason := "stop"
	switch {
	case len(toolCalls) > 0:
		finishReason = "tool_calls"
	case choice.FinishReason == openai.FinishReasonLength:
		finishReason = "length"
	case choice.FinishReason == openai.FinishReasonContentFilter:
		finishReason = "content_filter"
	}

	return agent.CompletionResponse{
		Assistant: assistant,
		ToolCalls: toolCalls,
		Usage: agent.Usage{
			Prompt:     resp.Usage.PromptTokens,
			Completion: resp.Usage.CompletionTokens,
			Total:      resp.Usage.TotalTokens,
		},
		FinishReason: finishReason,
	}, nil
}

// extractErrorMetadata pulls an HTTP status and Retry-After hint out of
// an SDK error so the retry layer can classify and pace correctly.
func extractErrorMetadata(err error) (int, string) {
	if err == nil {
		return 0, ""
	}

	errStr := err.Error()
	var httpStatus int
	for _, code := range []int{
		http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout,
		http.StatusUnauthorized,
		http.StatusForbidden,
		http.StatusBadRequest,
		http.StatusPaymentRequired,
	} {
		if strings.Contains(errStr, fmt.Sprintf("%d", code)) {
			httpStatus = code
			break
		}
	}

	var retryAfter string
	lower := strings.ToLower(errStr)
	if idx := strings.Index(lower, "retry-after"); idx != -1 {
		fields := strings.Fields(errStr[idx+len("retry-after"):])
		if len(fields) > 0 {
			retryAfter = strings.Trim(fields[0], ":,")
		}
	} else if idx := strings.Index(lower, "retry after"); idx != -1 {
		fields := strings.Fields(errStr[idx+len("retry after"):])
		if len(fields) > 0 {
			retryAfter = strings.Trim(fields[0], ":,")
		}
	}

	return httpStatus, retryAfter
}
