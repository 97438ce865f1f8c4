package providers

import (
	"fmt"

	"github.com/raidctl/raid/internal/agent"
)

// Settings selects and parameterizes a completion provider.
type Settings struct {
	Provider string // openai | anthropic | local
	APIKey   string
	Model    string // empty = provider default
	BaseURL  string // optional override, used by local and OpenAI-compatible endpoints
}

const (
	defaultOpenAIModel    = "gpt-4o-mini"
	defaultAnthropicModel = "claude-3-5-sonnet-20241022"
	defaultLocalModel     = "llama3.1"
	defaultLocalBaseURL   = "http://localhost:11434/v1"
)

// NewClient builds the agent.LLMClient for the given settings and
// returns it with the resolved model name.
func NewClient(s Settings) (agent.LLMClient, string, error) {
	switch s.Provider {
	case "", "openai":
		if s.APIKey == "" {
			return nil, "", fmt.Errorf("openai provider requires an API key (set AI_API_KEY)")
		}
		model := s.Model
		if model == "" {
			model = defaultOpenAIModel
		}
		return NewOpenAIClient(s.APIKey, s.BaseURL), model, nil

	case "anthropic":
		if s.APIKey == "" {
			return nil, "", fmt.Errorf("anthropic provider requires an API key (set AI_API_KEY)")
		}
		model := s.Model
		if model == "" {
			model = defaultAnthropicModel
		}
		return NewAnthropicClient(s.APIKey), model, nil

	case "local", "ollama":
		// Local servers speak the OpenAI wire protocol and ignore the key.
		baseURL := s.BaseURL
		if baseURL == "" {
			baseURL = defaultLocalBaseURL
		}
		apiKey := s.APIKey
		if apiKey == "" {
			apiKey = "local"
		}
		model := s.Model
		if model == "" {
			model = defaultLocalModel
		}
		return NewOpenAIClient(apiKey, baseURL), model, nil

	default:
		return nil, "", fmt.Errorf("unknown AI provider: %s (supported: openai, anthropic, local)", s.Provider)
	}
}
