package providers

import "testing"

func TestNewClientDefaults(t *testing.T) {
	tests := []struct {
		name      string
		settings  Settings
		wantModel string
		wantErr   bool
	}{
		{"openai default model", Settings{Provider: "openai", APIKey: "sk-x"}, defaultOpenAIModel, false},
		{"empty provider is openai", Settings{APIKey: "sk-x"}, defaultOpenAIModel, false},
		{"anthropic default model", Settings{Provider: "anthropic", APIKey: "sk-x"}, defaultAnthropicModel, false},
		{"local needs no key", Settings{Provider: "local"}, defaultLocalModel, false},
		{"ollama alias", Settings{Provider: "ollama", Model: "qwen2.5"}, "qwen2.5", false},
		{"openai without key", Settings{Provider: "openai"}, "", true},
		{"anthropic without key", Settings{Provider: "anthropic"}, "", true},
		{"unknown provider", Settings{Provider: "bard", APIKey: "x"}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, model, err := NewClient(tt.settings)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewClient: %v", err)
			}
			if client == nil {
				t.Fatal("nil client")
			}
			if model != tt.wantModel {
				t.Errorf("model = %s, want %s", model, tt.wantModel)
			}
		})
	}
}

func TestExtractErrorMetadata(t *testing.T) {
	status, retryAfter := extractErrorMetadata(errorString("429 Too Many Requests, retry after 30 seconds"))
	if status != 429 {
		t.Errorf("status = %d", status)
	}
	if retryAfter != "30" {
		t.Errorf("retryAfter = %q", retryAfter)
	}

	status, _ = extractErrorMetadata(errorString("401 Unauthorized"))
	if status != 401 {
		t.Errorf("status = %d", status)
	}
}

type errorString string

func (e errorString) Error() string { return string(e) }
