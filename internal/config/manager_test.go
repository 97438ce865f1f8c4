package config

import "testing"

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("AI_PROVIDER", "anthropic")
	t.Setenv("AI_API_KEY", "sk-test")
	t.Setenv("AI_MODEL", "claude-3-5-sonnet-20241022")
	t.Setenv("AI_BASE_URL", "http://localhost:11434/v1")
	t.Setenv("AI_MAX_TOKENS", "2048")
	t.Setenv("AI_TEMPERATURE", "0.3")
	t.Setenv("AI_MAX_TOOL_CALLS", "25")

	cfg := &Config{Provider: "openai", MaxToolCalls: 50}
	applyEnv(cfg)

	if cfg.Provider != "anthropic" {
		t.Errorf("provider = %s", cfg.Provider)
	}
	if cfg.APIKey != "sk-test" || cfg.Model != "claude-3-5-sonnet-20241022" {
		t.Errorf("key/model = %s / %s", cfg.APIKey, cfg.Model)
	}
	if cfg.BaseURL != "http://localhost:11434/v1" {
		t.Errorf("base url = %s", cfg.BaseURL)
	}
	if cfg.MaxTokens != 2048 || cfg.MaxToolCalls != 25 {
		t.Errorf("max tokens/calls = %d / %d", cfg.MaxTokens, cfg.MaxToolCalls)
	}
	if cfg.Temperature < 0.29 || cfg.Temperature > 0.31 {
		t.Errorf("temperature = %v", cfg.Temperature)
	}
}

func TestApplyEnvIgnoresInvalidNumbers(t *testing.T) {
	t.Setenv("AI_MAX_TOKENS", "not-a-number")
	t.Setenv("AI_MAX_TOOL_CALLS", "-5")

	cfg := &Config{MaxTokens: 1024, MaxToolCalls: 50}
	applyEnv(cfg)

	if cfg.MaxTokens != 1024 || cfg.MaxToolCalls != 50 {
		t.Errorf("invalid env mutated config: %d / %d", cfg.MaxTokens, cfg.MaxToolCalls)
	}
}
