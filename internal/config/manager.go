package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config holds the persistent diagnostic-agent preferences. Environment
// variables override what is stored on disk; CLI flags override both.
type Config struct {
	Provider     string  `json:"provider,omitempty"` // openai, anthropic, local
	APIKey       string  `json:"api_key,omitempty"`
	Model        string  `json:"model,omitempty"`
	BaseURL      string  `json:"base_url,omitempty"`
	MaxTokens    int     `json:"max_tokens,omitempty"`
	Temperature  float32 `json:"temperature,omitempty"`
	MaxToolCalls int     `json:"max_tool_calls,omitempty"`
}

// Manager handles loading and saving the configuration.
type Manager struct {
	configDir string
}

// NewManager creates a configuration manager rooted in the user config dir.
func NewManager() (*Manager, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user config dir: %w", err)
	}
	return &Manager{configDir: filepath.Join(configDir, "raid")}, nil
}

// GetConfigPath returns the absolute path to the config.json file.
func (m *Manager) GetConfigPath() string {
	return filepath.Join(m.configDir, "config.json")
}

// Load reads the configuration from disk and applies environment
// overrides. A missing file is not an error: env vars alone are a
// complete configuration.
func (m *Manager) Load() (*Config, error) {
	var cfg Config

	path := m.GetConfigPath()
	if data, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config json: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	applyEnv(&cfg)
	return &cfg, nil
}

// Save writes the configuration to disk with restricted permissions
// (0600), since it may contain an API key.
func (m *Manager) Save(cfg *Config) error {
	if err := os.MkdirAll(m.configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(m.GetConfigPath(), data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Exists checks if the configuration file has been created.
func (m *Manager) Exists() bool {
	_, err := os.Stat(m.GetConfigPath())
	return !os.IsNotExist(err)
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("AI_PROVIDER"); v != "" {
		cfg.Provider = v
	}
	if v := os.Getenv("AI_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("AI_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("AI_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("AI_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxTokens = n
		}
	}
	if v := os.Getenv("AI_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil && f >= 0 {
			cfg.Temperature = float32(f)
		}
	}
	if v := os.Getenv("AI_MAX_TOOL_CALLS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxToolCalls = n
		}
	}
}
