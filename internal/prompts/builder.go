package prompts

import (
	"fmt"
	"strings"
)

// PromptBuilder helps compose prompts from fragments and variables.
type PromptBuilder struct {
	basePrompt *Prompt
	fragments  []string
	variables  map[string]string
}

// NewPromptBuilder creates a new prompt builder based on a registered prompt.
func NewPromptBuilder(registry *Registry, id string) (*PromptBuilder, error) {
	basePrompt, err := registry.Get(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get base prompt: %w", err)
	}

	return &PromptBuilder{
		basePrompt: basePrompt,
		fragments:  []string{basePrompt.Content},
		variables:  make(map[string]string),
	}, nil
}

// AddFragment appends a fragment to the prompt.
func (b *PromptBuilder) AddFragment(text string) *PromptBuilder {
	b.fragments = append(b.fragments, text)
	return b
}

// SetVariable sets a variable for template substitution.
func (b *PromptBuilder) SetVariable(key, value string) *PromptBuilder {
	b.variables[key] = value
	return b
}

// Build constructs the final prompt string.
func (b *PromptBuilder) Build() (string, error) {
	result := strings.Join(b.fragments, "\n\n")

	// Simple {{key}} substitution
	for key, value := range b.variables {
		placeholder := fmt.Sprintf("{{%s}}", key)
		result = strings.ReplaceAll(result, placeholder, value)
	}

	return result, nil
}

// BuildDiagnosticPrompt assembles the system prompt for a diagnostic
// session: the base prompt plus the host snapshot and any known issues
// matched against the problem statement.
func BuildDiagnosticPrompt(systemContext, knownIssues string) (string, error) {
	b, err := NewPromptBuilder(DefaultRegistry(), "diagnostic")
	if err != nil {
		return "", err
	}
	if systemContext != "" {
		b.AddFragment("SYSTEM CONTEXT:\n" + systemContext)
	}
	if knownIssues != "" {
		b.AddFragment("KNOWN ISSUES MATCHING THE PROBLEM STATEMENT (verify before trusting):\n" + knownIssues)
	}
	return b.Build()
}
