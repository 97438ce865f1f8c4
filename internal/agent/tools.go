package agent

import (
	"context"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// ToolFunc executes a diagnostic tool with validated arguments.
type ToolFunc func(ctx context.Context, args map[string]any) (string, error)

// Tool is a named diagnostic capability with a declared argument schema
// and a bounded-time executor. Definitions are immutable once registered.
type Tool struct {
	Name        string
	Description string
	SchemaJSON  string
	Fn          ToolFunc
	Category    string // e.g. "systemd", "kubernetes", "meta"
}

// ValidateArgs validates the provided arguments against the tool's JSON schema.
func (t Tool) ValidateArgs(args map[string]any) error {
	schemaLoader := gojsonschema.NewStringLoader(t.SchemaJSON)
	documentLoader := gojsonschema.NewGoLoader(args)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}

	if !result.Valid() {
		var errorMsgs []string
		for _, err := range result.Errors() {
			errorMsgs = append(errorMsgs, err.String())
		}
		return &ToolValidationError{
			ToolName: t.Name,
			Errors:   errorMsgs,
		}
	}

	return nil
}

// ToolRegistry is the static catalogue of available diagnostic tools.
type ToolRegistry map[string]Tool

// Schemas returns the tool catalogue in the form providers expect.
func (r ToolRegistry) Schemas() []ToolSchema {
	s := make([]ToolSchema, 0, len(r))
	for _, t := range r {
		s = append(s, ToolSchema{
			Name:        t.Name,
			Description: t.Description,
			JSONSchema:  t.SchemaJSON,
		})
	}
	return s
}

// Names returns the registered tool names, for error messages.
func (r ToolRegistry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	return names
}

// FilterByCategory returns a new registry containing only tools of the given category.
func (r ToolRegistry) FilterByCategory(category string) ToolRegistry {
	filtered := make(ToolRegistry)
	for name, tool := range r {
		if tool.Category == category {
			filtered[name] = tool
		}
	}
	return filtered
}
