// Package meta holds tools that steer the session rather than inspect
// the host.
package meta

import (
	"context"
	"fmt"
	"time"

	"github.com/raidctl/raid/internal/agent"
	"github.com/raidctl/raid/internal/issues"
	"github.com/raidctl/raid/internal/tools/hostexec"
)

// NewAskUserTool declares the clarification tool. It is schema-only:
// the session intercepts calls to it and pauses for operator input, so
// the Fn must never actually run.
func NewAskUserTool() agent.Tool {
	return agent.Tool{
		Name:        agent.AskUserToolName,
		Description: "Asks the human operator one clarifying question and waits for the answer. Use only when the investigation genuinely cannot proceed without information the system itself cannot provide.",
		SchemaJSON: `{
			"type": "object",
			"properties": {
				"question": {"type":"string","description":"The single question to ask the operator"}
			},
			"required": ["question"]
		}`,
		Category: "meta",
		Fn: func(context.Context, map[string]any) (string, error) {
			return "", fmt.Errorf("ask_user is handled by the session, not dispatched")
		},
	}
}

// NewKnownIssuesTool searches the built-in failure-pattern catalogue.
func NewKnownIssuesTool(index *issues.Index) agent.Tool {
	return agent.Tool{
		Name:        "known_issues",
		Description: "Searches the catalogue of known failure patterns by symptom or error message and returns causes and remediations for the closest matches.",
		SchemaJSON: `{
			"type": "object",
			"properties": {
				"query": {"type":"string","description":"Symptom, error message, or keywords to search for"},
				"limit": {"type":"integer","minimum":1,"maximum":10,"description":"How many matches to return (default 3)"}
			},
			"required": ["query"]
		}`,
		Category: "meta",
		Fn: func(_ context.Context, args map[string]any) (string, error) {
			query, ok := args["query"].(string)
			if !ok || query == "" {
				return "", fmt.Errorf("query must be a non-empty string")
			}
			limit := 3
			switch v := args["limit"].(type) {
			case float64:
				limit = int(v)
			case int:
				limit = v
			}

			started := time.Now()
			matches, err := index.Search(query, limit)
			if err != nil {
				return "", err
			}
			out := hostexec.DebugResult{
				ToolName:        "known_issues",
				Command:         fmt.Sprintf("(catalogue search: %q)", query),
				Success:         true,
				Output:          issues.FormatMatches(matches),
				ExecutionTimeMS: time.Since(started).Milliseconds(),
			}
			return out.Marshal()
		},
	}
}
