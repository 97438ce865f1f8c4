// Package journal exposes journalctl and kernel-log diagnostics as agent tools.
package journal

import (
	"context"
	"fmt"
	"strconv"

	"github.com/raidctl/raid/internal/agent"
	"github.com/raidctl/raid/internal/tools/hostexec"
)

const (
	defaultLines = 50
	maxLines     = 500
)

// lineCount extracts and bounds the optional "lines" argument.
func lineCount(args map[string]any) string {
	lines := defaultLines
	switch v := args["lines"].(type) {
	case float64:
		lines = int(v)
	case int:
		lines = v
	}
	if lines <= 0 {
		lines = defaultLines
	}
	if lines > maxLines {
		lines = maxLines
	}
	return strconv.Itoa(lines)
}

const linesProperty = `"lines": {"type":"integer","minimum":1,"maximum":500,"description":"How many log lines to return (default 50)"}`

// NewRecentTool tails the systemd journal across all units.
func NewRecentTool(r hostexec.Runner) agent.Tool {
	return agent.Tool{
		Name:        "journalctl_recent",
		Description: "Shows the most recent system journal entries across all units.",
		SchemaJSON:  `{"type":"object","properties":{` + linesProperty + `}}`,
		Category:    "journal",
		Fn: func(ctx context.Context, args map[string]any) (string, error) {
			return hostexec.Collect(ctx, r, "journalctl_recent",
				"journalctl", "-n", lineCount(args), "--no-pager")
		},
	}
}

// NewServiceTool tails the journal for one unit.
func NewServiceTool(r hostexec.Runner) agent.Tool {
	return agent.Tool{
		Name:        "journalctl_service",
		Description: "Shows recent journal entries for a specific systemd service.",
		SchemaJSON: `{
			"type": "object",
			"properties": {
				"service": {"type":"string","description":"Unit name, e.g. sshd"},
				` + linesProperty + `
			},
			"required": ["service"]
		}`,
		Category: "journal",
		Fn: func(ctx context.Context, args map[string]any) (string, error) {
			service, ok := args["service"].(string)
			if !ok || service == "" {
				return "", fmt.Errorf("service must be a non-empty string")
			}
			return hostexec.Collect(ctx, r, "journalctl_service",
				"journalctl", "-u", service, "-n", lineCount(args), "--no-pager")
		},
	}
}

// NewErrorsTool shows recent error-priority journal entries.
func NewErrorsTool(r hostexec.Runner) agent.Tool {
	return agent.Tool{
		Name:        "journalctl_errors",
		Description: "Shows recent journal entries at error priority or worse. Useful to surface failures without knowing which unit produced them.",
		SchemaJSON:  `{"type":"object","properties":{` + linesProperty + `}}`,
		Category:    "journal",
		Fn: func(ctx context.Context, args map[string]any) (string, error) {
			return hostexec.Collect(ctx, r, "journalctl_errors",
				"journalctl", "-p", "err", "-n", lineCount(args), "--no-pager")
		},
	}
}

// NewBootTool shows journal entries from the current boot.
func NewBootTool(r hostexec.Runner) agent.Tool {
	return agent.Tool{
		Name:        "journalctl_boot",
		Description: "Shows journal entries from the current boot, oldest first. Use to trace problems that started at startup.",
		SchemaJSON:  `{"type":"object","properties":{` + linesProperty + `}}`,
		Category:    "journal",
		Fn: func(ctx context.Context, args map[string]any) (string, error) {
			return hostexec.Collect(ctx, r, "journalctl_boot",
				"journalctl", "-b", "-n", lineCount(args), "--no-pager")
		},
	}
}

// NewDmesgErrorsTool shows kernel warnings and errors.
func NewDmesgErrorsTool(r hostexec.Runner) agent.Tool {
	return agent.Tool{
		Name:        "dmesg_errors",
		Description: "Shows kernel ring buffer messages at warning level or worse: OOM kills, hardware errors, filesystem problems.",
		SchemaJSON:  `{"type":"object","properties":{}}`,
		Category:    "journal",
		Fn: func(ctx context.Context, _ map[string]any) (string, error) {
			return hostexec.Collect(ctx, r, "dmesg_errors",
				"dmesg", "--level=err,warn", "--ctime")
		},
	}
}
